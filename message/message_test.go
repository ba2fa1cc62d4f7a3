package message

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMessage_String(t *testing.T) {
	msg := &Message{
		Timestamp: time.Date(2008, 5, 26, 12, 42, 32, 0, time.UTC),
		Tel:       "+919900123456",
		Body:      "Test content",
	}

	assert.Equal(t, "[2008-05-26 12:42:32] +919900123456: Test content", msg.String())
}

func TestMessage_Date(t *testing.T) {
	msg := &Message{Timestamp: time.Date(2009, 1, 2, 3, 4, 5, 0, time.UTC)}
	assert.Equal(t, "2009-01-02 03:04:05", msg.Date())
}

func TestMessage_HasDate(t *testing.T) {
	assert.False(t, (&Message{Timestamp: Epoch}).HasDate())
	assert.True(t, (&Message{Timestamp: Epoch.Add(time.Second)}).HasDate())
}

func TestEpoch(t *testing.T) {
	msg := &Message{Timestamp: Epoch}
	assert.Equal(t, "1970-01-01 00:00:00", msg.Date())
}
