// Package message defines the normalized record extracted from one archive file
package message

import (
	"fmt"
	"time"
)

// DateFormat is the layout every output format uses for timestamps
const DateFormat = "2006-01-02 15:04:05"

// Epoch is the timestamp used when a file carries no parseable date
var Epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Message is one SMS recovered from a .vmg file.
// Tel and Body may be empty; Timestamp is always set.
type Message struct {
	Tel       string
	Timestamp time.Time
	Body      string

	// Source is the file the message was read from. It is not serialized.
	Source string
}

// Date returns the timestamp formatted with DateFormat
func (m *Message) Date() string {
	return m.Timestamp.Format(DateFormat)
}

// HasDate reports whether the timestamp is something other than the epoch default
func (m *Message) HasDate() bool {
	return !m.Timestamp.Equal(Epoch)
}

func (m *Message) String() string {
	return fmt.Sprintf("[%s] %s: %s", m.Date(), m.Tel, m.Body)
}
