package aggregator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apmyp/vmg_converter_go/message"
	"github.com/apmyp/vmg_converter_go/reader"
	"github.com/apmyp/vmg_converter_go/worker"
)

// fakeReader serves messages by path
type fakeReader struct {
	messages map[string]*message.Message
	calls    []string
}

func (f *fakeReader) ReadFile(path string) (*message.Message, error) {
	f.calls = append(f.calls, path)
	msg, ok := f.messages[path]
	if !ok {
		return nil, fmt.Errorf("reading %s: %w", path, os.ErrNotExist)
	}
	return msg, nil
}

func at(year int) time.Time {
	return time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestSortByTimestamp_Stable(t *testing.T) {
	t1, t2, t3 := at(2001), at(2002), at(2003)
	messages := []*message.Message{
		{Tel: "a", Timestamp: t2},
		{Tel: "b", Timestamp: t1},
		{Tel: "c", Timestamp: t1},
		{Tel: "d", Timestamp: t3},
	}

	SortByTimestamp(messages)

	var order []string
	for _, m := range messages {
		order = append(order, m.Tel)
	}
	assert.Equal(t, []string{"b", "c", "a", "d"}, order)
}

func TestSortByTimestamp_EpochFirst(t *testing.T) {
	messages := []*message.Message{
		{Tel: "dated", Timestamp: at(2008)},
		{Tel: "undated", Timestamp: message.Epoch},
	}

	SortByTimestamp(messages)
	assert.Equal(t, "undated", messages[0].Tel)
}

func TestCollect_ReadsInPathOrder(t *testing.T) {
	fr := &fakeReader{messages: map[string]*message.Message{
		"a.vmg": {Tel: "+1", Timestamp: at(2010)},
		"b.vmg": {Tel: "+2", Timestamp: at(2009)},
		"c.vmg": {Tel: "+3", Timestamp: at(2009)},
	}}

	messages, err := NewAggregator(fr, nil).Collect([]string{"a.vmg", "b.vmg", "c.vmg"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.vmg", "b.vmg", "c.vmg"}, fr.calls)
	require.Len(t, messages, 3)
	assert.Equal(t, "+2", messages[0].Tel)
	assert.Equal(t, "+3", messages[1].Tel)
	assert.Equal(t, "+1", messages[2].Tel)
}

func TestCollect_FailureAbortsRun(t *testing.T) {
	fr := &fakeReader{messages: map[string]*message.Message{
		"a.vmg": {Tel: "+1", Timestamp: at(2010)},
		"c.vmg": {Tel: "+3", Timestamp: at(2009)},
	}}

	messages, err := NewAggregator(fr, worker.NewPool(1)).Collect([]string{"a.vmg", "missing.vmg", "c.vmg"})

	assert.Nil(t, messages)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, []string{"a.vmg", "missing.vmg"}, fr.calls)
}

func TestCollect_Empty(t *testing.T) {
	messages, err := NewAggregator(&fakeReader{}, nil).Collect(nil)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestCollect_ParallelMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 20; i++ {
		// every fourth file shares a timestamp so ties are exercised
		content := fmt.Sprintf("TEL:+%d\nX-NOK-DT:2009010%dT000000Z\nDate:1.1.2009 0:00\nmsg %d\nEND:VBODY\n", i, 1+i%4, i)
		path := filepath.Join(dir, fmt.Sprintf("%02d.vmg", i))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		paths = append(paths, path)
	}

	sequential, err := NewAggregator(reader.NewReader(), worker.NewPool(1)).Collect(paths)
	require.NoError(t, err)
	parallel, err := NewAggregator(reader.NewReader(), worker.NewPool(8)).Collect(paths)
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
	assert.Equal(t, "+0", sequential[0].Tel)
	assert.Equal(t, "+4", sequential[1].Tel)
}

func TestCollect_ParallelReportsFirstFailingPath(t *testing.T) {
	fr := &lockedReader{fail: map[string]bool{"b.vmg": true, "d.vmg": true}}

	_, err := NewAggregator(fr, worker.NewPool(4)).Collect([]string{"a.vmg", "b.vmg", "c.vmg", "d.vmg"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.vmg")
}

type lockedReader struct {
	fail map[string]bool
}

func (l *lockedReader) ReadFile(path string) (*message.Message, error) {
	if l.fail[path] {
		return nil, errors.New("cannot read " + path)
	}
	return &message.Message{Timestamp: message.Epoch, Source: path}, nil
}
