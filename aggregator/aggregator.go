// Package aggregator collects messages from many .vmg files into one sorted list
package aggregator

import (
	"slices"

	"github.com/apmyp/vmg_converter_go/logger"
	"github.com/apmyp/vmg_converter_go/message"
	"github.com/apmyp/vmg_converter_go/worker"
)

// FileReader reads one archive file into a message
type FileReader interface {
	ReadFile(path string) (*message.Message, error)
}

type Aggregator struct {
	reader FileReader
	pool   *worker.Pool
}

func NewAggregator(reader FileReader, pool *worker.Pool) *Aggregator {
	if pool == nil {
		pool = worker.NewPool(1)
	}
	return &Aggregator{
		reader: reader,
		pool:   pool,
	}
}

// Collect reads every path once and returns the messages sorted by timestamp.
// Messages with equal timestamps keep the order of paths.
// Any read error aborts the whole collection.
func (a *Aggregator) Collect(paths []string) ([]*message.Message, error) {
	messages := make([]*message.Message, len(paths))

	err := a.pool.Map(len(paths), func(i int) error {
		msg, err := a.reader.ReadFile(paths[i])
		if err != nil {
			return err
		}
		messages[i] = msg
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, msg := range messages {
		logFallbacks(msg)
	}

	SortByTimestamp(messages)
	return messages, nil
}

// SortByTimestamp orders messages oldest first, keeping the relative order of equal timestamps
func SortByTimestamp(messages []*message.Message) {
	slices.SortStableFunc(messages, func(a, b *message.Message) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
}

func logFallbacks(msg *message.Message) {
	if msg.Tel == "" {
		logger.Debug("file", msg.Source, "no telephone number")
	}
	if !msg.HasDate() {
		logger.Debug("file", msg.Source, "no usable date, using epoch")
	}
}
