// Package formatter writes sorted messages as XML, CSV or plain text
package formatter

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/apmyp/vmg_converter_go/message"
)

var ErrUnknownFormat = errors.New("unknown format")

// Formatter serializes a full, already sorted message list to w
type Formatter interface {
	Format(w io.Writer, messages []*message.Message) error
}

var formats = map[string]Formatter{
	"xml": XML{},
	"csv": CSV{},
	"txt": Text{},
}

// Get returns the formatter registered under name
func Get(name string) (Formatter, error) {
	f, ok := formats[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (expected one of %v)", ErrUnknownFormat, name, Names())
	}
	return f, nil
}

// Names returns the registered format names in sorted order
func Names() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
