// Package reader turns one .vmg file into a normalized message
package reader

import (
	"bytes"
	"fmt"
	"os"

	"github.com/nyaruka/phonenumbers"

	"github.com/apmyp/vmg_converter_go/message"
	"github.com/apmyp/vmg_converter_go/parser"
)

// Reader reads .vmg files from disk
type Reader struct {
	region string
}

// NewReader creates a new Reader instance
func NewReader() *Reader {
	return &Reader{}
}

// WithRegion enables rewriting telephone numbers to E.164, using region
// (ISO 3166 code such as "IN") for numbers written without a country code
func (r *Reader) WithRegion(region string) *Reader {
	r.region = region
	return r
}

// Region returns the configured default region, empty when normalization is off
func (r *Reader) Region() string {
	return r.region
}

// ReadFile reads path and extracts its message
func (r *Reader) ReadFile(path string) (*message.Message, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	msg := r.Normalize(raw)
	msg.Source = path
	return msg, nil
}

// Normalize strips NUL padding and line-break variants from raw and extracts its fields
func (r *Reader) Normalize(raw []byte) *message.Message {
	msg := parser.Extract(string(Clean(raw)))
	if r.region != "" {
		msg.Tel = normalizeTel(msg.Tel, r.region)
	}
	return msg
}

// Clean removes every NUL byte and converts \r\n and lone \r to \n
func Clean(raw []byte) []byte {
	cleaned := bytes.ReplaceAll(raw, []byte{0}, nil)
	cleaned = bytes.ReplaceAll(cleaned, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(cleaned, []byte("\r"), []byte("\n"))
}

// normalizeTel formats tel as E.164 when it is a valid number, otherwise returns it unchanged
func normalizeTel(tel, region string) string {
	if tel == "" {
		return tel
	}

	num, err := phonenumbers.Parse(tel, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return tel
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
