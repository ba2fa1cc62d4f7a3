// Package parser extracts the telephone number, date and body from .vmg text
package parser

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/apmyp/vmg_converter_go/message"
)

// TimestampLayout is the compact form stored after X-NOK-DT:
const TimestampLayout = "20060102T150405Z"

var (
	telRegex  = regexp.MustCompile(`TEL:(\+?\d+)`)
	dateRegex = regexp.MustCompile(`X-NOK-DT:([\dTZ]+)`)
	bodyRegex = regexp.MustCompile(`(?s)Date:[\d.: ]+\n(.*)END:VBODY`)
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeXML replaces &, <, > and " with their XML entities.
// Input is scanned once, so entities produced here are never escaped again.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// Extract pulls the three fields out of NUL-free text.
// Missing or malformed fields fall back to "" or message.Epoch; Extract never fails.
func Extract(text string) *message.Message {
	return &message.Message{
		Tel:       ExtractTel(text),
		Timestamp: ExtractTimestamp(text),
		Body:      ExtractBody(text),
	}
}

// ExtractTel returns the first number following TEL:, keeping a leading +
func ExtractTel(text string) string {
	matches := telRegex.FindStringSubmatch(text)
	if matches == nil {
		return ""
	}
	return matches[1]
}

// ExtractTimestamp parses the first X-NOK-DT: value, or returns message.Epoch
func ExtractTimestamp(text string) time.Time {
	matches := dateRegex.FindStringSubmatch(text)
	if matches == nil {
		return message.Epoch
	}

	ts, err := time.Parse(TimestampLayout, matches[1])
	if err != nil {
		return message.Epoch
	}
	return ts
}

// ExtractBody returns the escaped text between the Date: line and END:VBODY.
// The last character is dropped: the format always puts a line break before END:VBODY.
func ExtractBody(text string) string {
	matches := bodyRegex.FindStringSubmatch(text)
	if matches == nil {
		return ""
	}
	return dropLast(EscapeXML(matches[1]))
}

func dropLast(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
