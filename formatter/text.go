package formatter

import (
	"bufio"
	"fmt"
	"io"

	"github.com/apmyp/vmg_converter_go/message"
)

// Text writes one block per message:
//
//	+919900123456 - 2008-05-26 12:42:32
//	Message contents goes here
//
// Messages without a telephone number are skipped.
type Text struct{}

func (Text) Format(w io.Writer, messages []*message.Message) error {
	bw := bufio.NewWriter(w)

	for _, msg := range messages {
		if msg.Tel == "" {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%s - %s\n%s\n\n", msg.Tel, msg.Date(), msg.Body); err != nil {
			return err
		}
	}

	return bw.Flush()
}
