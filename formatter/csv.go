package formatter

import (
	"encoding/csv"
	"io"

	"github.com/apmyp/vmg_converter_go/message"
)

var csvHeader = []string{"telno", "date", "body"}

// CSV writes a telno,date,body header and one row per message
type CSV struct{}

func (CSV) Format(w io.Writer, messages []*message.Message) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, msg := range messages {
		if err := cw.Write([]string{msg.Tel, msg.Date(), msg.Body}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
