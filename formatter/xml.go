package formatter

import (
	"bufio"
	"io"

	"github.com/apmyp/vmg_converter_go/message"
)

// XML writes <messages><message><tel/><date/><body/></message>...</messages>
// on a single line. Bodies are already escaped by the parser; tel and date
// never contain reserved characters.
type XML struct{}

func (XML) Format(w io.Writer, messages []*message.Message) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("<messages>")
	for _, msg := range messages {
		bw.WriteString("<message><tel>")
		bw.WriteString(msg.Tel)
		bw.WriteString("</tel><date>")
		bw.WriteString(msg.Date())
		bw.WriteString("</date><body>")
		bw.WriteString(msg.Body)
		bw.WriteString("</body></message>")
	}
	bw.WriteString("</messages>")

	return bw.Flush()
}
