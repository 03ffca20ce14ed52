package action

import (
	"context"
	"fmt"
	"strings"

	"github.com/ettom/blynk-lightswitch/pkg/blynk"
)

type row struct {
	name  string
	state float64
}

func (d *Dispatcher) table(ctx context.Context, names []string) (string, error) {
	rows := make([]row, 0, len(names))
	for _, name := range names {
		v, err := d.Client.GetState(ctx, name)
		if err != nil {
			return "", err
		}
		rows = append(rows, row{name: name, state: v})
	}
	return renderTable(rows), nil
}

// renderTable lays devices out one per line, the name column padded to
// the longest name plus one, states padded to width 3. No trailing
// newline.
func renderTable(rows []row) string {
	width := 0
	for _, r := range rows {
		if len(r.name) > width {
			width = len(r.name)
		}
	}
	width++

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%-*s: %-3s ", width, r.name, blynk.FormatValue(r.state))
	}
	return strings.Join(lines, "\n")
}
