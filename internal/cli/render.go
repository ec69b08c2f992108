package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

// section is one titled table of a rendered report.
type section struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// rendered is a report ready for the terminal. Raw is what --json prints.
type rendered struct {
	Title    string
	Sections []section
	Raw      any
}

// renderer writes reports as tables, colouring titles only on a terminal.
type renderer struct {
	out   io.Writer
	title *color.Color
	empty *color.Color
}

func newRenderer(out io.Writer, noColor bool) *renderer {
	r := &renderer{
		out:   out,
		title: color.New(color.FgCyan, color.Bold),
		empty: color.New(color.FgYellow),
	}
	if noColor || !isTerminal(out) {
		r.title.DisableColor()
		r.empty.DisableColor()
	}
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *renderer) render(rep rendered) error {
	_, _ = r.title.Fprintf(r.out, "\n=== %s ===\n", rep.Title)
	for _, s := range rep.Sections {
		if s.Title != "" {
			_, _ = r.title.Fprintf(r.out, "\n--- %s ---\n", s.Title)
		}
		if len(s.Rows) == 0 {
			_, _ = r.empty.Fprintln(r.out, "  (none)")
			continue
		}
		table := tablewriter.NewWriter(r.out)
		table.Header(s.Headers)
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
		if err := table.Bulk(s.Rows); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	return nil
}

func renderJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }

func pct(f float64) string { return fmt.Sprintf("%.1f%%", f) }
