// Package output renders dataset tables for the command line.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"micrometa/internal/config"
	"micrometa/internal/dataset"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var headerColor = color.New(color.FgCyan, color.Bold)

// Resolve turns config.FormatAuto into a concrete format for w: an aligned
// table on a terminal, CSV otherwise.
func Resolve(w io.Writer, format string) string {
	if format != config.FormatAuto && format != "" {
		return format
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return config.FormatTable
	}
	return config.FormatCSV
}

// Render writes t to w in the given format.
func Render(w io.Writer, t *dataset.Table, format string) error {
	switch Resolve(w, format) {
	case config.FormatTable:
		return renderTable(w, t)
	case config.FormatCSV:
		return renderCSV(w, t)
	default:
		return fmt.Errorf("%w: unknown output format %q", config.ErrInvalidConfig, format)
	}
}

func renderCSV(w io.Writer, t *dataset.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		record := make([]string, len(row))
		for j, c := range row {
			record[j] = c.String()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderTable(w io.Writer, t *dataset.Table) error {
	// Align plain text first; color codes would count towards column width.
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Columns(), "\t"))
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = c.String()
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	header, body, _ := strings.Cut(buf.String(), "\n")
	if _, err := headerColor.Fprintln(w, header); err != nil {
		return err
	}
	if _, err := io.WriteString(w, body); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "(%d rows, %d columns)\n", t.Len(), t.Width())
	return err
}

// Lines writes one line per item under a colored title, for list-style
// output such as vocabularies.
func Lines(w io.Writer, title string, items []string) error {
	if _, err := headerColor.Fprintln(w, title); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintf(w, "  %s\n", item); err != nil {
			return err
		}
	}
	return nil
}
