package sizes

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	growColor   = color.New(color.FgYellow)
	shrinkColor = color.New(color.FgGreen)
	dimColor    = color.New(color.Faint)
)

// bytePrinter groups digits per locale so large byte counts stay readable.
var bytePrinter = message.NewPrinter(language.English)

// Render writes the size comparison between two snapshots: one line per
// file ordered by size impact, then a totals line.
func Render(w io.Writer, before, after Snapshot) error {
	entries := Diff(before, after)
	if len(entries) == 0 {
		_, err := fmt.Fprintf(w, "no output files to report\n")
		return err
	}

	widest := 0
	for _, e := range entries {
		if width := runewidth.StringWidth(e.Path); width > widest {
			widest = width
		}
	}

	for _, e := range entries {
		pad := runewidth.FillRight(e.Path, widest)
		note := deltaNote(e)
		if _, err := fmt.Fprintf(w, "  %s  %9s%s\n", pad, humanBytes(e.After), note); err != nil {
			return err
		}
	}
	totalBefore := before.Total()
	totalAfter := after.Total()
	_, err := fmt.Fprintf(w, "  %s  %9s  (was %s)\n",
		runewidth.FillRight("total", widest), humanBytes(totalAfter), humanBytes(totalBefore))
	return err
}

func deltaNote(e Entry) string {
	switch {
	case e.Before == 0 && e.After > 0:
		return "  " + dimColor.Sprint("(new)")
	case e.After == 0 && e.Before > 0:
		return "  " + shrinkColor.Sprint("(removed, was "+humanBytes(e.Before)+")")
	case e.Delta() > 0:
		return "  " + growColor.Sprintf("(+%s B)", bytePrinter.Sprintf("%d", e.Delta()))
	case e.Delta() < 0:
		return "  " + shrinkColor.Sprintf("(-%s B)", bytePrinter.Sprintf("%d", -e.Delta()))
	}
	return ""
}

func humanBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f kB", float64(n)/float64(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
