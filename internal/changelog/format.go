package changelog

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain bool // Disable colors
}

var (
	versionColor = color.New(color.FgGreen, color.Bold)
	dimColor     = color.New(color.Faint)
)

// FormatVersion writes a version on its own line, colored unless opts.Plain.
func FormatVersion(v SemVer, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintln(w, v.String())
		return err
	}
	_, err := fmt.Fprintln(w, versionColor.Sprint(v.String()))
	return err
}

// FormatTransition writes a "v1.2.3 -> v1.2.4" summary line.
func FormatTransition(res *Result, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s -> %s (%s)\n", res.Previous, res.Next, res.Entry.Date)
		return err
	}
	_, err := fmt.Fprintf(w, "%s -> %s %s\n",
		dimColor.Sprint(res.Previous.String()),
		versionColor.Sprint(res.Next.String()),
		dimColor.Sprintf("(%s)", res.Entry.Date))
	return err
}
