package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	// Color attributes per message part.
	errorLabel  = []color.Attribute{color.FgRed, color.Bold}
	errorMsg    = []color.Attribute{color.FgRed}
	fixLabel    = []color.Attribute{color.FgGreen, color.Bold}
	usageLabel  = []color.Attribute{color.FgCyan, color.Bold}
	usageText   = []color.Attribute{color.FgCyan}
	bullet      = []color.Attribute{color.FgGreen}
	categoryFmt = []color.Attribute{color.FgYellow}
)

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, false)
}

func formatError(err *CLIError, useColors bool) string {
	paint := func(attrs []color.Attribute, s string) string {
		if !useColors {
			return s
		}
		// color.NoColor follows stdout; the caller already checked the real destination.
		c := color.New(attrs...)
		c.EnableColor()
		return c.Sprint(s)
	}

	var sb strings.Builder

	sb.WriteString(paint(errorLabel, "Error"))
	sb.WriteString(" [")
	sb.WriteString(paint(categoryFmt, err.Category.String()))
	sb.WriteString("]: ")
	sb.WriteString(paint(errorMsg, err.Message))
	sb.WriteString("\n")

	if err.Usage != "" {
		sb.WriteString("\n")
		sb.WriteString(paint(usageLabel, "Usage: "))
		sb.WriteString(paint(usageText, err.Usage))
		sb.WriteString("\n")
	}

	if len(err.Remediation) > 0 {
		sb.WriteString("\n")
		sb.WriteString(paint(fixLabel, "To fix this:"))
		sb.WriteString("\n")
		for _, step := range err.Remediation {
			sb.WriteString("  ")
			sb.WriteString(paint(bullet, "•"))
			sb.WriteString(" ")
			sb.WriteString(step)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// FprintError prints a formatted CLIError to the given writer.
// Colors are used only when w itself is a terminal.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	if colorEnabled(w) {
		fmt.Fprint(w, formatError(err, true))
		return
	}
	fmt.Fprint(w, FormatErrorPlain(err))
}

// colorEnabled reports whether w is a terminal that accepts colors.
// NO_COLOR and TERM=dumb disable colors everywhere.
func colorEnabled(w io.Writer) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set || os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
