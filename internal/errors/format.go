package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// FormatLine renders err as a single plain line, "<Category>: <message>".
// Line breaks inside the message (HTTP response bodies, SMTP replies) are
// collapsed so the result never spans more than one line.
// Returns "" for a nil error.
func FormatLine(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", label(err), flatten(err.Error()))
}

// FormatLineColor is FormatLine with the category label in bold red.
func FormatLineColor(err error) string {
	if err == nil {
		return ""
	}
	c := color.New(color.FgRed, color.Bold)
	c.EnableColor()
	return fmt.Sprintf("%s: %s", c.Sprint(label(err)), flatten(err.Error()))
}

// Fprint writes the one-line diagnostic for err to w, colored only when w
// is a terminal. A nil error writes nothing.
func Fprint(w io.Writer, err error) {
	if err == nil {
		return
	}
	line := FormatLine(err)
	if isTerminal(w) {
		line = FormatLineColor(err)
	}
	fmt.Fprintln(w, line)
}

func label(err error) string {
	if cliErr := AsCLIError(err); cliErr != nil {
		return cliErr.Category.String()
	}
	return "Error"
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
