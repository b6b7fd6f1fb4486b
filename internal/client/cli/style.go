package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	titleColor  = color.New(color.Bold, color.FgCyan)
	noticeColor = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed)
	okColor     = color.New(color.FgGreen)
)

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	return tw
}

func (a *App) printError(err error) {
	errorColor.Fprintf(a.out, "error: %v\n", err)
}

func (a *App) printOK(format string, args ...any) {
	okColor.Fprintln(a.out, fmt.Sprintf(format, args...))
}
