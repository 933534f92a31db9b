// Package ui handles the small amount of terminal presentation this tool
// does: a colored error prefix when stderr is a TTY.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// IsTTY is true when stderr appears to be a tty.
var IsTTY = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

var errorPrefix = color.New(color.Bold, color.FgRed, color.ReverseVideo).Sprint(" ERROR ")

// Error writes err to w with a colored ERROR prefix when attached to a
// terminal.
func Error(w io.Writer, err error) {
	if IsTTY {
		fmt.Fprintf(w, "%s %v\n", errorPrefix, err)
		return
	}
	fmt.Fprintf(w, "ERROR: %v\n", err)
}
