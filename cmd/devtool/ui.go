package main

import (
	"fmt"
	"io"
	"os"
)

// out is where every Print helper writes; tests swap it
var out io.Writer = os.Stdout

type style struct {
	color  string
	symbol string
}

var (
	styleInfo    = style{"\033[0;34m", "ℹ "}
	styleSuccess = style{"\033[0;32m", "✓ "}
	styleWarning = style{"\033[1;33m", "⚠ "}
	styleError   = style{"\033[0;31m", "✗ "}
)

// useColor follows the NO_COLOR convention (https://no-color.org)
func useColor() bool {
	_, off := os.LookupEnv("NO_COLOR")
	return !off
}

func (s style) println(format string, a ...interface{}) {
	line := s.symbol + fmt.Sprintf(format, a...)
	if useColor() {
		line = s.color + line + "\033[0m"
	}
	fmt.Fprintln(out, line)
}

func PrintInfo(format string, a ...interface{})    { styleInfo.println(format, a...) }
func PrintSuccess(format string, a ...interface{}) { styleSuccess.println(format, a...) }
func PrintWarning(format string, a ...interface{}) { styleWarning.println(format, a...) }
func PrintError(format string, a ...interface{})   { styleError.println(format, a...) }

func PrintHeader(title string) {
	fmt.Fprintln(out)
	style{color: styleWarning.color}.println("=== %s ===", title)
}
