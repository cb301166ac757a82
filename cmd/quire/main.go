package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	Execute()
}

func fatal(msg string, err error) {
	fmt.Fprintln(os.Stderr, color.RedString("%s: %v", msg, err))
	os.Exit(1)
}
