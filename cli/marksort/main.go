package main

import (
	"os"

	marksortcmder "github.com/papercomputeco/marksort/cmd/marksort"
)

func main() {
	cmd := marksortcmder.NewMarksortCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
