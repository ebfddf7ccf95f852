package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// progressFunc returns a progress reporter that rewrites a single line when
// w is a terminal. For pipes and files it returns nil so the batch prints
// one line per report.
func progressFunc(w io.Writer) func(done, total int) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return func(done, total int) {
		fmt.Fprintf(w, "\rGenerated %d/%d QR codes...", done, total)
	}
}
