package display

import (
	"fmt"
	"io"

	"github.com/backmassage/picrename/internal/term"
)

// PrintBanner prints the ASCII art banner to w; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	if term.Magenta != "" {
		fmt.Fprint(w, term.Magenta)
	}
	fmt.Fprint(w, `       _
 _ __ (_) ___ _ __ ___ _ __   __ _ _ __ ___   ___
| '_ \| |/ __| '__/ _ \ '_ \ / _`+"`"+` | '_ `+"`"+` _ \ / _ \
| |_) | | (__| | |  __/ | | | (_| | | | | | |  __/
| .__/|_|\___|_|  \___|_| |_|\__,_|_| |_| |_|\___|
|_|
`)
	if term.Magenta != "" {
		fmt.Fprint(w, term.NC)
	}
}
