package display

import (
	"fmt"
	"io"

	"github.com/backmassage/slidereel/internal/term"
)

const banner = `     _ _     _                    _
 ___| (_) __| | ___ _ __ ___  ___| |
/ __| | |/ _` + "`" + ` |/ _ \ '__/ _ \/ _ \ |
\__ \ | | (_| |  __/ | |  __/  __/ |
|___/_|_|\__,_|\___|_|  \___|\___|_|`

// PrintBanner writes the ASCII art banner to w in the accent color.
func PrintBanner(w io.Writer) {
	fmt.Fprintln(w, term.Accent(banner))
}
