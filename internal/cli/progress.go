package cli

import (
	"fmt"
	"io"
	"strings"
)

const barWidth = 30

// progressBar redraws a single console line, one tick per listing page.
type progressBar struct {
	w     io.Writer
	label string
	drawn bool
}

func newProgressBar(w io.Writer, label string) *progressBar {
	return &progressBar{w: w, label: label}
}

func (p *progressBar) Update(done, total int) {
	if total <= 0 {
		return
	}
	filled := done * barWidth / total
	pct := done * 100 / total
	line := fmt.Sprintf("%s: %3d%%|%s%s| %d/%d",
		p.label, pct, strings.Repeat("█", filled), strings.Repeat(" ", barWidth-filled), done, total)
	fmt.Fprintf(p.w, "\r%s", line)
	p.drawn = true
}

// Done ends the bar's line so later output starts clean.
func (p *progressBar) Done() {
	if p.drawn {
		fmt.Fprintln(p.w)
		p.drawn = false
	}
}
