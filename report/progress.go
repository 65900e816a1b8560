package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/schollz/progressbar/v3"
)

type Progress interface {
	Step() error
	Finish() error
}

// NewProgress returns an animated bar for terminals and plain lines
// otherwise.
func NewProgress(w io.Writer, total int, interactive bool) Progress {
	if !interactive {
		return &lineProgress{w: w, total: total}
	}
	return &barProgress{bar: progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Generating months"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)}
}

type barProgress struct {
	bar *progressbar.ProgressBar
}

func (p *barProgress) Step() error {
	return p.bar.Add(1)
}

func (p *barProgress) Finish() error {
	return p.bar.Finish()
}

const lineBarWidth = 30

type lineProgress struct {
	w       io.Writer
	total   int
	current int
}

func (p *lineProgress) Step() error {
	if p.current >= p.total {
		return nil
	}
	p.current++
	done := p.current * lineBarWidth / p.total
	_, err := fmt.Fprintf(p.w, "Generation Progress: %d/%d (%.0f%%)\nProgress Bar: [%s%s]\n",
		p.current, p.total, 100*float64(p.current)/float64(p.total),
		strings.Repeat("=", done), strings.Repeat(" ", lineBarWidth-done))
	return err
}

func (p *lineProgress) Finish() error {
	return nil
}
