package peek

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ProgressInterval is the minimum time between two rom count renders.
const ProgressInterval = 250 * time.Millisecond

// Progress renders a single overwritable line of scan progress.
// It is owned by one ScanService and is not safe for concurrent use.
type Progress struct {
	w       io.Writer
	clock   Clock
	enabled bool

	lastRender time.Time
	lastLength int
}

// NewProgress creates a progress line writing to w. When enabled is false
// only Done produces output, which keeps redirected output readable.
func NewProgress(w io.Writer, clock Clock, enabled bool) *Progress {
	return &Progress{w: w, clock: clock, enabled: enabled}
}

// Step renders a named step for a core unconditionally.
func (p *Progress) Step(core string, coreIndex, coreCount int, step string) {
	if !p.enabled {
		return
	}
	p.render(fmt.Sprintf("\rCore: %s (%d of %d)... %s", core, coreIndex+1, coreCount, step))
}

// Roms renders the rom counter for a core. Renders closer together than
// ProgressInterval are dropped, except the first render of a core
// (romIndex 0) and the render for a core with no files.
func (p *Progress) Roms(core string, coreIndex, coreCount, romIndex, romCount int) {
	if !p.enabled {
		return
	}
	now := p.clock.Now()
	if romIndex != 0 && romCount != 0 && now.Sub(p.lastRender) < ProgressInterval {
		return
	}
	p.lastRender = now
	p.Step(core, coreIndex, coreCount, fmt.Sprintf("processed %d of %d roms", romIndex, romCount))
}

// Done blanks the progress line and prints the completion marker.
func (p *Progress) Done() {
	if p.enabled && p.lastLength > 0 {
		fmt.Fprint(p.w, "\r"+strings.Repeat(" ", p.lastLength))
		fmt.Fprint(p.w, "\r")
	}
	fmt.Fprintln(p.w, "DONE!")
	p.lastLength = 0
}

// render writes message padded with spaces so it fully covers the previous one.
func (p *Progress) render(message string) {
	if n := len(message); n < p.lastLength {
		message += strings.Repeat(" ", p.lastLength-n)
	}
	fmt.Fprint(p.w, message)
	p.lastLength = len(message)
}
