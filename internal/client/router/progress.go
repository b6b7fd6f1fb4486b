package router

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Progress is started when a navigation begins and stopped when it settles.
type Progress interface {
	Start()
	Done()
	Active() bool
}

type nopProgress struct{}

func (nopProgress) Start()       {}
func (nopProgress) Done()        {}
func (nopProgress) Active() bool { return false }

// SpinnerProgress renders a terminal spinner while a navigation is pending.
// Nothing is drawn when w is not a terminal.
type SpinnerProgress struct {
	s *spinner.Spinner
}

func NewSpinnerProgress(w io.Writer) *SpinnerProgress {
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " loading"
	return &SpinnerProgress{s: s}
}

func (p *SpinnerProgress) Start()       { p.s.Start() }
func (p *SpinnerProgress) Done()        { p.s.Stop() }
func (p *SpinnerProgress) Active() bool { return p.s.Active() }
