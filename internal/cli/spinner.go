package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a one-line status message on out until Stop is called
// or its context ends. The line is erased when it stops.
type Spinner struct {
	out  io.Writer
	ctx  context.Context
	quit context.CancelFunc
	done chan struct{}
	stop sync.Once

	mu    sync.Mutex
	msg   string
	drawn int // widest line written so far
}

func newSpinner(ctx context.Context, out io.Writer, msg string) *Spinner {
	ctx, quit := context.WithCancel(ctx)
	return &Spinner{out: out, ctx: ctx, quit: quit, done: make(chan struct{}), msg: msg}
}

// Start draws frames in a background goroutine.
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()
		for frame := 0; ; frame++ {
			select {
			case <-s.ctx.Done():
				s.erase()
				return
			case <-tick.C:
				s.draw(spinnerFrames[frame%len(spinnerFrames)])
			}
		}
	}()
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.out, "\r"+styleSpinner.Render(frame)+" "+StyleDim.Render(s.msg))
	s.drawn = max(s.drawn, len(s.msg)+4)
}

func (s *Spinner) erase() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drawn > 0 {
		fmt.Fprint(s.out, "\r"+strings.Repeat(" ", s.drawn)+"\r")
	}
}

// Update changes the message from the next frame on.
func (s *Spinner) Update(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.mu.Unlock()
}

// Stop ends the animation and waits for the line to be erased. Later calls
// do nothing.
func (s *Spinner) Stop() {
	s.stop.Do(func() {
		s.quit()
		<-s.done
	})
}

// Cancelled reports whether the spinner has ended, by Stop or by its parent
// context.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
