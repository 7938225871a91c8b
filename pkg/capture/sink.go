package capture

import (
	"bytes"
	"io"
	"os"
	"sync"
)

// Stdout is the default ambient sink used by fields that were not configured
// with their own.
var Stdout = NewSink(os.Stdout)

// Sink is an io.Writer whose output can be temporarily redirected. It is
// the ambient output a widget renders into when printed, and the mechanism
// used to turn a render into text without leaking output.
//
// Captures stack: while any capture is open, writes made to the sink itself
// land in the most recent one. Each capture renders into its own buffer, so
// captures running on different goroutines never see each other's output.
type Sink struct {
	mu       sync.Mutex
	target   io.Writer
	captures []*buffer
}

// NewSink returns a sink forwarding to w. A nil writer discards output.
func NewSink(w io.Writer) *Sink {
	if w == nil {
		w = io.Discard
	}
	return &Sink{target: w}
}

// Write forwards p to the current target.
func (s *Sink) Write(p []byte) (int, error) {
	return s.Target().Write(p)
}

// Target reports the writer currently receiving output.
func (s *Sink) Target() io.Writer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.captures); n > 0 {
		return s.captures[n-1]
	}
	return s.target
}

// Capture runs fn against a private buffer and returns whatever was written,
// including writes made to the sink itself while fn runs. The sink is
// restored on every exit path, whatever order overlapping captures finish
// in; a panic raised by fn is re-raised after restoration. On error the
// partial output is returned alongside it.
func (s *Sink) Capture(fn func(w io.Writer) error) (string, error) {
	if fn == nil {
		return "", nil
	}
	buf := &buffer{}
	s.push(buf)
	defer s.pop(buf)

	err := fn(buf)
	return buf.String(), err
}

func (s *Sink) push(buf *buffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.captures = append(s.captures, buf)
}

// pop removes buf wherever it sits in the stack.
func (s *Sink) pop(buf *buffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for idx := len(s.captures) - 1; idx >= 0; idx-- {
		if s.captures[idx] == buf {
			s.captures = append(s.captures[:idx], s.captures[idx+1:]...)
			return
		}
	}
}

// buffer is a bytes.Buffer safe for the capture owner and stray sink
// writers to use at once.
type buffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
