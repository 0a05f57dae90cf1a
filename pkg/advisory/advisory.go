// Package advisory is the shared warning channel for non-fatal findings.
// Validation rules and data readers report inconsistencies here instead of
// failing; every advisory carries a documentation link so the user can act
// on it. The active sink is process-wide and swappable, which lets the CLI
// collect findings for rendering and lets tests assert on exact emissions.
package advisory

import (
	"sync"

	"github.com/narendrapsgim/rasa/internal/logging"
)

// Advisory is a single non-fatal finding.
type Advisory struct {
	Message string
	Docs    string // documentation URL for the finding
}

// Sink receives advisories.
type Sink interface {
	Emit(a Advisory)
}

var (
	mu   sync.RWMutex
	sink Sink = LogSink{}
)

// Warn emits an advisory through the active sink.
func Warn(message, docs string) {
	mu.RLock()
	s := sink
	mu.RUnlock()
	s.Emit(Advisory{Message: message, Docs: docs})
}

// SetSink replaces the active sink and returns a function restoring the
// previous one. Intended for CLI report collection and tests.
func SetSink(s Sink) (restore func()) {
	mu.Lock()
	prev := sink
	sink = s
	mu.Unlock()
	return func() {
		mu.Lock()
		sink = prev
		mu.Unlock()
	}
}

// LogSink writes advisories to the process logger at warn level.
type LogSink struct{}

// Emit implements Sink.
func (LogSink) Emit(a Advisory) {
	logger := logging.New("advisory")
	if a.Docs != "" {
		logger.Warn(a.Message, "docs", a.Docs)
		return
	}
	logger.Warn(a.Message)
}

// Collector buffers advisories in memory. Safe for concurrent use.
type Collector struct {
	mu         sync.Mutex
	advisories []Advisory
}

// Emit implements Sink.
func (c *Collector) Emit(a Advisory) {
	c.mu.Lock()
	c.advisories = append(c.advisories, a)
	c.mu.Unlock()
}

// Advisories returns a copy of everything collected so far.
func (c *Collector) Advisories() []Advisory {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Advisory, len(c.advisories))
	copy(out, c.advisories)
	return out
}

// Len returns the number of collected advisories.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.advisories)
}
