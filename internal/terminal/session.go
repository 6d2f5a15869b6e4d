// Package terminal implements the command interpreter behind the simulated terminal.
package terminal

import (
	"log"
	"strings"
	"time"

	"github.com/spotdemo4/matrix-terminal/internal/sched"
)

// ProcessingDelay is how long a submitted command "thinks" before its output appears.
const ProcessingDelay = 500 * time.Millisecond

var BootLines = []string{
	"Initializing Matrix connection...",
	"Connection established.",
	`Type "help" for available commands.`,
}

type Session struct {
	queue *sched.Queue
	delay time.Duration

	transcript []string
	theme      Theme
	inflight   []*sched.Timer
	clears     int
	closed     bool
}

type Option func(*Session)

// WithBoot replaces the lines the transcript starts with.
func WithBoot(lines ...string) Option {
	return func(s *Session) {
		s.transcript = append([]string{}, lines...)
	}
}

func WithDelay(d time.Duration) Option {
	return func(s *Session) {
		s.delay = d
	}
}

func NewSession(queue *sched.Queue, opts ...Option) *Session {
	s := &Session{
		queue:      queue,
		delay:      ProcessingDelay,
		transcript: append([]string{}, BootLines...),
		theme:      ThemeMatrix,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Submit echoes the input and schedules its resolution. Blank input is ignored
// and reported as false.
func (s *Session) Submit(raw string) bool {
	command := strings.TrimSpace(raw)
	if command == "" || s.closed {
		return false
	}

	s.transcript = append(s.transcript, s.theme.Prompt()+" "+command)

	// Every resolve shares the same delay, so the queue fires them in submission order.
	var timer *sched.Timer
	timer = s.queue.After(s.delay, func() {
		s.resolve(Parse(command))
		s.done(timer)
	})
	s.inflight = append(s.inflight, timer)

	log.Printf("terminal: submitted %q", command)
	return true
}

func (s *Session) resolve(cmd Command) {
	switch cmd := cmd.(type) {
	case Clear:
		s.transcript = []string{}
		s.clears++
	case SetTheme:
		s.theme = cmd.Theme
		s.transcript = append(s.transcript, cmd.Output()...)
	default:
		s.transcript = append(s.transcript, cmd.Output()...)
	}

	log.Printf("terminal: resolved %T", cmd)
}

func (s *Session) done(timer *sched.Timer) {
	for i, t := range s.inflight {
		if t == timer {
			s.inflight = append(s.inflight[:i], s.inflight[i+1:]...)
			return
		}
	}
}

// Close cancels every command still being processed. The session accepts no further input.
func (s *Session) Close() {
	for _, t := range s.inflight {
		t.Stop()
	}
	s.inflight = nil
	s.closed = true
}

// Transcript returns a copy of the displayed lines.
func (s *Session) Transcript() []string {
	return append([]string{}, s.transcript...)
}

func (s *Session) Len() int {
	return len(s.transcript)
}

func (s *Session) Theme() Theme {
	return s.theme
}

func (s *Session) Prompt() string {
	return s.theme.Prompt()
}

// Processing reports whether any submitted command is still waiting on its delay.
func (s *Session) Processing() bool {
	return len(s.inflight) > 0
}

// Pending returns the number of commands still being processed.
func (s *Session) Pending() int {
	return len(s.inflight)
}

// Clears counts how many times the transcript has been wiped.
func (s *Session) Clears() int {
	return s.clears
}

func (s *Session) Closed() bool {
	return s.closed
}
