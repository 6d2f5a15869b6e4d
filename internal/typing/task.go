// Package typing reveals a string one character at a time the way a person would type it,
// including the occasional typo that gets noticed and corrected.
package typing

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/spotdemo4/matrix-terminal/internal/sched"
)

const (
	// BlinkInterval is how often the cursor toggles visibility.
	BlinkInterval = 500 * time.Millisecond
	// MaxJitter bounds the random delay added to every keystroke.
	MaxJitter = 50 * time.Millisecond
)

type Phase int

const (
	PhaseTyping Phase = iota
	PhaseErroring
	PhaseDeleting
	PhasePaused
)

var phaseName = map[Phase]string{
	PhaseTyping:   "typing",
	PhaseErroring: "erroring",
	PhaseDeleting: "deleting",
	PhasePaused:   "paused",
}

func (p Phase) String() string {
	return phaseName[p]
}

type Options struct {
	TypingSpeed        time.Duration
	StartDelay         time.Duration
	ErrorProbability   float64
	Loop               bool
	PauseBeforeRestart time.Duration
	Cursor             CursorStyle

	// Rand drives jitter and typos. A randomly seeded source is used when nil.
	Rand *rand.Rand
}

func DefaultOptions() Options {
	return Options{
		TypingSpeed:        50 * time.Millisecond,
		StartDelay:         500 * time.Millisecond,
		ErrorProbability:   0.05,
		PauseBeforeRestart: 2 * time.Second,
		Cursor:             CursorBlock,
	}
}

// Task is one in-progress reveal of a target string. Every transition schedules exactly
// one follow-up action on the queue, so a task never has more than one pending step.
type Task struct {
	queue *sched.Queue
	opts  Options
	rng   *rand.Rand

	target   []rune
	revealed []rune
	index    int
	phase    Phase
	done     bool
	cycles   int
	typos    int

	cursorVisible bool
	step          *sched.Timer
	blink         *sched.Timer
}

// New creates a task and starts it right away: the first character appears after
// the start delay plus one keystroke.
func New(queue *sched.Queue, target string, opts Options) *Task {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	t := &Task{
		queue: queue,
		opts:  opts,
		rng:   rng,
	}
	t.start(target)

	return t
}

func (t *Task) start(target string) {
	t.target = []rune(target)
	t.revealed = []rune{}
	t.index = 0
	t.phase = PhasePaused
	t.done = false
	t.cycles = 0
	t.typos = 0
	t.cursorVisible = true

	t.schedule(t.opts.StartDelay, t.resume)
	t.blink = t.queue.After(BlinkInterval, t.toggleCursor)
}

// Stop cancels everything the task has scheduled. The revealed text stays as it is.
func (t *Task) Stop() {
	t.step.Stop()
	t.blink.Stop()
}

// Retarget abandons the current reveal and starts over with a new target.
func (t *Task) Retarget(target string) {
	t.Stop()
	t.start(target)
}

func (t *Task) schedule(d time.Duration, fn func()) {
	t.step = t.queue.After(d, fn)
}

func (t *Task) keystroke() time.Duration {
	return t.opts.TypingSpeed + time.Duration(t.rng.Int64N(int64(MaxJitter)))
}

// resume types the next character or finishes the run.
func (t *Task) resume() {
	t.phase = PhaseTyping
	if t.index >= len(t.target) {
		t.complete()
		return
	}
	t.schedule(t.keystroke(), t.typeNext)
}

func (t *Task) typeNext() {
	next := t.target[t.index]

	if typoable(next) && t.rng.Float64() < t.opts.ErrorProbability {
		keys := Neighbors(next)
		t.revealed = append(t.revealed[:t.index], keys[t.rng.IntN(len(keys))])
		t.phase = PhaseErroring
		t.typos++
		t.schedule(2*t.opts.TypingSpeed, t.backspace)
		return
	}

	t.commit()
}

func (t *Task) backspace() {
	t.revealed = t.revealed[:t.index]
	t.schedule(t.opts.TypingSpeed*3/2, t.commit)
}

func (t *Task) commit() {
	t.revealed = append(t.revealed[:t.index], t.target[t.index])
	t.index++
	t.resume()
}

func (t *Task) complete() {
	t.phase = PhasePaused

	// An empty loop would spin without ever showing anything.
	if !t.opts.Loop || len(t.target) == 0 {
		t.done = true
		t.blink.Stop()
		log.Printf("typing: finished %q with %d typos", string(t.target), t.typos)
		return
	}

	t.schedule(t.opts.PauseBeforeRestart, t.deleteNext)
}

func (t *Task) deleteNext() {
	if len(t.revealed) == 0 {
		t.phase = PhasePaused
		t.schedule(t.opts.PauseBeforeRestart, t.restart)
		return
	}

	t.phase = PhaseDeleting
	t.schedule(t.opts.TypingSpeed/2, func() {
		t.revealed = t.revealed[:len(t.revealed)-1]
		t.index = len(t.revealed)
		t.deleteNext()
	})
}

func (t *Task) restart() {
	t.cycles++
	t.index = 0
	t.resume()
}

func (t *Task) toggleCursor() {
	t.cursorVisible = !t.cursorVisible
	t.blink = t.queue.After(BlinkInterval, t.toggleCursor)
}

func (t *Task) Target() string {
	return string(t.target)
}

// Revealed is the text currently on screen, possibly ending in a typo.
func (t *Task) Revealed() string {
	return string(t.revealed)
}

// Index is the number of target characters committed so far.
func (t *Task) Index() int {
	return t.index
}

func (t *Task) Phase() Phase {
	return t.phase
}

// Done reports whether a non-looping task has revealed its whole target.
func (t *Task) Done() bool {
	return t.done
}

// Cycles counts how many times a looping task has restarted.
func (t *Task) Cycles() int {
	return t.cycles
}

// Typos counts error excursions since the task was started or retargeted.
func (t *Task) Typos() int {
	return t.typos
}

func (t *Task) CursorVisible() bool {
	return t.cursorVisible
}

func (t *Task) Cursor() CursorStyle {
	return t.opts.Cursor
}

// View renders the revealed text followed by the cursor, or a space while the cursor is
// blinked off so the line width does not jump.
func (t *Task) View() string {
	if t.cursorVisible {
		return string(t.revealed) + t.opts.Cursor.Glyph()
	}
	return string(t.revealed) + " "
}
