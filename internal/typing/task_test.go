package typing

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/spotdemo4/matrix-terminal/internal/sched"
)

func testOptions(seed uint64) Options {
	opts := DefaultOptions()
	opts.Rand = rand.New(rand.NewPCG(seed, seed))
	return opts
}

// pump steps the queue until the task is done or the step budget runs out,
// calling observe after every action.
func pump(q *sched.Queue, task *Task, budget int, observe func()) {
	for i := 0; i < budget && !task.Done(); i++ {
		if !q.Step() {
			return
		}
		if observe != nil {
			observe()
		}
	}
}

func TestZeroErrorRevealsTargetMonotonically(t *testing.T) {
	target := "Wake up, Neo... The Matrix has you."
	opts := testOptions(1)
	opts.ErrorProbability = 0

	q := sched.New()
	task := New(q, target, opts)

	committed := []rune{}
	last := 0
	pump(q, task, 10_000, func() {
		idx := task.Index()
		switch {
		case idx == last+1:
			committed = append(committed, []rune(task.Revealed())[idx-1])
		case idx != last:
			t.Fatalf("index jumped from %d to %d", last, idx)
		}
		last = idx

		if !strings.HasPrefix(target, task.Revealed()) || len([]rune(task.Revealed())) != idx {
			t.Fatalf("revealed %q is not a prefix of length %d", task.Revealed(), idx)
		}
		if task.Phase() == PhaseErroring {
			t.Fatal("unexpected error excursion")
		}
	})

	if !task.Done() {
		t.Fatal("expected task to finish")
	}
	if task.Revealed() != target {
		t.Fatalf("expected %q, got %q", target, task.Revealed())
	}
	if string(committed) != target {
		t.Fatalf("committed characters %q do not reconstruct target", string(committed))
	}
	if task.Typos() != 0 {
		t.Fatalf("expected no typos, got %d", task.Typos())
	}
	if q.Len() != 0 {
		t.Fatalf("expected nothing scheduled after finishing, got %d", q.Len())
	}
}

func TestFullErrorProbabilityTyposEveryLetter(t *testing.T) {
	target := "hello"
	opts := testOptions(2)
	opts.ErrorProbability = 1

	q := sched.New()
	task := New(q, target, opts)

	excursions := map[int]bool{}
	pump(q, task, 10_000, func() {
		idx := task.Index()
		revealed := []rune(task.Revealed())

		if task.Phase() == PhaseErroring && len(revealed) == idx+1 {
			wrong := revealed[idx]
			if wrong == []rune(target)[idx] {
				t.Fatalf("typo at %d is the correct character", idx)
			}
			if !strings.ContainsRune(string(Neighbors([]rune(target)[idx])), wrong) {
				t.Fatalf("typo %q at %d is not a neighbor", wrong, idx)
			}
			excursions[idx] = true
		}
		if idx > 0 && !excursions[idx-1] {
			t.Fatalf("index advanced past %d without an excursion", idx-1)
		}
		if string(revealed[:idx]) != target[:idx] {
			t.Fatalf("committed prefix %q is wrong", string(revealed[:idx]))
		}
	})

	if task.Revealed() != target {
		t.Fatalf("expected %q, got %q", target, task.Revealed())
	}
	if len(excursions) != len(target) || task.Typos() != len(target) {
		t.Fatalf("expected %d excursions, got %d (typos %d)", len(target), len(excursions), task.Typos())
	}
}

func TestCharactersOutsideTableAreNeverMistyped(t *testing.T) {
	target := "1234 !?.,"
	opts := testOptions(3)
	opts.ErrorProbability = 1

	q := sched.New()
	task := New(q, target, opts)
	pump(q, task, 10_000, func() {
		if task.Phase() == PhaseErroring {
			t.Fatalf("unexpected excursion at %d", task.Index())
		}
	})

	if task.Revealed() != target || task.Typos() != 0 {
		t.Fatalf("expected clean reveal, got %q with %d typos", task.Revealed(), task.Typos())
	}
}

func TestUppercaseLettersUseLowercaseNeighbors(t *testing.T) {
	if got := string(Neighbors('A')); got != "sqz" {
		t.Fatalf("expected neighbors of A to be sqz, got %q", got)
	}
	if Neighbors('7') != nil {
		t.Fatal("expected no neighbors for digits")
	}

	keys := Neighbors('a')
	keys[0] = 'x'
	if Neighbors('a')[0] != 's' {
		t.Fatal("Neighbors exposed the shared table")
	}
}

func TestExcursionTiming(t *testing.T) {
	opts := testOptions(4)
	opts.ErrorProbability = 1
	opts.StartDelay = 0

	q := sched.New()
	task := New(q, "a", opts)

	// start delay, then the keystroke that produces the typo
	q.Step()
	for task.Phase() != PhaseErroring {
		q.Step()
	}
	typoAt := q.Now()
	if task.Index() != 0 || len([]rune(task.Revealed())) != 1 {
		t.Fatalf("unexpected state during excursion: %q index %d", task.Revealed(), task.Index())
	}

	q.Advance(2*opts.TypingSpeed - time.Millisecond)
	if task.Revealed() == "" {
		t.Fatal("typo removed too early")
	}
	q.Advance(time.Millisecond)
	if task.Revealed() != "" || task.Index() != 0 {
		t.Fatalf("expected typo removed, got %q", task.Revealed())
	}

	q.Advance(opts.TypingSpeed*3/2 - time.Millisecond)
	if task.Index() != 0 {
		t.Fatal("correction committed too early")
	}
	q.Advance(time.Millisecond)
	if task.Revealed() != "a" || task.Index() != 1 {
		t.Fatalf("expected correction, got %q", task.Revealed())
	}
	if got := q.Now() - typoAt; got != 2*opts.TypingSpeed+opts.TypingSpeed*3/2 {
		t.Fatalf("unexpected excursion length %v", got)
	}
}

func TestStartDelayAndKeystrokeBounds(t *testing.T) {
	opts := testOptions(5)
	opts.ErrorProbability = 0

	q := sched.New()
	task := New(q, "xyz", opts)

	q.Advance(opts.StartDelay + opts.TypingSpeed - time.Millisecond)
	if task.Revealed() != "" {
		t.Fatalf("character appeared before start delay plus one keystroke: %q", task.Revealed())
	}
	q.Advance(MaxJitter + time.Millisecond)
	if task.Revealed() != "x" {
		t.Fatalf("expected first character within jitter bound, got %q", task.Revealed())
	}
}

func TestLoopDeletesAndRetypes(t *testing.T) {
	target := "neo"
	opts := testOptions(6)
	opts.ErrorProbability = 0
	opts.Loop = true

	q := sched.New()
	task := New(q, target, opts)

	sawFull, sawEmpty, sawDeleting := false, false, false
	for i := 0; i < 10_000 && task.Cycles() < 1; i++ {
		q.Step()
		switch {
		case task.Revealed() == target && !sawEmpty:
			sawFull = true
		case task.Revealed() == "" && sawFull:
			sawEmpty = true
		}
		if task.Phase() == PhaseDeleting {
			sawDeleting = true
		}
	}
	if !sawFull || !sawEmpty || !sawDeleting {
		t.Fatalf("expected full, deleting and empty states (full=%v deleting=%v empty=%v)", sawFull, sawDeleting, sawEmpty)
	}
	if task.Done() {
		t.Fatal("looping task reported done")
	}

	for i := 0; i < 10_000 && task.Revealed() != target; i++ {
		q.Step()
	}
	if task.Revealed() != target {
		t.Fatalf("expected target to be retyped, got %q", task.Revealed())
	}
}

func TestLoopDeletesAtHalfSpeed(t *testing.T) {
	opts := testOptions(7)
	opts.ErrorProbability = 0
	opts.Loop = true
	opts.StartDelay = 0

	q := sched.New()
	task := New(q, "ab", opts)
	for task.Revealed() != "ab" {
		q.Step()
	}

	q.Advance(opts.PauseBeforeRestart + opts.TypingSpeed/2)
	if task.Revealed() != "a" {
		t.Fatalf("expected one deletion, got %q", task.Revealed())
	}
	q.Advance(opts.TypingSpeed / 2)
	if task.Revealed() != "" || task.Index() != 0 {
		t.Fatalf("expected empty after second deletion, got %q", task.Revealed())
	}
	if task.Phase() != PhasePaused {
		t.Fatalf("expected pause before restart, got %v", task.Phase())
	}
}

func TestCursorBlinksUntilDone(t *testing.T) {
	opts := testOptions(8)
	opts.ErrorProbability = 0
	opts.StartDelay = 2 * time.Second
	opts.Cursor = CursorPipe

	q := sched.New()
	task := New(q, "x", opts)

	if !task.CursorVisible() || task.View() != "|" {
		t.Fatalf("expected visible pipe cursor, got %q", task.View())
	}
	q.Advance(BlinkInterval)
	if task.CursorVisible() || task.View() != " " {
		t.Fatalf("expected hidden cursor, got %q", task.View())
	}
	q.Advance(BlinkInterval)
	if !task.CursorVisible() {
		t.Fatal("expected cursor visible again")
	}

	q.Advance(1200 * time.Millisecond)
	if !task.Done() {
		t.Fatal("expected task done")
	}
	visible := task.CursorVisible()
	q.Advance(5 * time.Second)
	if task.CursorVisible() != visible {
		t.Fatal("cursor kept blinking after completion")
	}
}

func TestRetargetCancelsPreviousRun(t *testing.T) {
	opts := testOptions(9)
	opts.ErrorProbability = 0.5

	q := sched.New()
	task := New(q, "first target", opts)
	q.Advance(opts.StartDelay + 3*opts.TypingSpeed)

	task.Retarget("second")
	if task.Revealed() != "" || task.Index() != 0 {
		t.Fatalf("expected fresh state after retarget, got %q", task.Revealed())
	}
	if q.Len() != 2 {
		t.Fatalf("expected one step and one blink scheduled, got %d", q.Len())
	}

	pump(q, task, 10_000, func() {
		if !strings.HasPrefix("second", task.Revealed()[:task.Index()]) {
			t.Fatalf("revealed %q mixes targets", task.Revealed())
		}
	})
	if task.Revealed() != "second" {
		t.Fatalf("expected second target, got %q", task.Revealed())
	}
}

func TestStopHaltsTask(t *testing.T) {
	q := sched.New()
	task := New(q, "halt", testOptions(10))
	task.Stop()

	if q.Len() != 0 {
		t.Fatalf("expected empty queue after stop, got %d", q.Len())
	}
	q.Advance(time.Minute)
	if task.Revealed() != "" {
		t.Fatalf("stopped task kept typing: %q", task.Revealed())
	}
}

func TestEmptyTargetFinishes(t *testing.T) {
	opts := testOptions(11)
	opts.Loop = true

	q := sched.New()
	task := New(q, "", opts)
	q.Advance(opts.StartDelay)

	if !task.Done() || q.Len() != 0 {
		t.Fatalf("expected empty target to finish, done=%v pending=%d", task.Done(), q.Len())
	}
}

func TestParseCursorStyle(t *testing.T) {
	cases := []struct {
		in    string
		want  CursorStyle
		ok    bool
		glyph string
	}{
		{"block", CursorBlock, true, "█"},
		{"Underscore", CursorUnderscore, true, "_"},
		{"underline", CursorUnderscore, true, "_"},
		{"pipe", CursorPipe, true, "|"},
		{"bar", CursorPipe, true, "|"},
		{"beam", CursorBlock, false, "█"},
	}
	for _, tc := range cases {
		got, ok := ParseCursorStyle(tc.in)
		if got != tc.want || ok != tc.ok || got.Glyph() != tc.glyph {
			t.Errorf("ParseCursorStyle(%q) = %v, %v (%q)", tc.in, got, ok, got.Glyph())
		}
	}
}
