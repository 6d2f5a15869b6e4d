// Package fx holds the purely cosmetic effects: glitch-flicker text and falling code rain.
// Neither feeds anything back into the terminal state.
package fx

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spotdemo4/matrix-terminal/internal/sched"
)

type Intensity int

const (
	IntensityLow Intensity = iota
	IntensityMedium
	IntensityHigh
)

var intensityName = map[Intensity]string{
	IntensityLow:    "low",
	IntensityMedium: "medium",
	IntensityHigh:   "high",
}

func (i Intensity) String() string {
	if name, ok := intensityName[i]; ok {
		return name
	}
	return intensityName[IntensityMedium]
}

func ParseIntensity(s string) (Intensity, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range intensityName {
		if name == s {
			return i, true
		}
	}
	return IntensityMedium, false
}

const (
	glitchChars  = `!<>-_\/[]{}—=+*^?#________`
	glitchFrames = 3
	glitchFrame  = 100 * time.Millisecond
)

// amount is how many characters a single glitch frame replaces.
func (i Intensity) amount(n int) int {
	var k int
	switch i {
	case IntensityLow:
		k = max(1, n/10)
	case IntensityHigh:
		k = max(3, n*3/10)
	default:
		k = max(2, n/5)
	}
	return min(k, n)
}

// Corrupt replaces a few distinct positions of text with glitch characters.
func Corrupt(text string, intensity Intensity, rng *rand.Rand) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return text
	}

	chars := []rune(glitchChars)
	for _, pos := range rng.Perm(len(runes))[:intensity.amount(len(runes))] {
		runes[pos] = chars[rng.IntN(len(chars))]
	}

	return string(runes)
}

type GlitchOptions struct {
	Intensity Intensity
	Interval  time.Duration
	Rand      *rand.Rand
}

// Glitch periodically flickers a piece of text: every interval it shows a few corrupted
// frames and then settles back on the original.
type Glitch struct {
	queue *sched.Queue
	opts  GlitchOptions
	rng   *rand.Rand

	text   string
	shown  string
	frame  int
	active bool
	timer  *sched.Timer
}

func NewGlitch(queue *sched.Queue, text string, opts GlitchOptions) *Glitch {
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Second
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	g := &Glitch{
		queue: queue,
		opts:  opts,
		rng:   rng,
		text:  text,
		shown: text,
	}
	g.timer = queue.After(opts.Interval, g.burst)

	return g
}

func (g *Glitch) burst() {
	g.active = true
	g.frame = 0
	g.timer = g.queue.After(glitchFrame, g.flicker)
}

func (g *Glitch) flicker() {
	g.shown = Corrupt(g.text, g.opts.Intensity, g.rng)
	g.frame++

	if g.frame >= glitchFrames {
		g.shown = g.text
		g.active = false
		g.timer = g.queue.After(g.opts.Interval, g.burst)
		return
	}
	g.timer = g.queue.After(glitchFrame, g.flicker)
}

// SetText swaps the underlying text. A burst in progress ends immediately.
func (g *Glitch) SetText(text string) {
	if text == g.text {
		return
	}

	g.timer.Stop()
	g.text = text
	g.shown = text
	g.active = false
	g.timer = g.queue.After(g.opts.Interval, g.burst)
}

func (g *Glitch) Stop() {
	g.timer.Stop()
	g.shown = g.text
	g.active = false
}

// Text is what should be drawn right now.
func (g *Glitch) Text() string {
	return g.shown
}

func (g *Glitch) Active() bool {
	return g.active
}
