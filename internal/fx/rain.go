package fx

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const rainChars = "アイウエオカキクケコサシスセソタチツテトナニヌネノハヒフヘホマミムメモヤユヨラリルレロワヲン" +
	"0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz!@#$%^&*()_+-=[]{}|;:,./<>?"

var (
	rainGlyphs = []rune(rainChars)
	headStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#b4ffb4"))
)

type column struct {
	drop  float64
	speed float64
	green int
	head  rune
	trail []rune
}

func (c column) row() int {
	return int(math.Floor(c.drop))
}

// Rain is the falling-code background. Each column drips at its own speed and
// leaves a fading trail behind its head.
type Rain struct {
	rng     *rand.Rand
	width   int
	height  int
	cell    int
	columns []column
}

func NewRain(rng *rand.Rand) *Rain {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	// Katakana are double width, so every column is as wide as the widest glyph.
	cell := 1
	for _, r := range rainGlyphs {
		cell = max(cell, runewidth.RuneWidth(r))
	}

	return &Rain{rng: rng, cell: cell}
}

// Resize fits the rain to a width × height area, reseeding every column.
func (r *Rain) Resize(width, height int) {
	if width == r.width && height == r.height {
		return
	}

	r.width = width
	r.height = height
	r.columns = make([]column, max(0, width/r.cell))
	for i := range r.columns {
		c := &r.columns[i]
		c.drop = -float64(r.rng.IntN(max(1, height)))
		c.speed = r.speed()
		c.green = r.green()
		c.trail = make([]rune, height)
	}
}

func (r *Rain) speed() float64 {
	return 0.5 + r.rng.Float64()*1.5
}

func (r *Rain) green() int {
	return 150 + r.rng.IntN(105)
}

func (r *Rain) glyph() rune {
	return rainGlyphs[r.rng.IntN(len(rainGlyphs))]
}

// Tick advances every column by one frame.
func (r *Rain) Tick() {
	for i := range r.columns {
		c := &r.columns[i]

		if row := c.row(); row >= 0 && row < r.height {
			c.trail[row] = r.glyph()
		}
		c.drop += c.speed
		c.head = r.glyph()

		if c.row() > r.height && r.rng.Float64() > 0.975 {
			c.drop = 0
			if r.rng.Float64() > 0.8 {
				c.green = r.green()
			}
			if r.rng.Float64() > 0.8 {
				c.speed = r.speed()
			}
			clear(c.trail)
		}
	}
}

// Head returns the row of the column's leading glyph, or -1 when it is off screen.
func (r *Rain) Head(col int) int {
	if col < 0 || col >= len(r.columns) {
		return -1
	}
	row := r.columns[col].row()
	if row < 0 || row >= r.height {
		return -1
	}
	return row
}

func (r *Rain) Columns() int {
	return len(r.columns)
}

func (r *Rain) View() string {
	if r.height <= 0 || len(r.columns) == 0 {
		return ""
	}

	styles := make([]lipgloss.Style, len(r.columns))
	for i, c := range r.columns {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#00%02x%02x", c.green, c.green/3)))
	}

	var b strings.Builder
	for row := range r.height {
		for i, c := range r.columns {
			g := c.trail[row]
			switch {
			case row == r.Head(i):
				b.WriteString(headStyle.Render(runewidth.FillRight(string(c.head), r.cell)))
			case g == 0:
				b.WriteString(strings.Repeat(" ", r.cell))
			default:
				b.WriteString(styles[i].Render(runewidth.FillRight(string(g), r.cell)))
			}
		}
		if row < r.height-1 {
			b.WriteByte('\n')
		}
	}

	return b.String()
}
