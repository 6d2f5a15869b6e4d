package tui

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/stopwatch"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spotdemo4/matrix-terminal/internal/fx"
	"github.com/spotdemo4/matrix-terminal/internal/sched"
	"github.com/spotdemo4/matrix-terminal/internal/terminal"
	"github.com/spotdemo4/matrix-terminal/internal/typing"
)

type Options struct {
	Version string

	// Banner is typed above the terminal window. Empty disables it.
	Banner string
	Typing typing.Options

	// TypeOutput reveals every output line character by character at OutputSpeed.
	TypeOutput  bool
	OutputSpeed time.Duration

	Glitch   fx.GlitchOptions
	Rain     bool
	RainRows int

	// Seed makes every random effect reproducible. Zero picks a random seed.
	Seed uint64
}

type Tui struct {
	queue   *sched.Queue
	session *terminal.Session
	banner  *typing.Task
	label   *fx.Glitch
	rain    *fx.Rain
	rng     *rand.Rand

	// reveal types out transcript[shown] while output lines are being revealed.
	reveal *typing.Task
	shown  int
	clears int
	lines  int

	input     textinput.Model
	spinner   spinner.Model
	stopwatch stopwatch.Model
	viewport  viewport.Model
	picker    Picker
	picking   bool

	opts      Options
	lastFrame time.Time
	now       time.Time
	width     *int
	height    *int
}

func New(opts Options) Tui {
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	source := func(stream uint64) *rand.Rand {
		return rand.New(rand.NewPCG(seed, stream))
	}

	q := sched.New()
	session := terminal.NewSession(q)

	var banner *typing.Task
	if opts.Banner != "" {
		bannerOpts := opts.Typing
		bannerOpts.Rand = source(1)
		banner = typing.New(q, opts.Banner, bannerOpts)
	}

	glitchOpts := opts.Glitch
	glitchOpts.Rand = source(2)
	label := fx.NewGlitch(q, session.Theme().Label(), glitchOpts)

	ti := textinput.New()
	ti.Placeholder = "Enter command..."
	ti.CharLimit = 256
	ti.Cursor.BlinkSpeed = typing.BlinkInterval
	ti.Focus()

	m := Tui{
		queue:   q,
		session: session,
		banner:  banner,
		label:   label,
		rain:    fx.NewRain(source(3)),
		rng:     source(4),

		input:     ti,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Points)),
		stopwatch: stopwatch.New(),
		viewport:  viewport.New(0, 0),
		picker:    NewPicker(terminal.Vocabulary()),

		opts: opts,
	}
	m.applyTheme()
	if !opts.TypeOutput {
		m.shown = session.Len()
	}

	return m
}

func (m Tui) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.stopwatch.Init(),
		textinput.Blink,
		frame(),
	)
}

func (m Tui) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	cmds := []tea.Cmd{}

	switch msg := msg.(type) {

	case frameMsg:
		m.advance(time.Time(msg))
		cmds = append(cmds, frame())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if !m.picking {
				return m, tea.Quit
			}
			m.picking = false
			return m, nil

		case "tab":
			m.picking = !m.picking
			return m, nil

		case "pgup", "pgdown":
			if !m.picking {
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}

		case "enter":
			if m.picking {
				m.picking = false
				if command, ok := m.picker.Selected(); ok {
					m.submit(command)
				}
				return m, nil
			}
			if !m.session.Processing() {
				m.submit(m.input.Value())
				m.input.Reset()
			}
			return m, nil
		}

		if m.picking {
			m.picker.List, cmd = m.picker.List.Update(msg)
			return m, cmd
		}
		if !m.session.Processing() {
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.picking {
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = &msg.Width
		m.height = &msg.Height
		m.layout()

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.stopwatch, cmd = m.stopwatch.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Tui) submit(command string) {
	m.session.Submit(command)
	m.refresh()
}

// advance moves the event queue to the frame time and pulls the new state into the view.
func (m *Tui) advance(now time.Time) {
	if !m.lastFrame.IsZero() && now.After(m.lastFrame) {
		m.queue.Advance(now.Sub(m.lastFrame))
	}
	m.lastFrame = now
	m.now = now

	m.rain.Tick()
	m.refresh()
}

// refresh syncs everything derived from the session: theme styling, the line reveal
// and the transcript viewport.
func (m *Tui) refresh() {
	m.applyTheme()
	m.syncReveal()

	// Follow new output unless the user scrolled up to read history.
	follow := m.viewport.AtBottom() || m.session.Len() != m.lines
	m.lines = m.session.Len()
	m.viewport.SetContent(m.transcript())
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m *Tui) applyTheme() {
	theme := m.session.Theme()
	c := colorsFor(theme)

	m.label.SetText(theme.Label())
	m.input.Prompt = theme.Prompt() + " "
	m.input.PromptStyle = c.line().Bold(true)
	m.input.TextStyle = c.line()
	m.input.PlaceholderStyle = c.faint()
	m.input.Cursor.Style = c.line()
	m.spinner.Style = c.line()
}

func (m *Tui) syncReveal() {
	lines := m.session.Transcript()

	// A clear invalidates whatever was being typed.
	if m.session.Clears() != m.clears || len(lines) < m.shown {
		m.clears = m.session.Clears()
		m.stopReveal()
		m.shown = 0
	}

	if !m.opts.TypeOutput {
		m.shown = len(lines)
		return
	}

	// A newer command echo flushes whatever is still typing, so the echo shows up at once
	// and its output is typed after it.
	for i := len(lines) - 1; i >= m.shown; i-- {
		if isEcho(lines[i]) {
			m.stopReveal()
			m.shown = i + 1
			break
		}
	}

	if m.reveal != nil && m.reveal.Done() {
		m.reveal = nil
		m.shown++
	}

	if m.reveal == nil && m.shown < len(lines) {
		m.reveal = typing.New(m.queue, lines[m.shown], typing.Options{
			TypingSpeed: m.opts.OutputSpeed,
			Cursor:      m.opts.Typing.Cursor,
			Rand:        m.rng,
		})
	}
}

func (m *Tui) stopReveal() {
	if m.reveal != nil {
		m.reveal.Stop()
		m.reveal = nil
	}
}

// Close cancels everything still scheduled. The model must not be updated afterwards.
func (m Tui) Close() {
	m.session.Close()
	m.stopReveal()
	if m.banner != nil {
		m.banner.Stop()
	}
	m.label.Stop()
}

func (m Tui) Session() *terminal.Session {
	return m.session
}

func isEcho(line string) bool {
	for _, theme := range terminal.Themes() {
		if strings.HasPrefix(line, theme.Prompt()+" ") {
			return true
		}
	}
	return false
}

func (m Tui) transcript() string {
	style := colorsFor(m.session.Theme()).line()
	lines := m.session.Transcript()

	out := []string{}
	for i, line := range lines {
		switch {
		case i < m.shown:
			out = append(out, style.Render(line))
		case i == m.shown && m.reveal != nil:
			out = append(out, style.Render(m.reveal.View()))
		}
	}

	return strings.Join(out, "\n")
}

// layout sizes the viewport to whatever the window leaves after the fixed rows.
func (m *Tui) layout() {
	if m.width == nil || m.height == nil {
		return
	}

	fixed := 2 + 1 + 1 + 1 // window border, header, input, footer
	if m.banner != nil {
		fixed++
	}
	if m.opts.Rain {
		fixed += m.opts.RainRows
	}

	m.viewport.Width = max(0, *m.width-4)
	m.viewport.Height = max(1, *m.height-fixed)
	m.input.Width = max(0, *m.width-len(m.input.Prompt)-6)
	m.rain.Resize(*m.width, m.opts.RainRows)
	m.picker.Resize(*m.width-4, m.viewport.Height)
}

func (m Tui) View() string {
	if m.width == nil || m.height == nil {
		return ""
	}

	theme := m.session.Theme()
	c := colorsFor(theme)
	inner := max(0, *m.width-2)

	sections := []string{}
	if m.banner != nil {
		sections = append(sections, AccentTextStyle.Render(m.banner.View()))
	}
	if m.opts.Rain && m.opts.RainRows > 0 {
		sections = append(sections, m.rain.View())
	}

	// Header: window dots, glitching title and the clock
	dots := lipgloss.JoinHorizontal(lipgloss.Center,
		dotStyles[0].Render("●"), " ", dotStyles[1].Render("●"), " ", dotStyles[2].Render("●"))
	clock := m.now.Format("15:04:05")
	title := m.label.Text()
	gap := max(1, inner-2-lipgloss.Width(dots)-lipgloss.Width(title)-lipgloss.Width(clock))
	left := gap / 2
	header := c.bar().Width(inner).Render(dots + strings.Repeat(" ", left) + title + strings.Repeat(" ", gap-left) + clock)

	var prompt string
	switch {
	case m.picking:
		prompt = c.faint().Render(fmt.Sprintf("matrix-terminal %s · enter to run, esc to close", m.opts.Version))
	case m.session.Processing():
		prompt = c.line().Render("Processing " + m.spinner.View())
	default:
		prompt = m.input.View()
	}

	body := m.viewport.View()
	if m.picking {
		body = m.picker.List.View()
	}
	body = BodyStyle.Width(inner).Height(m.viewport.Height).Render(body)

	footer := c.bar().Width(inner).Render(render3(inner-2,
		"Connection: Secure",
		"Encryption: Active",
		fmt.Sprintf("Signal: Strong · up %s", m.stopwatch.View()),
	))

	window := c.window().Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		BodyStyle.Render(prompt),
		footer,
	))
	sections = append(sections, window)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// render3 spreads three labels across width: left, centered and right aligned.
func render3(width int, a, b, c string) string {
	free := width - lipgloss.Width(a) - lipgloss.Width(b) - lipgloss.Width(c)
	if free < 2 {
		return a + " " + b + " " + c
	}
	left := free / 2
	return a + strings.Repeat(" ", left) + b + strings.Repeat(" ", free-left) + c
}
