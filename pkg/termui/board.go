package termui

import (
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vango-dev/toastkit/pkg/toast"
)

// Board is a toast.Renderer for terminals.
type Board struct {
	config Config

	mu           sync.Mutex
	presentation toast.Presentation
	installed    bool
	columns      map[toast.Position]*column
}

// NewBoard creates an empty board.
func NewBoard(opts ...Option) *Board {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Board{
		config:       config,
		presentation: toast.DefaultPresentation(),
		columns:      make(map[toast.Position]*column, len(toast.Positions)),
	}
}

// Install implements toast.Renderer.
func (b *Board) Install(p toast.Presentation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.installed {
		return
	}
	b.installed = true
	b.presentation = p
}

// Container implements toast.Renderer.
func (b *Board) Container(pos toast.Position) toast.Container {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := b.columns[pos]; ok {
		return c
	}
	c := &column{board: b}
	b.columns[pos] = c
	return c
}

// Len returns the number of mounted cards at pos.
func (b *Board) Len(pos toast.Position) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := b.columns[pos]; ok {
		return len(c.cards)
	}
	return 0
}

// CloseNewest activates the close control of the most recently mounted
// card that is on screen. It reports whether there was one.
func (b *Board) CloseNewest() bool {
	b.mu.Lock()
	var newest *card
	for _, pos := range toast.Positions {
		c, ok := b.columns[pos]
		if !ok {
			continue
		}
		for _, cd := range c.cards {
			if cd.state == shown && (newest == nil || cd.desc.Key > newest.desc.Key) {
				newest = cd
			}
		}
	}
	b.mu.Unlock()

	if newest == nil || newest.desc.OnClose == nil {
		return false
	}
	newest.desc.OnClose()
	return true
}

// Render draws both positions: top cards first, bottom cards last, with
// blank lines between them so the output fills height when it is positive.
func (b *Board) Render(height int) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.config.Now()
	top := b.renderColumn(toast.Top, now)
	bottom := b.renderColumn(toast.Bottom, now)

	blank := 1
	if height > 0 {
		used := lipgloss.Height(top) + lipgloss.Height(bottom)
		if height-used > blank {
			blank = height - used
		}
	}
	return top + strings.Repeat("\n", blank+1) + bottom
}

func (b *Board) renderColumn(pos toast.Position, now time.Time) string {
	c, ok := b.columns[pos]
	if !ok {
		return ""
	}
	var cards []string
	for _, cd := range c.cards {
		if cd.state == inert {
			continue
		}
		cards = append(cards, cd.render(now))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

type column struct {
	board *Board
	cards []*card
}

// Mount implements toast.Container.
func (c *column) Mount(d toast.Descriptor) toast.Node {
	b := c.board
	b.mu.Lock()
	defer b.mu.Unlock()

	accent := lipgloss.Color(d.Style.Accent)
	inner := b.config.Width - 4
	cd := &card{
		column:  c,
		desc:    d,
		accent:  accent,
		mounted: true,
		bar: progress.New(
			progress.WithSolidFill(d.Style.Accent),
			progress.WithoutPercentage(),
			progress.WithWidth(inner),
		),
	}
	c.cards = append(c.cards, cd)
	return cd
}

type entrance uint8

const (
	inert entrance = iota
	shown
	hidden
)

type card struct {
	column *column
	desc   toast.Descriptor
	accent lipgloss.Color
	bar    progress.Model

	state     entrance
	countdown time.Duration
	started   time.Time
	mounted   bool
}

// SetEntranceState implements toast.Node.
func (cd *card) SetEntranceState(entering bool) {
	b := cd.column.board
	b.mu.Lock()
	defer b.mu.Unlock()
	if entering {
		cd.state = shown
	} else {
		cd.state = hidden
	}
}

// StartCountdown implements toast.Node.
func (cd *card) StartCountdown(d time.Duration) {
	b := cd.column.board
	b.mu.Lock()
	defer b.mu.Unlock()
	cd.countdown = d
	cd.started = b.config.Now()
}

// Unmount implements toast.Node.
func (cd *card) Unmount() {
	b := cd.column.board
	b.mu.Lock()
	defer b.mu.Unlock()
	if !cd.mounted {
		return
	}
	cd.mounted = false
	cards := cd.column.cards
	for i, other := range cards {
		if other == cd {
			cd.column.cards = append(cards[:i], cards[i+1:]...)
			return
		}
	}
}

// remaining returns the share of the countdown still to run, in [0, 1].
func (cd *card) remaining(now time.Time) float64 {
	if cd.countdown <= 0 || cd.started.IsZero() {
		return 1
	}
	left := 1 - float64(now.Sub(cd.started))/float64(cd.countdown)
	switch {
	case left < 0:
		return 0
	case left > 1:
		return 1
	}
	return left
}

func (cd *card) render(now time.Time) string {
	b := cd.column.board
	inner := b.config.Width - 4

	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffffff")).
		Background(cd.accent).
		Render(" " + plain(cd.desc.Style.Icon) + " ")
	closeHint := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(plain(cd.desc.CloseGlyph))

	titleWidth := inner - lipgloss.Width(badge) - lipgloss.Width(closeHint) - 2
	title := lipgloss.NewStyle().Bold(true).Render(truncate(plain(cd.desc.Title), titleWidth))
	header := badge + " " + title
	header += strings.Repeat(" ", max(1, inner-lipgloss.Width(header)-lipgloss.Width(closeHint))) + closeHint

	lines := []string{header}
	if msg := plain(cd.desc.Message); msg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Render(truncate(msg, inner)))
	}
	if cd.desc.HasCountdown {
		cd.bar.Width = inner
		lines = append(lines, cd.bar.ViewAs(cd.remaining(now)))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(cd.accent).
		Padding(0, 1).
		Width(b.config.Width - 1).
		MarginBottom(1)
	if cd.state == hidden {
		box = box.Faint(true)
	}
	return box.Render(strings.Join(lines, "\n"))
}

// plain drops control characters so untrusted text cannot drive the
// terminal.
func plain(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

var (
	_ toast.Renderer  = (*Board)(nil)
	_ toast.Container = (*column)(nil)
	_ toast.Node      = (*card)(nil)
)
