package termui_test

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vango-dev/toastkit/pkg/termui"
	"github.com/vango-dev/toastkit/pkg/toast"
	"github.com/vango-dev/toastkit/pkg/toasttest"
)

const ms = time.Millisecond

func setup(t *testing.T) (*toasttest.Clock, *termui.Board, *toast.Registry) {
	t.Helper()
	clock := toasttest.NewClock()
	board := termui.NewBoard(termui.WithClock(clock.Now), termui.WithWidth(40))
	reg := toast.NewRegistry(board, toast.WithScheduler(clock))
	return clock, board, reg
}

func TestBoardHidesInertCards(t *testing.T) {
	clock, board, reg := setup(t)
	reg.Success("Deployed", "v1.2.3 is live")
	clock.Flush()

	if board.Len(toast.Top) != 1 {
		t.Fatalf("Len = %d", board.Len(toast.Top))
	}
	if strings.Contains(board.Render(0), "Deployed") {
		t.Error("card drawn before its entrance")
	}

	clock.AdvanceTo(100 * ms)
	out := board.Render(0)
	for _, want := range []string{"✓", "Deployed", "v1.2.3 is live", "×"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestBoardCountdownBar(t *testing.T) {
	clock, board, reg := setup(t)
	reg.Info("Syncing", "m", toast.WithDuration(2*time.Second))
	clock.AdvanceTo(100 * ms)

	full := board.Render(0)
	if strings.Contains(full, "░") {
		t.Errorf("bar should be full at the entrance:\n%s", full)
	}

	clock.AdvanceTo(1100 * ms)
	half := board.Render(0)
	if !strings.Contains(half, "█") || !strings.Contains(half, "░") {
		t.Errorf("bar should be partly drained:\n%s", half)
	}

	clock.AdvanceTo(2300 * ms)
	if board.Len(toast.Top) != 0 {
		t.Error("card not unmounted after disposal")
	}
	if strings.Contains(board.Render(0), "Syncing") {
		t.Error("disposed card still drawn")
	}
}

func TestBoardPersistentCardHasNoBar(t *testing.T) {
	clock, board, reg := setup(t)
	reg.Warning("Disk almost full", "", toast.Persistent())
	clock.AdvanceTo(time.Second)

	out := board.Render(0)
	if strings.Contains(out, "█") || strings.Contains(out, "░") {
		t.Errorf("persistent card drew a countdown:\n%s", out)
	}
}

func TestBoardStripsControlCharacters(t *testing.T) {
	clock, board, reg := setup(t)
	reg.Error("bad\x1b[2Jtitle", "line\nbreak\x07")
	clock.AdvanceTo(100 * ms)

	out := board.Render(0)
	if strings.Contains(out, "\x1b[2J") || strings.Contains(out, "\x07") {
		t.Errorf("control sequence leaked: %q", out)
	}
	if !strings.Contains(out, "bad[2Jtitle") || !strings.Contains(out, "line break") {
		t.Errorf("text mangled: %q", out)
	}
}

func TestBoardTruncatesLongText(t *testing.T) {
	clock, board, reg := setup(t)
	reg.Info(strings.Repeat("long title ", 10), strings.Repeat("wide 字 ", 20), toast.Persistent())
	clock.AdvanceTo(100 * ms)

	for _, line := range strings.Split(board.Render(0), "\n") {
		if w := len([]rune(line)); w > 80 {
			t.Errorf("line too long (%d): %q", w, line)
		}
	}
	if !strings.Contains(board.Render(0), "...") {
		t.Error("expected an ellipsis")
	}
}

func TestBoardOrdersPositions(t *testing.T) {
	clock, board, reg := setup(t)
	reg.Info("bottom card", "m", toast.At(toast.Bottom))
	reg.Info("top card", "m", toast.At(toast.Top))
	clock.AdvanceTo(100 * ms)

	out := board.Render(30)
	top, bottom := strings.Index(out, "top card"), strings.Index(out, "bottom card")
	if top < 0 || bottom < 0 || top > bottom {
		t.Errorf("top cards must be drawn above bottom cards:\n%s", out)
	}
	if lines := strings.Count(out, "\n") + 1; lines < 30 {
		t.Errorf("render has %d lines, want the full height", lines)
	}
}

func TestBoardCloseNewest(t *testing.T) {
	clock, board, reg := setup(t)
	older := reg.Info("older", "m", toast.Persistent())
	newer := reg.Info("newer", "m", toast.Persistent(), toast.At(toast.Bottom))

	if board.CloseNewest() {
		t.Error("nothing is on screen yet")
	}
	clock.AdvanceTo(100 * ms)

	if !board.CloseNewest() {
		t.Fatal("CloseNewest found nothing")
	}
	clock.Flush()
	if newer.Phase() != toast.PhaseLeaving || older.Phase() == toast.PhaseLeaving {
		t.Errorf("phases: newer %s, older %s", newer.Phase(), older.Phase())
	}
	if !board.CloseNewest() {
		t.Fatal("older card should be closable next")
	}
	clock.Flush()
	if older.Phase() != toast.PhaseLeaving {
		t.Errorf("older phase = %s", older.Phase())
	}
}

func TestModelKeys(t *testing.T) {
	clock, board, reg := setup(t)
	tt := reg.Info("closable", "m", toast.Persistent())
	clock.AdvanceTo(100 * ms)

	var m tea.Model = termui.NewModel(board)
	if m.Init() == nil {
		t.Error("Init should schedule a frame")
	}

	m, _ = m.Update(tea.WindowSizeMsg{Width: 50, Height: 20})
	if !strings.Contains(m.View(), "closable") {
		t.Errorf("view missing card:\n%s", m.View())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	clock.Flush()
	if tt.Phase() != toast.PhaseLeaving {
		t.Errorf("x did not close the toast: %s", tt.Phase())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not produce a quit message")
	}
}
