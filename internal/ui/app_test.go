package ui

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logtail/internal/prefs"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sized(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.PrefsPath == "" {
		opts.PrefsPath = filepath.Join(t.TempDir(), "prefs.toml")
	}
	m := New(opts)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	return next.(Model)
}

func feed(m Model, lines ...string) Model {
	next, _ := m.Update(lineBatchMsg{lines: lines})
	return next.(Model)
}

func TestWaitForLines_BatchesQueuedLines(t *testing.T) {
	ch := make(chan string, 4)
	ch <- "a"
	ch <- "b"
	ch <- "c"

	msg := waitForLines(ch)()
	batch, ok := msg.(lineBatchMsg)
	if !ok {
		t.Fatalf("msg = %T, want lineBatchMsg", msg)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(batch.lines, want) || batch.done {
		t.Fatalf("batch = %+v, want %v not done", batch, want)
	}

	ch <- "d"
	close(ch)
	batch = waitForLines(ch)().(lineBatchMsg)
	if !batch.done || len(batch.lines) != 1 {
		t.Fatalf("batch = %+v, want [d] done", batch)
	}

	if _, ok := waitForLines(ch)().(streamEndMsg); !ok {
		t.Fatalf("closed channel did not yield streamEndMsg")
	}
}

func TestModel_AppendsAndTrimsScrollback(t *testing.T) {
	m := sized(t, Options{Scrollback: 3})
	m = feed(m, "one", "two")
	m = feed(m, "three", "four")

	if want := []string{"two", "three", "four"}; !reflect.DeepEqual(m.buffer, want) {
		t.Fatalf("buffer = %v, want %v", m.buffer, want)
	}
	if !strings.Contains(m.View(), "four") {
		t.Fatalf("View does not show latest line")
	}
}

func TestModel_BatchContinuesUntilDone(t *testing.T) {
	ch := make(chan string)
	m := sized(t, Options{Lines: ch})

	_, cmd := m.Update(lineBatchMsg{lines: []string{"a"}})
	if cmd == nil {
		t.Fatalf("open stream: Update returned nil cmd, want next wait")
	}

	next, cmd := m.Update(lineBatchMsg{lines: []string{"b"}, done: true})
	if cmd != nil {
		t.Fatalf("finished stream: Update returned a cmd, want nil")
	}
	if !next.(Model).streamDone {
		t.Fatalf("streamDone = false, want true")
	}
}

func TestModel_FollowKeys(t *testing.T) {
	m := sized(t, Options{})
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	m = feed(m, lines...)
	if !m.follow || !m.viewport.AtBottom() {
		t.Fatalf("follow = %v, AtBottom = %v, want both true", m.follow, m.viewport.AtBottom())
	}

	next, _ := m.Update(keyMsg("g"))
	m = next.(Model)
	if m.follow || !m.viewport.AtTop() {
		t.Fatalf("after g: follow = %v, AtTop = %v, want false/true", m.follow, m.viewport.AtTop())
	}

	m = feed(m, "new")
	if !m.viewport.AtTop() {
		t.Fatalf("paused viewer scrolled on new lines")
	}

	next, _ = m.Update(keyMsg("G"))
	m = next.(Model)
	if !m.follow || !m.viewport.AtBottom() {
		t.Fatalf("after G: follow = %v, AtBottom = %v, want true/true", m.follow, m.viewport.AtBottom())
	}

	next, _ = m.Update(keyMsg("f"))
	if next.(Model).follow {
		t.Fatalf("after f: follow = true, want false")
	}
}

func TestModel_QuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{keyMsg("q"), {Type: tea.KeyCtrlC}} {
		m := sized(t, Options{})
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: cmd = nil, want quit", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: cmd did not quit", msg)
		}
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := sized(t, Options{ThemeName: "Nightfox", PrefsPath: path})

	next, _ := m.Update(keyMsg("T"))
	if got := next.(Model).theme.Name; got != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", got)
	}
	if got := prefs.Load(path).Theme; got != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", got)
	}
}

func TestModel_HelpToggle(t *testing.T) {
	m := sized(t, Options{})
	next, _ := m.Update(keyMsg("?"))
	m = next.(Model)
	if !m.showHelp {
		t.Fatalf("showHelp = false, want true")
	}
	if !strings.Contains(m.View(), "Toggle follow") {
		t.Fatalf("help view missing bindings")
	}
	next, _ = m.Update(keyMsg("x"))
	if next.(Model).showHelp {
		t.Fatalf("any key should close help")
	}
}

func TestThemeCycle(t *testing.T) {
	names := ThemeNames()
	for i, name := range names {
		if got, want := NextTheme(name), names[(i+1)%len(names)]; got != want {
			t.Fatalf("NextTheme(%q) = %q, want %q", name, got, want)
		}
	}
	if got := NextTheme("unknown"); got != names[0] {
		t.Fatalf("NextTheme(unknown) = %q, want %q", got, names[0])
	}
	if got := GetTheme("unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(unknown) = %q, want Nightfox", got)
	}
}
