package ui

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logtail/internal/prefs"
	"github.com/five82/logtail/internal/state"
)

const (
	defaultRefresh    = time.Second
	defaultScrollback = 5000
	maxBatch          = 512
)

// Options configures the viewer.
type Options struct {
	Lines      <-chan string // rendered lines; closed when the stream ends
	Store      *state.Store
	Path       string
	ThemeName  string
	Scrollback int           // lines kept; zero uses default
	PrefsPath  string        // where theme changes are saved; empty uses default
	Refresh    time.Duration // status refresh; zero uses 1s
	Input      io.Reader
	Output     io.Writer
}

// Model is the viewer state for Bubble Tea.
type Model struct {
	lines      <-chan string
	store      *state.Store
	path       string
	prefsPath  string
	scrollback int
	refresh    time.Duration

	theme    Theme
	keys     keyMap
	help     help.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool
	follow   bool
	showHelp bool

	buffer     []string
	snapshot   state.Snapshot
	streamDone bool
}

// New creates the viewer model.
func New(opts Options) Model {
	scrollback := opts.Scrollback
	if scrollback <= 0 {
		scrollback = defaultScrollback
	}
	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = defaultRefresh
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	return Model{
		lines:      opts.Lines,
		store:      opts.Store,
		path:       opts.Path,
		prefsPath:  prefsPath,
		scrollback: scrollback,
		refresh:    refresh,
		theme:      GetTheme(opts.ThemeName),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		follow:     true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.refresh)}
	if m.lines != nil {
		cmds = append(cmds, waitForLines(m.lines))
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.viewport = viewport.New(m.width, m.bodyHeight())
			m.ready = true
		}
		m.viewport.Width = m.width
		m.viewport.Height = m.bodyHeight()
		m.refreshViewport()
		return m, nil

	case lineBatchMsg:
		m.buffer = trimLogBuffer(append(m.buffer, msg.lines...), m.scrollback)
		m.refreshViewport()
		if msg.done {
			m.streamDone = true
			return m, nil
		}
		return m, waitForLines(m.lines)

	case streamEndMsg:
		m.streamDone = true
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.refresh)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		p := prefs.Load(m.prefsPath)
		p.Theme = m.theme.Name
		_ = prefs.Save(m.prefsPath, p)
		return m, nil

	case key.Matches(msg, m.keys.ToggleFollow):
		m.follow = !m.follow
		if m.follow {
			m.viewport.GotoBottom()
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		m.follow = false
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		m.follow = true
		return m, nil

	case key.Matches(msg, m.keys.Up):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.follow = false
		return m, cmd

	case key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.follow = m.viewport.AtBottom()
		return m, cmd
	}

	return m, nil
}

// bodyHeight is the viewport height: everything but header and status bar.
func (m Model) bodyHeight() int {
	if h := m.height - 2; h > 0 {
		return h
	}
	return 1
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.buffer, "\n"))
	if m.follow {
		m.viewport.GotoBottom()
	}
}

// trimLogBuffer trims the log buffer to the limit by removing oldest entries.
func trimLogBuffer(lines []string, limit int) []string {
	if overflow := len(lines) - limit; overflow > 0 {
		return append([]string(nil), lines[overflow:]...)
	}
	return lines
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type lineBatchMsg struct {
	lines []string
	done  bool // the channel closed after these lines
}

type streamEndMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// waitForLines blocks for the next line, then collects whatever else is
// already queued so a burst becomes a single redraw.
func waitForLines(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return streamEndMsg{}
		}
		batch := []string{line}
		for len(batch) < maxBatch {
			select {
			case line, ok := <-ch:
				if !ok {
					return lineBatchMsg{lines: batch, done: true}
				}
				batch = append(batch, line)
			default:
				return lineBatchMsg{lines: batch}
			}
		}
		return lineBatchMsg{lines: batch}
	}
}

// Run starts the viewer and blocks until the user quits or ctx ends.
// Cancellation is not an error.
func Run(ctx context.Context, opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(New(opts), progOpts...)
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
