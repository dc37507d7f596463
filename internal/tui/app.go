package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Nabil3962/Suhail-Repository-Hub/internal/browser"
	"github.com/Nabil3962/Suhail-Repository-Hub/internal/cache"
	"github.com/Nabil3962/Suhail-Repository-Hub/internal/config"
	appsync "github.com/Nabil3962/Suhail-Repository-Hub/internal/sync"
	"github.com/Nabil3962/Suhail-Repository-Hub/internal/view"
)

const fetchTimeout = 30 * time.Second

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeFilter
	modeTag
	modeHelp
)

type App struct {
	cfg  *config.Config
	ctrl *appsync.Controller

	// dataset is the adopted full dataset; repos is the derived view.
	dataset []cache.Record
	repos   []cache.Record
	cursor  int
	mode    mode

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	spinner     spinner.Model
	langBar     selectBar
	tagBar      selectBar

	// View state
	opts      view.Options
	searchSeq int

	// Status
	loading    bool
	refreshing bool
	state      appsync.State
	fetchedAt  time.Time
	errText    string

	forceRefresh bool
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg          *config.Config
	Ctrl         *appsync.Controller
	ForceRefresh bool
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search repositories..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		cfg:          opts.Cfg,
		ctrl:         opts.Ctrl,
		searchInput:  ti,
		spinner:      sp,
		langBar:      newSelectBar("lang"),
		tagBar:       newSelectBar("tag"),
		loading:      true,
		forceRefresh: opts.ForceRefresh,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadCmd(a.forceRefresh), a.spinner.Tick)
}

func (a *App) loadCmd(force bool) tea.Cmd {
	ctrl := a.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return loadedMsg{res: ctrl.Load(ctx, force)}
	}
}

func (a *App) refreshCmd() tea.Cmd {
	ctrl := a.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return refreshDoneMsg{res: ctrl.Load(ctx, true)}
	}
}

func (a *App) revalidateCmd() tea.Cmd {
	ctrl := a.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return revalidatedMsg{res: ctrl.Revalidate(ctx)}
	}
}

// scheduleSearch defers the view recomputation by the configured debounce.
// Each call supersedes any pending one: the sequence number advances, and the
// stale message is dropped when it fires.
func (a *App) scheduleSearch() tea.Cmd {
	a.searchSeq++
	seq := a.searchSeq
	return tea.Tick(a.cfg.DebounceDelay(), func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

// adopt takes over a controller result as the full dataset and recomputes the
// facets, which only change when the dataset itself changes.
func (a *App) adopt(res appsync.Result) {
	a.dataset = res.Repos
	a.state = res.State
	a.fetchedAt = res.FetchedAt

	languages, topics := view.Facets(a.dataset)
	a.langBar.setItems(languages)
	a.tagBar.setItems(topics)
	a.recompute()
}

// recompute re-derives the visible list; the previous result is replaced
// entirely.
func (a *App) recompute() {
	a.opts.Language = a.langBar.selected
	a.opts.Tag = a.tagBar.selected
	a.repos = view.Derive(a.dataset, a.opts)
	if a.cursor >= len(a.repos) {
		a.cursor = max(0, len(a.repos)-1)
	}
}

func openRepoCmd(rec cache.Record) tea.Cmd {
	return func() tea.Msg {
		if err := browser.OpenRepo(rec); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func openHomepageCmd(rec cache.Record) tea.Cmd {
	return func() tea.Msg {
		if err := browser.OpenHomepage(rec); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.errText = ""
		return a.handleKey(msg)

	case loadedMsg:
		a.loading = false
		a.adopt(msg.res)
		if msg.res.Err != nil {
			a.errText = msg.res.Err.Error()
		}
		if msg.res.Revalidate {
			return a, a.revalidateCmd()
		}
		return a, nil

	case refreshDoneMsg:
		a.refreshing = false
		if msg.res.Err != nil {
			a.errText = msg.res.Err.Error()
		}
		a.adopt(msg.res)
		return a, nil

	case revalidatedMsg:
		// Background outcome: silent unless the dataset actually moved.
		if msg.res.Changed {
			a.adopt(msg.res)
		}
		return a, nil

	case searchDebounceMsg:
		if msg.seq != a.searchSeq {
			return a, nil // superseded by a later keystroke
		}
		a.opts.Query = a.searchInput.Value()
		a.cursor = 0
		a.recompute()
		return a, nil

	case openErrMsg:
		a.errText = msg.err.Error()
		return a, nil

	case spinner.TickMsg:
		if a.loading || a.refreshing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeFilter:
		return a.handleBarKey(msg, &a.langBar, "f")
	case modeTag:
		return a.handleBarKey(msg, &a.tagBar, "t")
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	// Normal mode
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.repos)-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "o", "enter":
		if len(a.repos) > 0 && a.cursor < len(a.repos) {
			return a, openRepoCmd(a.repos[a.cursor])
		}
		return a, nil
	case "H":
		if len(a.repos) > 0 && a.cursor < len(a.repos) {
			return a, openHomepageCmd(a.repos[a.cursor])
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case "f":
		a.mode = modeFilter
		a.langBar.active = true
		return a, nil
	case "t":
		a.mode = modeTag
		a.tagBar.active = true
		return a, nil
	case "s":
		a.opts.Sort = a.opts.Sort.Next()
		a.recompute()
		return a, nil
	case "r":
		// One fetch at a time; repeated presses while refreshing are ignored.
		if !a.refreshing && !a.ctrl.Refreshing() {
			a.refreshing = true
			return a, tea.Batch(a.refreshCmd(), a.spinner.Tick)
		}
		return a, nil
	case "esc":
		if a.opts.Query != "" {
			a.searchInput.SetValue("")
			a.opts.Query = ""
			a.recompute()
		}
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.searchSeq++ // invalidate any pending debounce
		a.opts.Query = ""
		a.recompute()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		a.searchSeq++ // apply now, drop the pending recomputation
		a.opts.Query = a.searchInput.Value()
		a.cursor = 0
		a.recompute()
		return a, nil
	}

	before := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	if a.searchInput.Value() != before {
		return a, tea.Batch(cmd, a.scheduleSearch())
	}
	return a, cmd
}

func (a *App) handleBarKey(msg tea.KeyMsg, bar *selectBar, exitKey string) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", exitKey:
		a.mode = modeNormal
		bar.active = false
		return a, nil
	case "left", "h":
		bar.moveLeft()
		return a, nil
	case "right", "l":
		bar.moveRight()
		return a, nil
	case " ", "enter":
		bar.toggleCurrent()
		a.cursor = 0
		a.recompute()
		return a, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		bar.selectIndex(int(msg.String()[0] - '1'))
		a.cursor = 0
		a.recompute()
		return a, nil
	}
	return a, nil
}

func (a *App) emptyNotice() string {
	switch {
	case a.loading:
		return "Loading..."
	case a.state == appsync.StateDegraded && len(a.dataset) == 0:
		return "Unable to fetch repositories"
	case len(a.dataset) == 0:
		return "No repositories"
	default:
		return "No repositories match"
	}
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  suhail")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	headerHeight := 1
	barHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - barHeight - statusHeight - 4 // borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	listWidth := int(float64(a.width) * 0.4)
	detailWidth := a.width - listWidth - 1 // gap

	// Header
	headerLeft := headerStyle.Render("suhail")
	headerRight := headerMetaStyle.Render("@" + a.cfg.User + " · " + time.Now().Format("Jan 2"))
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Facet / search row
	bar := a.langBar.render(a.width)
	switch a.mode {
	case modeTag:
		bar = a.tagBar.render(a.width)
	case modeSearch:
		bar = a.searchInput.View()
	default:
		if a.tagBar.selected != "" {
			bar = a.tagBar.render(a.width)
		}
	}

	// List pane
	innerListW := listWidth - 4 // border + padding
	listContent := renderList(a.repos, a.cursor, contentHeight, innerListW, a.emptyNotice())
	listPane := listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)

	// Detail pane
	var selected *cache.Record
	if len(a.repos) > 0 && a.cursor < len(a.repos) {
		selected = &a.repos[a.cursor]
	}
	innerDetailW := detailWidth - 4
	detailContent := renderDetail(selected, innerDetailW, contentHeight, a.cfg.GetTopicsCap())
	detailPane := detailPaneStyle.Width(detailWidth - 2).Height(contentHeight).Render(detailContent)

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	status := renderStatusBar(
		len(a.repos),
		len(a.dataset),
		a.state,
		a.fetchedAt,
		a.opts.Sort.String(),
		a.errText,
		a.width,
		a.mode == modeSearch,
		a.refreshing,
	)
	if a.loading || a.refreshing {
		status = a.spinner.View() + " " + status
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, bar, content, status)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("suhail")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Move through the repository list\n\n" +
		dim.Render("Actions") + "\n" +
		"  o, enter      Open repository in browser\n" +
		"  H             Open repository homepage\n" +
		"  r             Force refresh\n" +
		"  /             Search (name, description, topics)\n" +
		"  s             Cycle sort: recency → stars → name\n" +
		"  f             Language filter\n" +
		"  t             Topic filter\n\n" +
		dim.Render("Filter Mode") + "\n" +
		"  ←/→, h/l     Move between values\n" +
		"  space/enter   Select or clear\n" +
		"  1-9           Select by number\n" +
		"  esc           Exit filter mode\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
