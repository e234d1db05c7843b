package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"

	"github.com/five82/shikidesk/internal/catalog"
	"github.com/five82/shikidesk/internal/prefs"
	"github.com/five82/shikidesk/internal/state"
)

// Tab is a content collection shown by the browser.
type Tab int

const (
	TabAnime Tab = iota
	TabManga
	TabCharacters
	TabPeople
)

var tabOrder = []Tab{TabAnime, TabManga, TabCharacters, TabPeople}

func (t Tab) String() string {
	switch t {
	case TabManga:
		return "manga"
	case TabCharacters:
		return "characters"
	case TabPeople:
		return "people"
	default:
		return "anime"
	}
}

// Label is the tab caption.
func (t Tab) Label() string {
	switch t {
	case TabManga:
		return "Манга"
	case TabCharacters:
		return "Персонажи"
	case TabPeople:
		return "Люди"
	default:
		return "Аниме"
	}
}

// View represents the current screen.
type View int

const (
	ViewList View = iota
	ViewDetail
)

// Catalog is the part of the catalog facade the browser uses.
type Catalog interface {
	SearchAnime(ctx context.Context, q catalog.AnimeQuery) (catalog.Page[catalog.MediaSummary], error)
	SearchManga(ctx context.Context, q catalog.MangaQuery) (catalog.Page[catalog.MediaSummary], error)
	SearchCharacters(ctx context.Context, q catalog.CharacterQuery) (catalog.Page[catalog.CharacterSummary], error)
	SearchPeople(ctx context.Context, q catalog.PeopleQuery) (catalog.Page[catalog.PersonSummary], error)
	AnimeByID(ctx context.Context, id int64) (catalog.MediaDetail, error)
	MangaByID(ctx context.Context, id int64) (catalog.MediaDetail, error)
	CharacterByID(ctx context.Context, id int64) (catalog.CharacterDetail, error)
	PersonByID(ctx context.Context, id int64) (catalog.PersonDetail, error)
}

// Accents resolves poster accent colors.
type Accents interface {
	Get(ctx context.Context, url string) (string, error)
}

// Settings is the user settings store.
type Settings interface {
	Get() prefs.Prefs
	Update(fn func(prefs.Prefs) prefs.Prefs) (prefs.Prefs, error)
}

// Options configures the UI.
type Options struct {
	Context  context.Context
	Catalog  Catalog
	Accents  Accents
	Settings Settings
	Store    *state.Store
	Logger   hclog.Logger
	// Limit is the page size; zero uses catalog.DefaultLimit.
	Limit int
	// HasDarkBackground resolves the "system" theme. Nil means dark.
	HasDarkBackground func() bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx      context.Context
	catalog  Catalog
	accents  Accents
	settings Settings
	store    *state.Store
	logger   hclog.Logger
	limit    int
	hasDark  func() bool

	keys   keyMap
	help   help.Model
	input  textinput.Model
	detail viewport.Model

	theme    Theme
	tab      Tab
	view     View
	editing  bool
	query    string
	showHelp bool
	width    int
	height   int
	ready    bool

	snapshot state.Snapshot
	selected int

	detailSeq     int
	detailCard    catalog.Card
	detailEntity  any
	detailErr     error
	detailLoading bool
	accentColor   string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = catalog.DefaultLimit
	}

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "Поиск..."
	input.CharLimit = 200
	input.ShowSuggestions = true

	m := Model{
		ctx:      ctx,
		catalog:  opts.Catalog,
		accents:  opts.Accents,
		settings: opts.Settings,
		store:    store,
		logger:   logger,
		limit:    limit,
		hasDark:  opts.HasDarkBackground,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		input:    input,
		detail:   viewport.New(0, 0),
	}
	m.applyTheme(m.prefs().Theme)
	return m
}

func (m Model) prefs() prefs.Prefs {
	if m.settings == nil {
		return prefs.Default()
	}
	return m.settings.Get()
}

func (m *Model) applyTheme(name string) {
	m.theme = ResolveTheme(name, m.hasDark).WithAccent(m.prefs().AccentColor)
	styles := m.theme.Styles()
	m.help.Styles.ShortKey = styles.AccentText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullKey = styles.WarningText
	m.help.Styles.FullDesc = styles.Text
	m.help.Styles.FullSeparator = styles.FaintText
	m.input.PromptStyle = styles.AccentText
	m.input.TextStyle = styles.Text
	m.input.PlaceholderStyle = styles.FaintText
}

// Init implements tea.Model. The browser opens on the default anime listing.
func (m Model) Init() tea.Cmd {
	return m.beginSearch()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.resizeDetail()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case searchResultMsg:
		return m.handleSearchResult(msg), nil

	case detailMsg:
		if msg.seq != m.detailSeq {
			return m, nil
		}
		m.detailLoading = false
		m.detailEntity = msg.entity
		m.detailErr = msg.err
		m.renderDetail()
		return m, nil

	case accentMsg:
		if msg.seq != m.detailSeq {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Debug("accent unavailable", "url", msg.url, "error", msg.err)
			return m, nil
		}
		m.accentColor = msg.color
		m.renderDetail()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Загрузка..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.editing {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	}

	if m.view == ViewDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		m.input.Blur()
		m.query = strings.TrimSpace(m.input.Value())
		m.input.SetValue(m.query)
		m.rememberQuery(m.query)
		m.selected = 0
		cmd := m.beginSearch()
		return m, cmd
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		m.input.SetValue(m.query)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.editing = true
		m.input.SetSuggestions(m.prefs().History)
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.NextTab):
		cmd := m.switchTab(1)
		return m, cmd
	case key.Matches(msg, m.keys.PrevTab):
		cmd := m.switchTab(-1)
		return m, cmd
	case key.Matches(msg, m.keys.More):
		cmd := m.loadMore()
		return m, cmd
	case key.Matches(msg, m.keys.Open):
		cmd := m.openDetail()
		return m, cmd
	}

	count := len(m.snapshot.Cards)
	if count == 0 {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < count-1 {
			m.selected++
		} else {
			cmd := m.loadMore()
			return m, cmd
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
	case key.Matches(msg, m.keys.PageUp):
		m.selected = max(0, m.selected-m.listHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.selected = min(count-1, m.selected+m.listHeight())
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.view = ViewList
		m.detailSeq++
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *Model) switchTab(delta int) tea.Cmd {
	n := len(tabOrder)
	m.tab = tabOrder[((int(m.tab)+delta)%n+n)%n]
	m.selected = 0
	return m.beginSearch()
}

func (m *Model) cycleTheme() {
	next := NextTheme(m.theme.Name)
	if m.settings != nil {
		if _, err := m.settings.Update(func(p prefs.Prefs) prefs.Prefs {
			p.Theme = next
			return p
		}); err != nil {
			m.logger.Warn("save theme", "theme", next, "error", err)
		}
	}
	m.applyTheme(next)
	m.renderDetail()
}

// NextTheme returns the next settings theme in the cycle.
func NextTheme(current string) string {
	names := prefs.Themes()
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

func (m *Model) rememberQuery(query string) {
	if m.settings == nil || strings.TrimSpace(query) == "" {
		return
	}
	if _, err := m.settings.Update(func(p prefs.Prefs) prefs.Prefs { return p.AddHistory(query) }); err != nil {
		m.logger.Warn("save search history", "error", err)
	}
}

func (m Model) searchKey() string {
	return m.tab.String() + ":" + m.query
}

// beginSearch starts a new session for the current tab and query.
func (m *Model) beginSearch() tea.Cmd {
	tok := m.store.Begin(m.searchKey())
	m.snapshot = m.store.Snapshot()
	return m.fetchPage(tok)
}

func (m *Model) loadMore() tea.Cmd {
	tok, ok := m.store.BeginMore()
	if !ok {
		return nil
	}
	m.snapshot = m.store.Snapshot()
	return m.fetchPage(tok)
}

func (m Model) handleSearchResult(msg searchResultMsg) Model {
	var applied bool
	if msg.err != nil {
		applied = m.store.Fail(msg.token, msg.err)
	} else {
		applied = m.store.Apply(msg.token, msg.cards, msg.limit)
	}
	if !applied {
		m.logger.Debug("discarded stale results", "page", msg.token.Page)
	}
	m.snapshot = m.store.Snapshot()
	if m.selected >= len(m.snapshot.Cards) {
		m.selected = max(0, len(m.snapshot.Cards)-1)
	}
	return m
}

func (m *Model) openDetail() tea.Cmd {
	if m.selected < 0 || m.selected >= len(m.snapshot.Cards) {
		return nil
	}
	card := m.snapshot.Cards[m.selected]

	m.detailSeq++
	m.view = ViewDetail
	m.detailCard = card
	m.detailEntity = nil
	m.detailErr = nil
	m.detailLoading = true
	m.accentColor = ""
	m.detail.GotoTop()
	m.renderDetail()

	cmds := []tea.Cmd{fetchDetailCmd(m.ctx, m.catalog, card, m.detailSeq)}
	if m.accents != nil && card.PosterURL != "" {
		cmds = append(cmds, fetchAccentCmd(m.ctx, m.accents, card.PosterURL, m.detailSeq))
	}
	return tea.Batch(cmds...)
}

func (m *Model) resizeDetail() {
	m.detail.Width = max(0, m.width-2)
	m.detail.Height = max(0, m.height-chromeLines)
	m.renderDetail()
}

// Messages

type searchResultMsg struct {
	token state.Token
	cards []catalog.Card
	limit int
	err   error
}

type detailMsg struct {
	seq    int
	entity any
	err    error
}

type accentMsg struct {
	seq   int
	url   string
	color string
	err   error
}

// Commands

func (m Model) fetchPage(tok state.Token) tea.Cmd {
	ctx, cat, tab, query, limit := m.ctx, m.catalog, m.tab, m.query, m.limit
	return func() tea.Msg {
		cards, err := search(ctx, cat, tab, query, tok.Page, limit)
		return searchResultMsg{token: tok, cards: cards, limit: limit, err: err}
	}
}

func search(ctx context.Context, cat Catalog, tab Tab, query string, page, limit int) ([]catalog.Card, error) {
	if cat == nil {
		return nil, errors.New("catalog is not configured")
	}
	switch tab {
	case TabManga:
		p, err := cat.SearchManga(ctx, catalog.MangaQuery{Search: query, Page: page, Limit: limit})
		if err != nil {
			return nil, err
		}
		return catalog.Cards(p.Items, catalog.MediaCard), nil
	case TabCharacters:
		p, err := cat.SearchCharacters(ctx, catalog.CharacterQuery{Search: query, Page: page, Limit: limit})
		if err != nil {
			return nil, err
		}
		return catalog.Cards(p.Items, catalog.CharacterCard), nil
	case TabPeople:
		p, err := cat.SearchPeople(ctx, catalog.PeopleQuery{Search: query, Page: page, Limit: limit})
		if err != nil {
			return nil, err
		}
		return catalog.Cards(p.Items, catalog.PersonCard), nil
	default:
		p, err := cat.SearchAnime(ctx, catalog.AnimeQuery{Search: query, Page: page, Limit: limit})
		if err != nil {
			return nil, err
		}
		return catalog.Cards(p.Items, catalog.MediaCard), nil
	}
}

func fetchDetailCmd(ctx context.Context, cat Catalog, card catalog.Card, seq int) tea.Cmd {
	return func() tea.Msg {
		var (
			entity any
			err    error
		)
		switch card.Collection {
		case catalog.CollectionMangas:
			entity, err = cat.MangaByID(ctx, card.ID)
		case catalog.CollectionCharacters:
			entity, err = cat.CharacterByID(ctx, card.ID)
		case catalog.CollectionPeople:
			entity, err = cat.PersonByID(ctx, card.ID)
		case catalog.CollectionAnimes:
			entity, err = cat.AnimeByID(ctx, card.ID)
		default:
			err = fmt.Errorf("unknown collection %q", card.Collection)
		}
		return detailMsg{seq: seq, entity: entity, err: err}
	}
}

func fetchAccentCmd(ctx context.Context, accents Accents, url string, seq int) tea.Cmd {
	return func() tea.Msg {
		color, err := accents.Get(ctx, url)
		return accentMsg{seq: seq, url: url, color: color, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.HasDarkBackground == nil {
		opts.HasDarkBackground = lipgloss.HasDarkBackground
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
