package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shikidesk/internal/apperr"
	"github.com/five82/shikidesk/internal/catalog"
	"github.com/five82/shikidesk/internal/prefs"
	"github.com/five82/shikidesk/internal/state"
)

type fakeCatalog struct {
	perPage int
	err     error

	animeQueries []catalog.AnimeQuery
	mangaQueries []catalog.MangaQuery
	detailIDs    []int64
}

func (f *fakeCatalog) media(collection catalog.Collection, page int) []catalog.MediaSummary {
	items := make([]catalog.MediaSummary, 0, f.perPage)
	for i := 0; i < f.perPage; i++ {
		id := int64((page-1)*f.perPage + i + 1)
		poster := fmt.Sprintf("https://img.example/%d.jpg", id)
		items = append(items, catalog.MediaSummary{
			ID:         id,
			Collection: collection,
			Title:      fmt.Sprintf("Title %d", id),
			PosterURL:  &poster,
		})
	}
	return items
}

func (f *fakeCatalog) SearchAnime(_ context.Context, q catalog.AnimeQuery) (catalog.Page[catalog.MediaSummary], error) {
	f.animeQueries = append(f.animeQueries, q)
	if f.err != nil {
		return catalog.Page[catalog.MediaSummary]{}, f.err
	}
	return catalog.Page[catalog.MediaSummary]{Items: f.media(catalog.CollectionAnimes, q.Page), Page: q.Page, Limit: q.Limit}, nil
}

func (f *fakeCatalog) SearchManga(_ context.Context, q catalog.MangaQuery) (catalog.Page[catalog.MediaSummary], error) {
	f.mangaQueries = append(f.mangaQueries, q)
	return catalog.Page[catalog.MediaSummary]{Items: f.media(catalog.CollectionMangas, q.Page), Page: q.Page, Limit: q.Limit}, nil
}

func (f *fakeCatalog) SearchCharacters(context.Context, catalog.CharacterQuery) (catalog.Page[catalog.CharacterSummary], error) {
	return catalog.Page[catalog.CharacterSummary]{}, nil
}

func (f *fakeCatalog) SearchPeople(context.Context, catalog.PeopleQuery) (catalog.Page[catalog.PersonSummary], error) {
	return catalog.Page[catalog.PersonSummary]{}, nil
}

func (f *fakeCatalog) AnimeByID(_ context.Context, id int64) (catalog.MediaDetail, error) {
	f.detailIDs = append(f.detailIDs, id)
	return catalog.MediaDetail{MediaSummary: catalog.MediaSummary{ID: id, Collection: catalog.CollectionAnimes, Title: fmt.Sprintf("Title %d", id)}}, nil
}

func (f *fakeCatalog) MangaByID(_ context.Context, id int64) (catalog.MediaDetail, error) {
	f.detailIDs = append(f.detailIDs, id)
	return catalog.MediaDetail{}, nil
}

func (f *fakeCatalog) CharacterByID(context.Context, int64) (catalog.CharacterDetail, error) {
	return catalog.CharacterDetail{}, nil
}

func (f *fakeCatalog) PersonByID(context.Context, int64) (catalog.PersonDetail, error) {
	return catalog.PersonDetail{}, nil
}

type fakeAccents struct {
	urls []string
}

func (f *fakeAccents) Get(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return "#aa3344", nil
}

func newTestModel(t *testing.T, cat *fakeCatalog) (Model, *prefs.Store) {
	t.Helper()
	settings := prefs.NewStore(filepath.Join(t.TempDir(), "prefs.toml"), prefs.Default())
	m := New(Options{
		Catalog:  cat,
		Accents:  &fakeAccents{},
		Settings: settings,
		Store:    &state.Store{},
		Limit:    2,
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model), settings
}

// run executes cmd and feeds the browser's own messages back into the model.
func run(m Model, cmd tea.Cmd) Model {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case searchResultMsg, detailMsg, accentMsg:
			next, more := m.Update(msg)
			m = next.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

func press(m Model, k string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestInitLoadsFirstPage(t *testing.T) {
	cat := &fakeCatalog{perPage: 2}
	m, _ := newTestModel(t, cat)

	m = run(m, m.Init())

	if len(m.snapshot.Cards) != 2 {
		t.Fatalf("cards = %d, want 2", len(m.snapshot.Cards))
	}
	if m.snapshot.Key != "anime:" {
		t.Fatalf("key = %q, want anime:", m.snapshot.Key)
	}
	if len(cat.animeQueries) != 1 || cat.animeQueries[0].Page != 1 || cat.animeQueries[0].Limit != 2 {
		t.Fatalf("anime queries = %+v", cat.animeQueries)
	}
	if !strings.Contains(m.View(), "Title 1") {
		t.Fatalf("view does not list the first card:\n%s", m.View())
	}
}

func TestSearchRunsQueryAndRecordsHistory(t *testing.T) {
	cat := &fakeCatalog{perPage: 1}
	m, settings := newTestModel(t, cat)
	m = run(m, m.Init())

	m, _ = press(m, "/")
	if !m.editing {
		t.Fatalf("expected search bar to be focused")
	}
	m, _ = press(m, "naruto")
	m, cmd := press(m, "enter")
	m = run(m, cmd)

	if m.editing {
		t.Fatalf("expected search bar to be blurred")
	}
	last := cat.animeQueries[len(cat.animeQueries)-1]
	if last.Search != "naruto" || last.Page != 1 {
		t.Fatalf("last query = %+v, want search naruto page 1", last)
	}
	if got := settings.Get().History; len(got) != 1 || got[0] != "naruto" {
		t.Fatalf("history = %v, want [naruto]", got)
	}
	if m.snapshot.Key != "anime:naruto" {
		t.Fatalf("key = %q, want anime:naruto", m.snapshot.Key)
	}
}

func TestEscCancelsQueryEdit(t *testing.T) {
	cat := &fakeCatalog{perPage: 1}
	m, settings := newTestModel(t, cat)

	m, _ = press(m, "/")
	m, _ = press(m, "bleach")
	m, cmd := press(m, "esc")

	if cmd != nil {
		t.Fatalf("expected no command on cancel")
	}
	if m.editing || m.query != "" || m.input.Value() != "" {
		t.Fatalf("editing=%v query=%q input=%q, want cancelled edit", m.editing, m.query, m.input.Value())
	}
	if len(settings.Get().History) != 0 {
		t.Fatalf("history = %v, want empty", settings.Get().History)
	}
}

func TestStaleResultsAreDiscarded(t *testing.T) {
	cat := &fakeCatalog{perPage: 2}
	m, _ := newTestModel(t, cat)

	first := m.Init()
	m, second := press(m, "tab")

	m = run(m, second)
	m = run(m, first)

	if m.snapshot.Key != "manga:" {
		t.Fatalf("key = %q, want manga:", m.snapshot.Key)
	}
	for _, card := range m.snapshot.Cards {
		if card.Collection != catalog.CollectionMangas {
			t.Fatalf("card %+v leaked from the superseded anime search", card)
		}
	}
}

func TestMovingPastLastRowLoadsMore(t *testing.T) {
	cat := &fakeCatalog{perPage: 2}
	m, _ := newTestModel(t, cat)
	m = run(m, m.Init())

	m, _ = press(m, "down")
	if m.selected != 1 {
		t.Fatalf("selected = %d, want 1", m.selected)
	}
	m, cmd := press(m, "down")
	if cmd == nil {
		t.Fatalf("expected a load-more command at the last row")
	}
	m = run(m, cmd)

	if len(m.snapshot.Cards) != 4 {
		t.Fatalf("cards = %d, want 4", len(m.snapshot.Cards))
	}
	if got := cat.animeQueries[len(cat.animeQueries)-1].Page; got != 2 {
		t.Fatalf("page = %d, want 2", got)
	}
}

func TestShortPageStopsLoadMore(t *testing.T) {
	cat := &fakeCatalog{perPage: 1}
	m, _ := newTestModel(t, cat)
	m = run(m, m.Init())

	if _, cmd := press(m, "m"); cmd != nil {
		t.Fatalf("expected no load-more after a short page")
	}
}

func TestOpenDetailFetchesRecordAndAccent(t *testing.T) {
	cat := &fakeCatalog{perPage: 2}
	m, _ := newTestModel(t, cat)
	m = run(m, m.Init())

	m, cmd := press(m, "enter")
	if m.view != ViewDetail || !m.detailLoading {
		t.Fatalf("view = %v loading = %v, want loading detail", m.view, m.detailLoading)
	}
	m = run(m, cmd)

	if len(cat.detailIDs) != 1 || cat.detailIDs[0] != 1 {
		t.Fatalf("detail ids = %v, want [1]", cat.detailIDs)
	}
	if _, ok := m.detailEntity.(catalog.MediaDetail); !ok {
		t.Fatalf("detail entity = %T, want catalog.MediaDetail", m.detailEntity)
	}
	if m.accentColor != "#aa3344" {
		t.Fatalf("accent = %q, want #aa3344", m.accentColor)
	}
	if !strings.Contains(m.View(), "Title 1") {
		t.Fatalf("detail view does not show the title:\n%s", m.View())
	}

	m, _ = press(m, "esc")
	if m.view != ViewList {
		t.Fatalf("view = %v, want list", m.view)
	}
}

func TestClosedDetailIgnoresLateResponse(t *testing.T) {
	cat := &fakeCatalog{perPage: 2}
	m, _ := newTestModel(t, cat)
	m = run(m, m.Init())

	m, cmd := press(m, "enter")
	m, _ = press(m, "esc")
	m = run(m, cmd)

	if m.detailEntity != nil || m.accentColor != "" {
		t.Fatalf("late detail applied: entity=%v accent=%q", m.detailEntity, m.accentColor)
	}
}

func TestSearchFailureShowsMessage(t *testing.T) {
	cat := &fakeCatalog{perPage: 2, err: &apperr.Error{Kind: apperr.KindTransport, Message: "network down"}}
	m, _ := newTestModel(t, cat)
	m = run(m, m.Init())

	if m.snapshot.LastError == nil {
		t.Fatalf("expected last error")
	}
	if !strings.Contains(m.View(), "network down") {
		t.Fatalf("view does not show the error:\n%s", m.View())
	}
}

func TestCycleThemePersists(t *testing.T) {
	m, settings := newTestModel(t, &fakeCatalog{})

	m, _ = press(m, "T")

	if m.theme.Name != "light" {
		t.Fatalf("theme = %q, want light", m.theme.Name)
	}
	if got := settings.Get().Theme; got != "light" {
		t.Fatalf("saved theme = %q, want light", got)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, &fakeCatalog{})

	m, _ = press(m, "?")
	if !m.showHelp {
		t.Fatalf("expected help overlay")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay missing title")
	}
	m, _ = press(m, "j")
	if m.showHelp {
		t.Fatalf("expected any key to close help")
	}
}

func TestErrorText(t *testing.T) {
	if got := errorText(errors.New("boom")); got != "boom" {
		t.Fatalf("errorText = %q, want boom", got)
	}
}
