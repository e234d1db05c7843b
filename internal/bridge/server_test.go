package bridge

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/shikidesk/internal/apperr"
	"github.com/five82/shikidesk/internal/catalog"
	"github.com/five82/shikidesk/internal/prefs"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeCatalog struct {
	err error

	animeQuery  catalog.AnimeQuery
	peopleQuery catalog.PeopleQuery
	studioQuery string
	detailID    int64
}

func (f *fakeCatalog) SearchAnime(_ context.Context, q catalog.AnimeQuery) (catalog.Page[catalog.MediaSummary], error) {
	f.animeQuery = q
	if f.err != nil {
		return catalog.Page[catalog.MediaSummary]{}, f.err
	}
	items := []catalog.MediaSummary{{ID: 1, Collection: catalog.CollectionAnimes, Title: "Cowboy Bebop"}}
	return catalog.Page[catalog.MediaSummary]{Items: items, Page: q.Page, Limit: q.Limit}, nil
}

func (f *fakeCatalog) SearchManga(_ context.Context, q catalog.MangaQuery) (catalog.Page[catalog.MediaSummary], error) {
	return catalog.Page[catalog.MediaSummary]{Items: []catalog.MediaSummary{}, Page: q.Page, Limit: q.Limit}, f.err
}

func (f *fakeCatalog) SearchCharacters(_ context.Context, q catalog.CharacterQuery) (catalog.Page[catalog.CharacterSummary], error) {
	return catalog.Page[catalog.CharacterSummary]{Items: []catalog.CharacterSummary{}, Page: q.Page, Limit: q.Limit}, f.err
}

func (f *fakeCatalog) SearchPeople(_ context.Context, q catalog.PeopleQuery) (catalog.Page[catalog.PersonSummary], error) {
	f.peopleQuery = q
	return catalog.Page[catalog.PersonSummary]{Items: []catalog.PersonSummary{}, Page: q.Page, Limit: q.Limit}, f.err
}

func (f *fakeCatalog) AnimeByID(_ context.Context, id int64) (catalog.MediaDetail, error) {
	f.detailID = id
	if f.err != nil {
		return catalog.MediaDetail{}, f.err
	}
	return catalog.MediaDetail{MediaSummary: catalog.MediaSummary{ID: id, Collection: catalog.CollectionAnimes, Title: "Monster"}}, nil
}

func (f *fakeCatalog) MangaByID(_ context.Context, id int64) (catalog.MediaDetail, error) {
	f.detailID = id
	return catalog.MediaDetail{}, f.err
}

func (f *fakeCatalog) CharacterByID(_ context.Context, id int64) (catalog.CharacterDetail, error) {
	f.detailID = id
	return catalog.CharacterDetail{}, f.err
}

func (f *fakeCatalog) PersonByID(_ context.Context, id int64) (catalog.PersonDetail, error) {
	f.detailID = id
	return catalog.PersonDetail{}, f.err
}

func (f *fakeCatalog) Genres(context.Context) ([]catalog.Genre, error) {
	return []catalog.Genre{{ID: 1, Name: "Action"}}, f.err
}

func (f *fakeCatalog) Studios(_ context.Context, query string) ([]catalog.Studio, error) {
	f.studioQuery = query
	return []catalog.Studio{}, f.err
}

func (f *fakeCatalog) Publishers(context.Context, string) ([]catalog.Publisher, error) {
	return []catalog.Publisher{}, f.err
}

type fakeAccents struct {
	url   string
	color string
	err   error
}

func (f *fakeAccents) Get(_ context.Context, url string) (string, error) {
	f.url = url
	return f.color, f.err
}

type fixture struct {
	catalog  *fakeCatalog
	accents  *fakeAccents
	settings *prefs.Store
	handler  http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		catalog:  &fakeCatalog{},
		accents:  &fakeAccents{color: "rgba(1,2,3,0.9)"},
		settings: prefs.NewStore(filepath.Join(t.TempDir(), "prefs.toml"), prefs.Default()),
	}
	srv := New(f.catalog, f.accents, f.settings, WithTranslator(apperr.Translator{Locale: apperr.LocaleEN}))
	srv.newID = func() string { return "req-1" }
	f.handler = srv.Handler()
	return f
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apperr.Error {
	t.Helper()
	var out apperr.Error
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestSearchAnime_DefaultsAndHistory(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/anime?search=bebop&kind=tv&sort=score", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))

	assert.Equal(t, 1, f.catalog.animeQuery.Page)
	assert.Equal(t, catalog.DefaultLimit, f.catalog.animeQuery.Limit)
	assert.Equal(t, "tv", f.catalog.animeQuery.Kind)
	assert.Equal(t, catalog.SortScore, f.catalog.animeQuery.Sort)

	var page catalog.Page[catalog.MediaSummary]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Cowboy Bebop", page.Items[0].Title)
	assert.Equal(t, 20, page.Limit)

	assert.Equal(t, []string{"bebop"}, f.settings.Get().History)
}

func TestSearch_BlankQueryNotRemembered(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/api/manga?page=2&limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, f.settings.Get().History)
}

func TestSearch_RememberedQueryIsTrimmed(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/anime?search=naruto%20", "").Code)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/anime?search=naruto", "").Code)
	assert.Equal(t, []string{"naruto"}, f.settings.Get().History)
}

func TestSearch_FailedSearchNotRemembered(t *testing.T) {
	f := newFixture(t)
	f.catalog.err = apperr.Translator{}.InvalidLimit(0, catalog.MaxLimit)
	w := f.do(t, http.MethodGet, "/api/anime?search=x&limit=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, f.settings.Get().History)
}

func TestSearch_NonNumericPagingIsValidation(t *testing.T) {
	f := newFixture(t)
	for _, target := range []string{"/api/anime?page=abc", "/api/characters?limit=ten", "/api/people?is_seyu=maybe"} {
		w := f.do(t, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		got := decodeError(t, w)
		assert.Equal(t, apperr.KindValidation, got.Kind, target)
		assert.True(t, strings.HasPrefix(got.Message, "validation error: "), got.Message)
	}
}

func TestSearchPeople_RoleFilters(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/api/people?search=kana&is_seyu=true&is_producer=false", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, f.catalog.peopleQuery.IsSeyu)
	assert.True(t, *f.catalog.peopleQuery.IsSeyu)
	require.NotNil(t, f.catalog.peopleQuery.IsProducer)
	assert.False(t, *f.catalog.peopleQuery.IsProducer)
	assert.Nil(t, f.catalog.peopleQuery.IsMangaka)
}

func TestErrorStatusPerKind(t *testing.T) {
	cases := map[apperr.Kind]int{
		apperr.KindValidation:    http.StatusBadRequest,
		apperr.KindNotFound:      http.StatusNotFound,
		apperr.KindRateLimit:     http.StatusTooManyRequests,
		apperr.KindUpstreamAPI:   http.StatusBadGateway,
		apperr.KindProtocol:      http.StatusBadGateway,
		apperr.KindSerialization: http.StatusBadGateway,
		apperr.KindTransport:     http.StatusServiceUnavailable,
	}
	require.Len(t, cases, len(apperr.Kinds()))

	for kind, status := range cases {
		f := newFixture(t)
		f.catalog.err = &apperr.Error{Kind: kind, Message: string(kind)}
		w := f.do(t, http.MethodGet, "/api/genres", "")
		assert.Equal(t, status, w.Code, kind)
		got := decodeError(t, w)
		assert.Equal(t, kind, got.Kind)
		assert.Equal(t, string(kind), got.Message)
	}
}

func TestRateLimitSetsRetryAfter(t *testing.T) {
	f := newFixture(t)
	wait := 3 * time.Second
	f.catalog.err = &apperr.Error{Kind: apperr.KindRateLimit, Message: "slow down", RetryAfter: &wait}

	w := f.do(t, http.MethodGet, "/api/anime?search=x", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"kind":"rate_limit","message":"slow down","retry_after":3}`, w.Body.String())
}

func TestByID(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/anime/42", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), f.catalog.detailID)
	assert.Contains(t, w.Body.String(), `"title":"Monster"`)

	w = f.do(t, http.MethodGet, "/api/people/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f.catalog.err = apperr.Translator{Locale: apperr.LocaleEN}.NotFound("characters", 7)
	w = f.do(t, http.MethodGet, "/api/characters/7", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found: characters/7", decodeError(t, w).Message)
}

func TestStudiosForwardsQuery(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/api/studios?query=bones", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bones", f.catalog.studioQuery)
	assert.Equal(t, "[]", w.Body.String())
}

func TestAccent(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/api/accent?url=https%3A%2F%2Fshikimori.one%2Fa.jpg", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://shikimori.one/a.jpg", f.accents.url)
	assert.JSONEq(t, `{"color":"rgba(1,2,3,0.9)"}`, w.Body.String())

	f.accents.err = apperr.FromImage(assert.AnError)
	w = f.do(t, http.MethodGet, "/api/accent?url=x", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSettingsRoundTripKeepsHistory(t *testing.T) {
	f := newFixture(t)
	_, err := f.settings.Update(func(p prefs.Prefs) prefs.Prefs { return p.AddHistory("kept") })
	require.NoError(t, err)

	body := `{"theme":"light","nsfw":true,"accent_color":"#ff0000","preferred_language":"original","view_mode":"list","history":["ignored"]}`
	w := f.do(t, http.MethodPut, "/api/settings", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := f.settings.Get()
	assert.Equal(t, "light", got.Theme)
	assert.True(t, got.AllowAdultContent())
	assert.Equal(t, "list", got.ViewMode)
	assert.Equal(t, []string{"kept"}, got.History)

	w = f.do(t, http.MethodGet, "/api/settings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"preferred_language":"original"`)

	w = f.do(t, http.MethodPut, "/api/settings", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistory(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	f.do(t, http.MethodGet, "/api/anime?search=one", "")
	f.do(t, http.MethodGet, "/api/anime?search=two", "")
	w = f.do(t, http.MethodGet, "/api/history", "")
	assert.JSONEq(t, `["two","one"]`, w.Body.String())

	w = f.do(t, http.MethodDelete, "/api/history", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, f.settings.Get().History)
}

func TestServe_StopsOnCancel(t *testing.T) {
	f := newFixture(t)
	srv := New(f.catalog, f.accents, f.settings)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/genres")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
