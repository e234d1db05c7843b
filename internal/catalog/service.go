package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/five82/shikidesk/internal/apperr"
	"github.com/five82/shikidesk/internal/shiki"
)

// MaxLimit is the largest page size the service forwards upstream.
const MaxLimit = 50

// DefaultLimit is the page size callers use when the user picked none.
const DefaultLimit = 20

// Upstream is the transport the service dispatches to. *shiki.Client
// implements it.
type Upstream interface {
	Animes(ctx context.Context, params shiki.AnimeParams) ([]shiki.Media, error)
	AnimeDetail(ctx context.Context, id int64, censored *bool) (*shiki.Media, error)
	Mangas(ctx context.Context, params shiki.MangaParams) ([]shiki.Media, error)
	MangaDetail(ctx context.Context, id int64, censored *bool) (*shiki.Media, error)
	Characters(ctx context.Context, params shiki.CharacterParams) ([]shiki.Character, error)
	People(ctx context.Context, params shiki.PeopleParams) ([]shiki.Person, error)
	Character(ctx context.Context, id int64) (*shiki.RESTCharacter, error)
	Person(ctx context.Context, id int64) (*shiki.RESTPerson, error)
	Genres(ctx context.Context) ([]shiki.RESTGenre, error)
	Studios(ctx context.Context) ([]shiki.RESTStudio, error)
	Publishers(ctx context.Context) ([]shiki.RESTPublisher, error)
}

var _ Upstream = (*shiki.Client)(nil)

// Settings is the one user preference the service reads.
type Settings interface {
	AllowAdultContent() bool
}

// SortOption is the user-facing ordering of search results.
type SortOption string

const (
	SortRelevance SortOption = "relevance"
	SortScore     SortOption = "score"
	SortTitle     SortOption = "title"
)

// upstreamOrder maps a sort option to the upstream order argument. Unknown
// values are forwarded verbatim.
func upstreamOrder(s SortOption) string {
	switch s {
	case "", SortRelevance:
		return ""
	case SortScore:
		return "ranked"
	case SortTitle:
		return "name"
	default:
		return string(s)
	}
}

// AnimeQuery is a paginated anime search.
type AnimeQuery struct {
	Search string
	Page   int
	Limit  int
	Kind   string
	Status string
	Season string
	Rating string
	Genre  string
	Studio string
	Sort   SortOption
}

// MangaQuery is a paginated manga search.
type MangaQuery struct {
	Search    string
	Page      int
	Limit     int
	Kind      string
	Status    string
	Season    string
	Genre     string
	Publisher string
	Sort      SortOption
}

// CharacterQuery is a paginated character search.
type CharacterQuery struct {
	Search string
	Page   int
	Limit  int
}

// PeopleQuery is a paginated people search.
type PeopleQuery struct {
	Search     string
	Page       int
	Limit      int
	IsSeyu     *bool
	IsMangaka  *bool
	IsProducer *bool
}

// Service is the catalog facade. Each operation validates its input, makes
// exactly one upstream call, maps the result and translates any failure into
// an *apperr.Error.
type Service struct {
	upstream   Upstream
	settings   Settings
	mapper     Mapper
	logger     hclog.Logger
	translator apperr.Translator
	newID      func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithMapper sets the mapper, which carries the site origin.
func WithMapper(m Mapper) Option {
	return func(s *Service) { s.mapper = m }
}

// WithLogger sets the logger used for per-call debug records.
func WithLogger(l hclog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTranslator sets the message locale of returned errors.
func WithTranslator(t apperr.Translator) Option {
	return func(s *Service) { s.translator = t }
}

// NewService wires the facade. A nil settings value means adult content is
// hidden.
func NewService(upstream Upstream, settings Settings, opts ...Option) *Service {
	s := &Service{
		upstream: upstream,
		settings: settings,
		logger:   hclog.NewNullLogger(),
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mapper returns the mapper in use.
func (s *Service) Mapper() Mapper { return s.mapper }

func (s *Service) censored() *bool {
	censored := true
	if s.settings != nil {
		censored = !s.settings.AllowAdultContent()
	}
	return &censored
}

func (s *Service) checkPage(page, limit int) error {
	if page < 1 {
		return s.translator.InvalidPage(page)
	}
	if limit < 1 || limit > MaxLimit {
		return s.translator.InvalidLimit(limit, MaxLimit)
	}
	return nil
}

func (s *Service) checkID(id int64) error {
	if id < 1 {
		return s.translator.InvalidID(id)
	}
	return nil
}

func (s *Service) begin(op string, args ...any) hclog.Logger {
	log := s.logger.With("op", op, "request_id", s.newID())
	log.Debug("upstream call", args...)
	return log
}

func (s *Service) fail(log hclog.Logger, err error) error {
	appErr := s.translator.FromUpstream(err)
	log.Debug("upstream call failed", "kind", appErr.Kind, "error", err)
	return appErr
}

// SearchAnime runs a paginated anime search.
func (s *Service) SearchAnime(ctx context.Context, q AnimeQuery) (Page[MediaSummary], error) {
	if err := s.checkPage(q.Page, q.Limit); err != nil {
		return Page[MediaSummary]{}, err
	}
	log := s.begin("search_anime", "search", q.Search, "page", q.Page, "limit", q.Limit)
	raw, err := s.upstream.Animes(ctx, shiki.AnimeParams{
		Search:   q.Search,
		Page:     q.Page,
		Limit:    q.Limit,
		Kind:     q.Kind,
		Status:   q.Status,
		Season:   q.Season,
		Rating:   q.Rating,
		Genre:    q.Genre,
		Studio:   q.Studio,
		Order:    upstreamOrder(q.Sort),
		Censored: s.censored(),
	})
	if err != nil {
		return Page[MediaSummary]{}, s.fail(log, err)
	}
	items := make([]MediaSummary, 0, len(raw))
	for _, r := range raw {
		items = append(items, s.mapper.AnimeSummary(r))
	}
	log.Debug("upstream call done", "items", len(items))
	return Page[MediaSummary]{Items: items, Page: q.Page, Limit: q.Limit}, nil
}

// SearchManga runs a paginated manga search.
func (s *Service) SearchManga(ctx context.Context, q MangaQuery) (Page[MediaSummary], error) {
	if err := s.checkPage(q.Page, q.Limit); err != nil {
		return Page[MediaSummary]{}, err
	}
	log := s.begin("search_manga", "search", q.Search, "page", q.Page, "limit", q.Limit)
	raw, err := s.upstream.Mangas(ctx, shiki.MangaParams{
		Search:    q.Search,
		Page:      q.Page,
		Limit:     q.Limit,
		Kind:      q.Kind,
		Status:    q.Status,
		Season:    q.Season,
		Genre:     q.Genre,
		Publisher: q.Publisher,
		Order:     upstreamOrder(q.Sort),
		Censored:  s.censored(),
	})
	if err != nil {
		return Page[MediaSummary]{}, s.fail(log, err)
	}
	items := make([]MediaSummary, 0, len(raw))
	for _, r := range raw {
		items = append(items, s.mapper.MangaSummary(r))
	}
	log.Debug("upstream call done", "items", len(items))
	return Page[MediaSummary]{Items: items, Page: q.Page, Limit: q.Limit}, nil
}

// SearchCharacters runs a paginated character search.
func (s *Service) SearchCharacters(ctx context.Context, q CharacterQuery) (Page[CharacterSummary], error) {
	if err := s.checkPage(q.Page, q.Limit); err != nil {
		return Page[CharacterSummary]{}, err
	}
	log := s.begin("search_characters", "search", q.Search, "page", q.Page, "limit", q.Limit)
	raw, err := s.upstream.Characters(ctx, shiki.CharacterParams{Search: q.Search, Page: q.Page, Limit: q.Limit})
	if err != nil {
		return Page[CharacterSummary]{}, s.fail(log, err)
	}
	items := make([]CharacterSummary, 0, len(raw))
	for _, r := range raw {
		items = append(items, s.mapper.CharacterSummary(r))
	}
	log.Debug("upstream call done", "items", len(items))
	return Page[CharacterSummary]{Items: items, Page: q.Page, Limit: q.Limit}, nil
}

// SearchPeople runs a paginated people search.
func (s *Service) SearchPeople(ctx context.Context, q PeopleQuery) (Page[PersonSummary], error) {
	if err := s.checkPage(q.Page, q.Limit); err != nil {
		return Page[PersonSummary]{}, err
	}
	log := s.begin("search_people", "search", q.Search, "page", q.Page, "limit", q.Limit)
	raw, err := s.upstream.People(ctx, shiki.PeopleParams{
		Search:     q.Search,
		Page:       q.Page,
		Limit:      q.Limit,
		IsSeyu:     q.IsSeyu,
		IsMangaka:  q.IsMangaka,
		IsProducer: q.IsProducer,
	})
	if err != nil {
		return Page[PersonSummary]{}, s.fail(log, err)
	}
	items := make([]PersonSummary, 0, len(raw))
	for _, r := range raw {
		items = append(items, s.mapper.PersonSummary(r))
	}
	log.Debug("upstream call done", "items", len(items))
	return Page[PersonSummary]{Items: items, Page: q.Page, Limit: q.Limit}, nil
}

// AnimeByID fetches one anime. An empty result is not_found.
func (s *Service) AnimeByID(ctx context.Context, id int64) (MediaDetail, error) {
	if err := s.checkID(id); err != nil {
		return MediaDetail{}, err
	}
	log := s.begin("anime_by_id", "id", id)
	raw, err := s.upstream.AnimeDetail(ctx, id, s.censored())
	if err != nil {
		return MediaDetail{}, s.fail(log, err)
	}
	if raw == nil {
		return MediaDetail{}, s.translator.NotFound(string(CollectionAnimes), id)
	}
	return s.mapper.AnimeDetail(*raw), nil
}

// MangaByID fetches one manga. An empty result is not_found.
func (s *Service) MangaByID(ctx context.Context, id int64) (MediaDetail, error) {
	if err := s.checkID(id); err != nil {
		return MediaDetail{}, err
	}
	log := s.begin("manga_by_id", "id", id)
	raw, err := s.upstream.MangaDetail(ctx, id, s.censored())
	if err != nil {
		return MediaDetail{}, s.fail(log, err)
	}
	if raw == nil {
		return MediaDetail{}, s.translator.NotFound(string(CollectionMangas), id)
	}
	return s.mapper.MangaDetail(*raw), nil
}

// CharacterByID fetches one character from the REST endpoint.
func (s *Service) CharacterByID(ctx context.Context, id int64) (CharacterDetail, error) {
	if err := s.checkID(id); err != nil {
		return CharacterDetail{}, err
	}
	log := s.begin("character_by_id", "id", id)
	raw, err := s.upstream.Character(ctx, id)
	if err != nil {
		return CharacterDetail{}, s.fail(log, err)
	}
	if raw == nil {
		return CharacterDetail{}, s.translator.NotFound(string(CollectionCharacters), id)
	}
	return s.mapper.CharacterDetail(*raw), nil
}

// PersonByID fetches one person from the REST endpoint.
func (s *Service) PersonByID(ctx context.Context, id int64) (PersonDetail, error) {
	if err := s.checkID(id); err != nil {
		return PersonDetail{}, err
	}
	log := s.begin("person_by_id", "id", id)
	raw, err := s.upstream.Person(ctx, id)
	if err != nil {
		return PersonDetail{}, s.fail(log, err)
	}
	if raw == nil {
		return PersonDetail{}, s.translator.NotFound(string(CollectionPeople), id)
	}
	return s.mapper.PersonDetail(*raw), nil
}

// Genres lists every genre.
func (s *Service) Genres(ctx context.Context) ([]Genre, error) {
	log := s.begin("genres")
	raw, err := s.upstream.Genres(ctx)
	if err != nil {
		return nil, s.fail(log, err)
	}
	out := make([]Genre, 0, len(raw))
	for _, r := range raw {
		out = append(out, s.mapper.Genre(r))
	}
	return out, nil
}

// Studios lists studios whose name contains query, case-insensitively. An
// empty query returns all of them sorted by name.
func (s *Service) Studios(ctx context.Context, query string) ([]Studio, error) {
	log := s.begin("studios", "query", query)
	raw, err := s.upstream.Studios(ctx)
	if err != nil {
		return nil, s.fail(log, err)
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]Studio, 0, len(raw))
	for _, r := range raw {
		studio := s.mapper.Studio(r)
		if needle == "" || strings.Contains(strings.ToLower(studio.Name), needle) {
			out = append(out, studio)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// Publishers lists publishers whose name contains query, case-insensitively.
func (s *Service) Publishers(ctx context.Context, query string) ([]Publisher, error) {
	log := s.begin("publishers", "query", query)
	raw, err := s.upstream.Publishers(ctx)
	if err != nil {
		return nil, s.fail(log, err)
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]Publisher, 0, len(raw))
	for _, r := range raw {
		publisher := s.mapper.Publisher(r)
		if needle == "" || strings.Contains(strings.ToLower(publisher.Name), needle) {
			out = append(out, publisher)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}
