package bridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/five82/shikidesk/internal/apperr"
	"github.com/five82/shikidesk/internal/catalog"
	"github.com/five82/shikidesk/internal/prefs"
)

const shutdownTimeout = 5 * time.Second

// Catalog is the facade the bridge exposes. *catalog.Service implements it.
type Catalog interface {
	SearchAnime(ctx context.Context, q catalog.AnimeQuery) (catalog.Page[catalog.MediaSummary], error)
	SearchManga(ctx context.Context, q catalog.MangaQuery) (catalog.Page[catalog.MediaSummary], error)
	SearchCharacters(ctx context.Context, q catalog.CharacterQuery) (catalog.Page[catalog.CharacterSummary], error)
	SearchPeople(ctx context.Context, q catalog.PeopleQuery) (catalog.Page[catalog.PersonSummary], error)
	AnimeByID(ctx context.Context, id int64) (catalog.MediaDetail, error)
	MangaByID(ctx context.Context, id int64) (catalog.MediaDetail, error)
	CharacterByID(ctx context.Context, id int64) (catalog.CharacterDetail, error)
	PersonByID(ctx context.Context, id int64) (catalog.PersonDetail, error)
	Genres(ctx context.Context) ([]catalog.Genre, error)
	Studios(ctx context.Context, query string) ([]catalog.Studio, error)
	Publishers(ctx context.Context, query string) ([]catalog.Publisher, error)
}

var _ Catalog = (*catalog.Service)(nil)

// Accents resolves poster accent colors. *accent.Cache implements it.
type Accents interface {
	Get(ctx context.Context, url string) (string, error)
}

// Settings is the user settings store. *prefs.Store implements it.
type Settings interface {
	Get() prefs.Prefs
	Update(fn func(prefs.Prefs) prefs.Prefs) (prefs.Prefs, error)
}

var _ Settings = (*prefs.Store)(nil)

// Server serves the catalog as JSON for a local webview frontend.
type Server struct {
	catalog    Catalog
	accents    Accents
	settings   Settings
	logger     hclog.Logger
	translator apperr.Translator
	newID      func() string
	engine     *gin.Engine
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l hclog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTranslator sets the locale of errors produced by the bridge itself.
func WithTranslator(t apperr.Translator) Option {
	return func(s *Server) { s.translator = t }
}

// New builds a server and its routes.
func New(cat Catalog, accents Accents, settings Settings, opts ...Option) *Server {
	s := &Server{
		catalog:  cat,
		accents:  accents,
		settings: settings,
		logger:   hclog.NewNullLogger(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())

	api := r.Group("/api")
	api.GET("/anime", s.searchAnime)
	api.GET("/anime/:id", byID(s, s.catalog.AnimeByID))
	api.GET("/manga", s.searchManga)
	api.GET("/manga/:id", byID(s, s.catalog.MangaByID))
	api.GET("/characters", s.searchCharacters)
	api.GET("/characters/:id", byID(s, s.catalog.CharacterByID))
	api.GET("/people", s.searchPeople)
	api.GET("/people/:id", byID(s, s.catalog.PersonByID))
	api.GET("/genres", s.genres)
	api.GET("/studios", s.studios)
	api.GET("/publishers", s.publishers)
	api.GET("/accent", s.accent)
	api.GET("/settings", s.getSettings)
	api.PUT("/settings", s.putSettings)
	api.GET("/history", s.getHistory)
	api.DELETE("/history", s.clearHistory)
	return r
}

const ctxRequestID = "request_id"

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := s.newID()
		c.Set(ctxRequestID, id)
		c.Header("X-Request-ID", id)

		started := time.Now()
		c.Next()

		s.logger.Info("request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(started),
		)
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("bridge listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("bridge stopped")
	return nil
}
