package bridge

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/five82/shikidesk/internal/apperr"
	"github.com/five82/shikidesk/internal/catalog"
	"github.com/five82/shikidesk/internal/prefs"
)

// statusFor maps an error kind to the HTTP status of the bridge response.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindRateLimit:
		return http.StatusTooManyRequests
	case apperr.KindUpstreamAPI, apperr.KindProtocol, apperr.KindSerialization:
		return http.StatusBadGateway
	case apperr.KindTransport:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		appErr = s.translator.FromUpstream(err)
	}
	if appErr.RetryAfter != nil {
		secs := int64(appErr.RetryAfter.Round(time.Second) / time.Second)
		c.Header("Retry-After", strconv.FormatInt(secs, 10))
	}
	s.logger.Debug("request failed",
		"request_id", c.GetString(ctxRequestID),
		"kind", appErr.Kind,
		"error", appErr.Message,
	)
	c.AbortWithStatusJSON(statusFor(appErr.Kind), appErr)
}

func (s *Server) intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, s.translator.Validation("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

func (s *Server) boolQuery(c *gin.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, s.translator.Validation("%s must be true or false, got %q", name, raw)
	}
	return &v, nil
}

func (s *Server) paging(c *gin.Context) (page, limit int, err error) {
	if page, err = s.intQuery(c, "page", 1); err != nil {
		return 0, 0, err
	}
	if limit, err = s.intQuery(c, "limit", catalog.DefaultLimit); err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func (s *Server) idParam(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, s.translator.Validation("id must be an integer, got %q", raw)
	}
	return id, nil
}

// remember adds a search query to the history. Failing to persist it never
// fails the search.
func (s *Server) remember(c *gin.Context, query string) {
	if strings.TrimSpace(query) == "" || s.settings == nil {
		return
	}
	if _, err := s.settings.Update(func(p prefs.Prefs) prefs.Prefs { return p.AddHistory(query) }); err != nil {
		s.logger.Warn("save search history", "request_id", c.GetString(ctxRequestID), "error", err)
	}
}

func (s *Server) searchAnime(c *gin.Context) {
	page, limit, err := s.paging(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	q := catalog.AnimeQuery{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
		Kind:   c.Query("kind"),
		Status: c.Query("status"),
		Season: c.Query("season"),
		Rating: c.Query("rating"),
		Genre:  c.Query("genre"),
		Studio: c.Query("studio"),
		Sort:   catalog.SortOption(c.Query("sort")),
	}
	result, err := s.catalog.SearchAnime(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.remember(c, q.Search)
	c.JSON(http.StatusOK, result)
}

func (s *Server) searchManga(c *gin.Context) {
	page, limit, err := s.paging(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	q := catalog.MangaQuery{
		Search:    c.Query("search"),
		Page:      page,
		Limit:     limit,
		Kind:      c.Query("kind"),
		Status:    c.Query("status"),
		Season:    c.Query("season"),
		Genre:     c.Query("genre"),
		Publisher: c.Query("publisher"),
		Sort:      catalog.SortOption(c.Query("sort")),
	}
	result, err := s.catalog.SearchManga(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.remember(c, q.Search)
	c.JSON(http.StatusOK, result)
}

func (s *Server) searchCharacters(c *gin.Context) {
	page, limit, err := s.paging(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	q := catalog.CharacterQuery{Search: c.Query("search"), Page: page, Limit: limit}
	result, err := s.catalog.SearchCharacters(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.remember(c, q.Search)
	c.JSON(http.StatusOK, result)
}

func (s *Server) searchPeople(c *gin.Context) {
	page, limit, err := s.paging(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	q := catalog.PeopleQuery{Search: c.Query("search"), Page: page, Limit: limit}
	for name, dst := range map[string]**bool{
		"is_seyu":     &q.IsSeyu,
		"is_mangaka":  &q.IsMangaka,
		"is_producer": &q.IsProducer,
	} {
		if *dst, err = s.boolQuery(c, name); err != nil {
			s.fail(c, err)
			return
		}
	}
	result, err := s.catalog.SearchPeople(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.remember(c, q.Search)
	c.JSON(http.StatusOK, result)
}

// byID adapts a single-entity lookup to a handler.
func byID[T any](s *Server, lookup func(context.Context, int64) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := s.idParam(c)
		if err != nil {
			s.fail(c, err)
			return
		}
		result, err := lookup(c.Request.Context(), id)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func (s *Server) genres(c *gin.Context) {
	result, err := s.catalog.Genres(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) studios(c *gin.Context) {
	result, err := s.catalog.Studios(c.Request.Context(), c.Query("query"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) publishers(c *gin.Context) {
	result, err := s.catalog.Publishers(c.Request.Context(), c.Query("query"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) accent(c *gin.Context) {
	color, err := s.accents.Get(c.Request.Context(), c.Query("url"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"color": color})
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, s.settings.Get())
}

// putSettings replaces the editable settings. History is managed through its
// own endpoints and is kept as is.
func (s *Server) putSettings(c *gin.Context) {
	var req prefs.Prefs
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, s.translator.Validation("invalid settings body: %v", err))
		return
	}
	updated, err := s.settings.Update(func(cur prefs.Prefs) prefs.Prefs {
		req.History = cur.History
		return req
	})
	if err != nil {
		s.logger.Error("save settings", "request_id", c.GetString(ctxRequestID), "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "save settings failed"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) getHistory(c *gin.Context) {
	history := s.settings.Get().History
	if history == nil {
		history = []string{}
	}
	c.JSON(http.StatusOK, history)
}

func (s *Server) clearHistory(c *gin.Context) {
	if _, err := s.settings.Update(prefs.Prefs.ClearHistory); err != nil {
		s.logger.Error("clear history", "request_id", c.GetString(ctxRequestID), "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "clear history failed"})
		return
	}
	c.Status(http.StatusNoContent)
}
