package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/five82/shikidesk/internal/shiki"
)

// Locale selects the language of translated messages.
type Locale string

const (
	LocaleRU Locale = "ru"
	LocaleEN Locale = "en"
)

// ParseLocale maps a config value onto a supported locale, defaulting to ru.
func ParseLocale(value string) Locale {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "en", "english":
		return LocaleEN
	default:
		return LocaleRU
	}
}

var prefixes = map[Locale]map[Kind]string{
	LocaleRU: {
		KindValidation:    "Ошибка валидации",
		KindTransport:     "Ошибка сети",
		KindProtocol:      "Ошибка запроса",
		KindRateLimit:     "Слишком много запросов",
		KindUpstreamAPI:   "Ошибка API",
		KindSerialization: "Ошибка разбора ответа",
		KindNotFound:      "Не найдено",
	},
	LocaleEN: {
		KindValidation:    "validation error",
		KindTransport:     "network error",
		KindProtocol:      "query error",
		KindRateLimit:     "rate limited",
		KindUpstreamAPI:   "api error",
		KindSerialization: "decode error",
		KindNotFound:      "not found",
	},
}

// Translator turns failures into *Error values with localized messages. The
// zero value uses Russian.
type Translator struct {
	Locale Locale
}

func (t Translator) prefix(kind Kind) string {
	table, ok := prefixes[t.Locale]
	if !ok {
		table = prefixes[LocaleRU]
	}
	return table[kind]
}

func (t Translator) build(kind Kind, detail string) *Error {
	msg := t.prefix(kind)
	if detail = strings.TrimSpace(detail); detail != "" {
		msg += ": " + detail
	}
	return &Error{Kind: kind, Message: msg}
}

// FromUpstream classifies a transport failure. It is total: every error value
// maps to exactly one kind. Already translated errors pass through.
func (t Translator) FromUpstream(err error) *Error {
	if err == nil {
		return nil
	}

	var (
		appErr    *Error
		transport *shiki.TransportError
		query     *shiki.QueryError
		rateLimit *shiki.RateLimitError
		status    *shiki.StatusError
		decode    *shiki.DecodeError
	)
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.As(err, &rateLimit):
		out := t.build(KindRateLimit, rateLimit.Error())
		if rateLimit.RetryAfter != nil {
			d := *rateLimit.RetryAfter
			out.RetryAfter = &d
		}
		return out
	case errors.As(err, &query):
		return t.build(KindProtocol, strings.Join(query.Messages, "; "))
	case errors.As(err, &status):
		return t.build(KindUpstreamAPI, fmt.Sprintf("HTTP %d (%s)", status.StatusCode, status.Endpoint))
	case errors.As(err, &decode):
		return t.build(KindSerialization, decode.Error())
	case errors.As(err, &transport):
		return t.build(KindTransport, transport.Error())
	default:
		// Context errors and anything unclassified never got a response.
		return t.build(KindTransport, err.Error())
	}
}

// FromImage classifies an image fetch or decode failure. All of them are
// transport errors from the caller's point of view.
func (t Translator) FromImage(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return t.build(KindTransport, err.Error())
}

// Validation builds a validation error from a formatted detail.
func (t Translator) Validation(format string, args ...any) *Error {
	return t.build(KindValidation, fmt.Sprintf(format, args...))
}

// InvalidPage reports a page number below 1.
func (t Translator) InvalidPage(page int) *Error {
	if t.Locale == LocaleEN {
		return t.Validation("page must be >= 1, got %d", page)
	}
	return t.Validation("страница должна быть >= 1, получено %d", page)
}

// InvalidLimit reports a page size outside [1, maxLimit].
func (t Translator) InvalidLimit(limit, maxLimit int) *Error {
	if t.Locale == LocaleEN {
		return t.Validation("limit must be between 1 and %d, got %d", maxLimit, limit)
	}
	return t.Validation("лимит должен быть от 1 до %d, получено %d", maxLimit, limit)
}

// InvalidID reports an id below 1.
func (t Translator) InvalidID(id int64) *Error {
	if t.Locale == LocaleEN {
		return t.Validation("id must be >= 1, got %d", id)
	}
	return t.Validation("id должен быть >= 1, получено %d", id)
}

// NotFound reports a by-id lookup that yielded nothing.
func (t Translator) NotFound(collection string, id int64) *Error {
	return t.build(KindNotFound, fmt.Sprintf("%s/%d", collection, id))
}

// FromUpstream translates with the default Russian translator.
func FromUpstream(err error) *Error { return Translator{}.FromUpstream(err) }

// FromImage translates with the default Russian translator.
func FromImage(err error) *Error { return Translator{}.FromImage(err) }

// Validation builds a validation error with the default Russian translator.
func Validation(format string, args ...any) *Error {
	return Translator{}.Validation(format, args...)
}

// NotFound builds a not_found error with the default Russian translator.
func NotFound(collection string, id int64) *Error {
	return Translator{}.NotFound(collection, id)
}
