package apperr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/shikidesk/internal/shiki"
)

func TestFromUpstream_CoversEveryFailure(t *testing.T) {
	retry := 7 * time.Second
	cases := []struct {
		name string
		err  shiki.Failure
		want Kind
	}{
		{"transport", &shiki.TransportError{Op: "execute request", Err: io.ErrUnexpectedEOF}, KindTransport},
		{"query", &shiki.QueryError{Messages: []string{"bad"}}, KindProtocol},
		{"rate limit", &shiki.RateLimitError{Endpoint: "/api/graphql", RetryAfter: &retry}, KindRateLimit},
		{"status", &shiki.StatusError{Endpoint: "/api/genres", StatusCode: 503}, KindUpstreamAPI},
		{"decode", &shiki.DecodeError{Endpoint: "/api/genres", Err: io.ErrUnexpectedEOF}, KindSerialization},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromUpstream(tc.err)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.Kind)
			assert.True(t, got.Kind.IsValid())
			assert.NotEmpty(t, got.Message)
			if tc.want == KindRateLimit {
				require.NotNil(t, got.RetryAfter)
				assert.Equal(t, retry, *got.RetryAfter)
			} else {
				assert.Nil(t, got.RetryAfter)
			}
		})
	}
}

func TestFromUpstream_StatusCodeInMessage(t *testing.T) {
	got := FromUpstream(&shiki.StatusError{Endpoint: "/api/studios", StatusCode: 502})
	assert.Contains(t, got.Message, "502")
}

func TestFromUpstream_WrappedAndForeignErrors(t *testing.T) {
	wrapped := fmt.Errorf("search: %w", &shiki.QueryError{Messages: []string{"x"}})
	assert.Equal(t, KindProtocol, FromUpstream(wrapped).Kind)

	assert.Equal(t, KindTransport, FromUpstream(context.DeadlineExceeded).Kind)
	assert.Equal(t, KindTransport, FromUpstream(context.Canceled).Kind)
	assert.Equal(t, KindTransport, FromUpstream(errors.New("boom")).Kind)
	assert.Nil(t, FromUpstream(nil))
}

func TestFromUpstream_PassesTranslatedErrorsThrough(t *testing.T) {
	original := NotFound("animes", 1)
	assert.Same(t, original, FromUpstream(original))
	assert.Same(t, original, FromImage(fmt.Errorf("wrap: %w", original)))
}

func TestFromImage_AlwaysTransport(t *testing.T) {
	got := FromImage(errors.New("image: unknown format"))
	assert.Equal(t, KindTransport, got.Kind)
	assert.Nil(t, FromImage(nil))
}

func TestTranslator_Locales(t *testing.T) {
	ru := Translator{}.InvalidPage(0)
	assert.True(t, strings.HasPrefix(ru.Message, "Ошибка валидации"), ru.Message)

	en := Translator{Locale: LocaleEN}.InvalidLimit(51, 50)
	assert.Equal(t, KindValidation, en.Kind)
	assert.Equal(t, "validation error: limit must be between 1 and 50, got 51", en.Message)

	unknown := Translator{Locale: "de"}.NotFound("people", 3)
	assert.Equal(t, "Не найдено: people/3", unknown.Message)

	assert.Equal(t, LocaleEN, ParseLocale(" EN "))
	assert.Equal(t, LocaleRU, ParseLocale(""))
}

func TestError_JSONShape(t *testing.T) {
	retry := 1500 * time.Millisecond
	data, err := json.Marshal(&Error{Kind: KindRateLimit, Message: "slow down", RetryAfter: &retry})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"rate_limit","message":"slow down","retry_after":2}`, string(data))

	data, err = json.Marshal(Validation("bad %s", "page"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"validation","message":"Ошибка валидации: bad page","retry_after":null}`, string(data))

	var back Error
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"rate_limit","message":"m","retry_after":4}`), &back))
	require.NotNil(t, back.RetryAfter)
	assert.Equal(t, 4*time.Second, *back.RetryAfter)
}

func TestKindHelpers(t *testing.T) {
	assert.Len(t, Kinds(), 7)
	assert.False(t, Kind("unknown").IsValid())

	err := fmt.Errorf("ctx: %w", NotFound("mangas", 9))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, errors.Is(err, &Error{Kind: KindNotFound}))
	assert.False(t, errors.Is(err, &Error{Kind: KindTransport}))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}
