package catalog

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DefaultOrigin is the site that relative URLs are resolved against.
const DefaultOrigin = "https://shikimori.one"

// Mapper converts raw upstream records into canonical entities. Its methods
// are pure and total: a field that cannot be parsed becomes nil rather than
// failing the whole entity. The zero value resolves against DefaultOrigin.
type Mapper struct {
	Origin string
}

func (m Mapper) origin() string {
	origin := strings.TrimRight(strings.TrimSpace(m.Origin), "/")
	if origin == "" {
		return DefaultOrigin
	}
	return origin
}

// absolute trims raw, drops blanks and joins /-prefixed paths onto the origin.
func (m Mapper) absolute(raw *string) *string {
	s := clean(raw)
	if s == nil {
		return nil
	}
	if strings.HasPrefix(*s, "/") {
		joined := m.origin() + *s
		return &joined
	}
	return s
}

// entityURL returns the upstream URL or <origin>/<collection>/<id>.
func (m Mapper) entityURL(raw *string, collection Collection, id int64) *string {
	if u := m.absolute(raw); u != nil {
		return u
	}
	synthesized := m.origin() + "/" + string(collection) + "/" + strconv.FormatInt(id, 10)
	return &synthesized
}

// buildPoster returns nil when no variant is present. PosterURL selection is
// done by posterURL.
func (m Mapper) buildPoster(main, original, preview, small, smaller *string) *Poster {
	p := &Poster{
		Main:     m.absolute(main),
		Original: m.absolute(original),
		Preview:  m.absolute(preview),
		Small:    m.absolute(small),
		Smaller:  m.absolute(smaller),
	}
	if p.Preview == nil && p.Main != nil {
		preview := *p.Main
		p.Preview = &preview
	}
	if p.Main == nil && p.Original == nil && p.Preview == nil && p.Small == nil && p.Smaller == nil {
		return nil
	}
	return p
}

// posterURL prefers the sized variants over the unsized original.
func posterURL(p *Poster) *string {
	if p == nil {
		return nil
	}
	for _, candidate := range []*string{p.Main, p.Preview, p.Original} {
		if candidate != nil {
			v := *candidate
			return &v
		}
	}
	return nil
}

func clean(raw *string) *string {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil
	}
	return &s
}

func nameOr(raw *string) string {
	if s := clean(raw); s != nil {
		return *s
	}
	return UnknownName
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// normalizeScore treats 0 and non-finite values as "no score".
func normalizeScore(v *float64) *float64 {
	if v == nil || *v == 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	out := *v
	return &out
}

// rawScore coerces a number or a numeric string. "", "0" and "0.0" are
// absent, as is anything that does not parse.
func rawScore(raw json.RawMessage) *float64 {
	text, ok := rawText(raw)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	return normalizeScore(&f)
}

// rawID coerces a number or a numeric string. Unparseable ids become 0.
func rawID(raw json.RawMessage) int64 {
	text, ok := rawText(raw)
	if !ok {
		return 0
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && f == math.Trunc(f) && !math.IsInf(f, 0) {
		return int64(f)
	}
	return 0
}

// rawText unwraps a JSON scalar into its textual form.
func rawText(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", false
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		s = strings.TrimSpace(s)
		return s, s != ""
	}
	return string(trimmed), true
}

// splitSynonyms splits comma-space separated names into trimmed tokens.
func splitSynonyms(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, token := range strings.Split(value, ", ") {
			if token = strings.TrimSpace(token); token != "" {
				out = append(out, token)
			}
		}
	}
	return out
}

func unknownPerson() PersonSummary {
	return PersonSummary{ID: 0, Name: UnknownName}
}

func unknownCharacter() CharacterSummary {
	return CharacterSummary{ID: 0, Name: UnknownName}
}
