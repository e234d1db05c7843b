package catalog

import "strings"

// Card is the one-line projection of a search result used by list views.
type Card struct {
	ID         int64
	Collection Collection
	Title      string
	Subtitle   string
	PosterURL  string
	Score      *float64
	Kind       string
	Status     string
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// MediaCard projects an anime or manga summary.
func MediaCard(m MediaSummary) Card {
	return Card{
		ID:         m.ID,
		Collection: m.Collection,
		Title:      m.Title,
		Subtitle:   deref(m.Russian),
		PosterURL:  deref(m.PosterURL),
		Score:      m.Score,
		Kind:       KindLabel(m.Kind),
		Status:     StatusLabel(m.Status),
	}
}

// CharacterCard projects a character summary.
func CharacterCard(c CharacterSummary) Card {
	return Card{
		ID:         c.ID,
		Collection: CollectionCharacters,
		Title:      c.Name,
		Subtitle:   deref(c.Russian),
		PosterURL:  deref(c.PosterURL),
	}
}

// PersonCard projects a person summary. Kind carries the person's roles.
func PersonCard(p PersonSummary) Card {
	var roles []string
	if p.IsSeyu != nil && *p.IsSeyu {
		roles = append(roles, "сэйю")
	}
	if p.IsMangaka != nil && *p.IsMangaka {
		roles = append(roles, "мангака")
	}
	if p.IsProducer != nil && *p.IsProducer {
		roles = append(roles, "продюсер")
	}
	return Card{
		ID:         p.ID,
		Collection: CollectionPeople,
		Title:      p.Name,
		Subtitle:   deref(p.Russian),
		PosterURL:  deref(p.PosterURL),
		Kind:       strings.Join(roles, ", "),
	}
}

// Cards projects a slice with fn.
func Cards[T any](items []T, fn func(T) Card) []Card {
	out := make([]Card, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
