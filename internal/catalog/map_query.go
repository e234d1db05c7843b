package catalog

import (
	"time"

	"github.com/five82/shikidesk/internal/shiki"
)

// Mapping of the typed GraphQL shapes.

func (m Mapper) queryPoster(p *shiki.Poster) *Poster {
	if p == nil {
		return nil
	}
	return m.buildPoster(p.MainURL, p.OriginalURL, p.PreviewURL, p.MiniURL, p.MiniAltURL)
}

func (m Mapper) mediaSummary(raw shiki.Media, collection Collection) MediaSummary {
	id := int64(raw.ID)
	poster := m.queryPoster(raw.Poster)
	return MediaSummary{
		ID:            id,
		Collection:    collection,
		Title:         nameOr(raw.Name),
		Russian:       clean(raw.Russian),
		URL:           m.entityURL(raw.URL, collection, id),
		PosterURL:     posterURL(poster),
		Poster:        poster,
		Score:         normalizeScore(raw.Score),
		Kind:          clean(raw.Kind),
		Status:        clean(raw.Status),
		Episodes:      cloneInt(raw.Episodes),
		EpisodesAired: cloneInt(raw.EpisodesAired),
		Volumes:       cloneInt(raw.Volumes),
		Chapters:      cloneInt(raw.Chapters),
	}
}

// AnimeSummary maps an anime search result.
func (m Mapper) AnimeSummary(raw shiki.Media) MediaSummary {
	return m.mediaSummary(raw, CollectionAnimes)
}

// MangaSummary maps a manga search result.
func (m Mapper) MangaSummary(raw shiki.Media) MediaSummary {
	return m.mediaSummary(raw, CollectionMangas)
}

// AnimeDetail maps a fully selected anime record.
func (m Mapper) AnimeDetail(raw shiki.Media) MediaDetail {
	return m.mediaDetail(raw, CollectionAnimes)
}

// MangaDetail maps a fully selected manga record.
func (m Mapper) MangaDetail(raw shiki.Media) MediaDetail {
	return m.mediaDetail(raw, CollectionMangas)
}

func (m Mapper) mediaDetail(raw shiki.Media, collection Collection) MediaDetail {
	d := MediaDetail{
		MediaSummary:      m.mediaSummary(raw, collection),
		English:           clean(raw.English),
		Japanese:          clean(raw.Japanese),
		LicenseNameRu:     clean(raw.LicenseNameRu),
		Description:       clean(raw.Description),
		DescriptionHTML:   clean(raw.DescriptionHTML),
		DescriptionSource: clean(raw.DescriptionSource),
		Rating:            clean(raw.Rating),
		Duration:          cloneInt(raw.Duration),
		Season:            clean(raw.Season),
		AiredOn:           queryDate(raw.AiredOn),
		ReleasedOn:        queryDate(raw.ReleasedOn),
		NextEpisodeAt:     parseTimestamp(raw.NextEpisodeAt),
		IsCensored:        cloneBool(raw.IsCensored),
		Fansubbers:        cloneStrings(raw.Fansubbers),
		Fandubbers:        cloneStrings(raw.Fandubbers),
		Licensors:         cloneStrings(raw.Licensors),
	}
	if raw.MalID != nil && *raw.MalID > 0 {
		malID := int64(*raw.MalID)
		d.MalID = &malID
	}
	if raw.Synonyms != nil {
		d.Synonyms = splitSynonyms(raw.Synonyms...)
	}
	if raw.Genres != nil {
		d.Genres = make([]Genre, 0, len(raw.Genres))
		for _, g := range raw.Genres {
			d.Genres = append(d.Genres, Genre{
				ID:      int64(g.ID),
				Name:    nameOr(g.Name),
				Russian: clean(g.Russian),
				Kind:    clean(g.Kind),
			})
		}
	}
	if raw.Studios != nil {
		d.Studios = make([]Studio, 0, len(raw.Studios))
		for _, s := range raw.Studios {
			d.Studios = append(d.Studios, Studio{
				ID:       int64(s.ID),
				Name:     nameOr(s.Name),
				ImageURL: m.absolute(s.ImageURL),
			})
		}
	}
	if raw.Publishers != nil {
		d.Publishers = make([]Publisher, 0, len(raw.Publishers))
		for _, p := range raw.Publishers {
			d.Publishers = append(d.Publishers, Publisher{ID: int64(p.ID), Name: nameOr(p.Name)})
		}
	}
	if raw.ExternalLinks != nil {
		d.ExternalLinks = make([]ExternalLink, 0, len(raw.ExternalLinks))
		for _, l := range raw.ExternalLinks {
			link := m.absolute(l.URL)
			if link == nil {
				continue
			}
			out := ExternalLink{URL: *link}
			if k := clean(l.Kind); k != nil {
				out.Kind = *k
			}
			if l.ID != nil {
				id := int64(*l.ID)
				out.ID = &id
			}
			d.ExternalLinks = append(d.ExternalLinks, out)
		}
	}
	if raw.PersonRoles != nil {
		d.PersonRoles = make([]PersonRole, 0, len(raw.PersonRoles))
		for _, r := range raw.PersonRoles {
			person := unknownPerson()
			if r.Person != nil {
				person = m.PersonSummary(*r.Person)
			}
			d.PersonRoles = append(d.PersonRoles, PersonRole{
				ID:      int64(r.ID),
				RolesRu: cloneStrings(r.RolesRu),
				RolesEn: cloneStrings(r.RolesEn),
				Person:  person,
			})
		}
	}
	if raw.CharacterRoles != nil {
		d.CharacterRoles = make([]CharacterRole, 0, len(raw.CharacterRoles))
		for _, r := range raw.CharacterRoles {
			character := unknownCharacter()
			if r.Character != nil {
				character = m.CharacterSummary(*r.Character)
			}
			d.CharacterRoles = append(d.CharacterRoles, CharacterRole{
				ID:        int64(r.ID),
				RolesRu:   cloneStrings(r.RolesRu),
				RolesEn:   cloneStrings(r.RolesEn),
				Character: character,
			})
		}
	}
	if raw.Related != nil {
		d.Related = make([]Related, 0, len(raw.Related))
		for _, r := range raw.Related {
			if edge, ok := m.related(r); ok {
				d.Related = append(d.Related, edge)
			}
		}
	}
	if raw.Videos != nil {
		d.Videos = make([]Video, 0, len(raw.Videos))
		for _, v := range raw.Videos {
			d.Videos = append(d.Videos, Video{
				ID:        int64(v.ID),
				URL:       m.absolute(v.URL),
				Name:      clean(v.Name),
				Kind:      clean(v.Kind),
				PlayerURL: m.absolute(v.PlayerURL),
				ImageURL:  m.absolute(v.ImageURL),
			})
		}
	}
	if raw.Screenshots != nil {
		d.Screenshots = make([]Screenshot, 0, len(raw.Screenshots))
		for _, s := range raw.Screenshots {
			d.Screenshots = append(d.Screenshots, Screenshot{
				ID:          int64(s.ID),
				OriginalURL: m.absolute(s.OriginalURL),
				X166URL:     m.absolute(s.X166URL),
				X332URL:     m.absolute(s.X332URL),
			})
		}
	}
	if raw.ScoresStats != nil {
		d.ScoresStats = make([]ScoreStat, 0, len(raw.ScoresStats))
		for _, s := range raw.ScoresStats {
			d.ScoresStats = append(d.ScoresStats, ScoreStat{Score: s.Score, Count: s.Count})
		}
	}
	if raw.StatusesStats != nil {
		d.StatusesStats = make([]StatusStat, 0, len(raw.StatusesStats))
		for _, s := range raw.StatusesStats {
			d.StatusesStats = append(d.StatusesStats, StatusStat{Status: s.Status, Count: s.Count})
		}
	}
	return d
}

// related resolves the stub of an edge. The anime stub wins when upstream
// sends both; an edge with neither is dropped.
func (m Mapper) related(raw shiki.Related) (Related, bool) {
	edge := Related{
		ID:           int64(raw.ID),
		RelationText: clean(raw.RelationText),
	}
	if k := clean(raw.RelationKind); k != nil {
		edge.RelationKind = *k
	}
	switch {
	case raw.Anime != nil:
		stub := m.mediaSummary(*raw.Anime, CollectionAnimes)
		edge.Anime = &stub
	case raw.Manga != nil:
		stub := m.mediaSummary(*raw.Manga, CollectionMangas)
		edge.Manga = &stub
	default:
		return Related{}, false
	}
	return edge, true
}

// CharacterSummary maps a GraphQL character.
func (m Mapper) CharacterSummary(raw shiki.Character) CharacterSummary {
	id := int64(raw.ID)
	poster := m.queryPoster(raw.Poster)
	return CharacterSummary{
		ID:          id,
		Name:        nameOr(raw.Name),
		Russian:     clean(raw.Russian),
		URL:         m.entityURL(raw.URL, CollectionCharacters, id),
		PosterURL:   posterURL(poster),
		Poster:      poster,
		Description: clean(raw.Description),
		IsAnime:     cloneBool(raw.IsAnime),
		IsManga:     cloneBool(raw.IsManga),
		IsRanobe:    cloneBool(raw.IsRanobe),
	}
}

// PersonSummary maps a GraphQL person.
func (m Mapper) PersonSummary(raw shiki.Person) PersonSummary {
	id := int64(raw.ID)
	poster := m.queryPoster(raw.Poster)
	return PersonSummary{
		ID:         id,
		Name:       nameOr(raw.Name),
		Russian:    clean(raw.Russian),
		URL:        m.entityURL(raw.URL, CollectionPeople, id),
		PosterURL:  posterURL(poster),
		Poster:     poster,
		IsSeyu:     cloneBool(raw.IsSeyu),
		IsMangaka:  cloneBool(raw.IsMangaka),
		IsProducer: cloneBool(raw.IsProducer),
		Website:    m.absolute(raw.Website),
	}
}

func queryDate(raw *shiki.Date) *Date {
	if raw == nil {
		return nil
	}
	d := &Date{
		Year:  cloneInt(raw.Year),
		Month: cloneInt(raw.Month),
		Day:   cloneInt(raw.Day),
		Date:  clean(raw.Date),
	}
	if d.Year == nil && d.Month == nil && d.Day == nil && d.Date == nil {
		return nil
	}
	return d
}

func parseTimestamp(raw *string) *time.Time {
	s := clean(raw)
	if s == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	return &t
}
