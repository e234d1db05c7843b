package catalog

import (
	"github.com/five82/shikidesk/internal/shiki"
)

// Mapping of the loosely typed REST shapes.

func (m Mapper) restPoster(img *shiki.RESTImage) *Poster {
	if img == nil {
		return nil
	}
	return m.buildPoster(nil, img.Original, img.Preview, img.X96, img.X48)
}

// RESTMedia maps an anime or manga entry embedded in a REST payload.
func (m Mapper) RESTMedia(raw shiki.RESTMedia, collection Collection) MediaSummary {
	id := rawID(raw.ID)
	poster := m.restPoster(raw.Image)
	return MediaSummary{
		ID:            id,
		Collection:    collection,
		Title:         nameOr(raw.Name),
		Russian:       clean(raw.Russian),
		URL:           m.entityURL(raw.URL, collection, id),
		PosterURL:     posterURL(poster),
		Poster:        poster,
		Score:         rawScore(raw.Score),
		Kind:          clean(raw.Kind),
		Status:        clean(raw.Status),
		Episodes:      cloneInt(raw.Episodes),
		EpisodesAired: cloneInt(raw.EpisodesAired),
		Volumes:       cloneInt(raw.Volumes),
		Chapters:      cloneInt(raw.Chapters),
	}
}

func (m Mapper) restPersonRef(raw shiki.RESTPersonRef) PersonSummary {
	id := rawID(raw.ID)
	poster := m.restPoster(raw.Image)
	return PersonSummary{
		ID:        id,
		Name:      nameOr(raw.Name),
		Russian:   clean(raw.Russian),
		URL:       m.entityURL(raw.URL, CollectionPeople, id),
		PosterURL: posterURL(poster),
		Poster:    poster,
	}
}

// CharacterDetail maps GET /api/characters/:id.
func (m Mapper) CharacterDetail(raw shiki.RESTCharacter) CharacterDetail {
	id := rawID(raw.ID)
	poster := m.restPoster(raw.Image)
	d := CharacterDetail{
		CharacterSummary: CharacterSummary{
			ID:          id,
			Name:        nameOr(raw.Name),
			Russian:     clean(raw.Russian),
			URL:         m.entityURL(raw.URL, CollectionCharacters, id),
			PosterURL:   posterURL(poster),
			Poster:      poster,
			Description: clean(raw.Description),
		},
		Japanese:        clean(raw.Japanese),
		Synonyms:        []string{},
		DescriptionHTML: clean(raw.DescriptionHTML),
	}
	if alt := clean(raw.Altname); alt != nil {
		d.Synonyms = splitSynonyms(*alt)
	}
	if raw.Animes != nil || raw.Mangas != nil {
		d.Roles = make([]MediaRoleEdge, 0, len(raw.Animes)+len(raw.Mangas))
		for _, a := range raw.Animes {
			stub := m.RESTMedia(a, CollectionAnimes)
			d.Roles = append(d.Roles, MediaRoleEdge{ID: stub.ID, Roles: restRoles(a), Anime: &stub})
		}
		for _, mg := range raw.Mangas {
			stub := m.RESTMedia(mg, CollectionMangas)
			d.Roles = append(d.Roles, MediaRoleEdge{ID: stub.ID, Roles: restRoles(mg), Manga: &stub})
		}
	}
	if raw.Seyu != nil {
		d.Seyus = make([]PersonSummary, 0, len(raw.Seyu))
		for _, p := range raw.Seyu {
			d.Seyus = append(d.Seyus, m.restPersonRef(p))
		}
	}
	return d
}

// restRoles prefers the role list and falls back to the single role.
func restRoles(raw shiki.RESTMedia) []string {
	roles := make([]string, 0, len(raw.Roles)+1)
	for _, r := range raw.Roles {
		if s := clean(&r); s != nil {
			roles = append(roles, *s)
		}
	}
	if len(roles) == 0 {
		if s := clean(raw.Role); s != nil {
			roles = append(roles, *s)
		}
	}
	return roles
}

// PersonDetail maps GET /api/people/:id.
func (m Mapper) PersonDetail(raw shiki.RESTPerson) PersonDetail {
	id := rawID(raw.ID)
	poster := m.restPoster(raw.Image)
	d := PersonDetail{
		PersonSummary: PersonSummary{
			ID:         id,
			Name:       nameOr(raw.Name),
			Russian:    clean(raw.Russian),
			URL:        m.entityURL(raw.URL, CollectionPeople, id),
			PosterURL:  posterURL(poster),
			Poster:     poster,
			IsSeyu:     cloneBool(raw.Seyu),
			IsMangaka:  cloneBool(raw.Mangaka),
			IsProducer: cloneBool(raw.Producer),
			Website:    clean(raw.Website),
		},
		Japanese:   clean(raw.Japanese),
		JobTitle:   clean(raw.JobTitle),
		BirthOn:    restDate(raw.BirthOn),
		DeceasedOn: restDate(raw.DeceasedOn),
	}
	if raw.Works != nil {
		d.Works = make([]WorkEdge, 0, len(raw.Works))
		for _, w := range raw.Works {
			edge := WorkEdge{Role: clean(w.Role)}
			switch {
			case w.Anime != nil:
				stub := m.RESTMedia(*w.Anime, CollectionAnimes)
				edge.Anime = &stub
			case w.Manga != nil:
				stub := m.RESTMedia(*w.Manga, CollectionMangas)
				edge.Manga = &stub
			default:
				continue
			}
			d.Works = append(d.Works, edge)
		}
	}
	return d
}

func restDate(raw *shiki.RESTDate) *Date {
	if raw == nil || (raw.Year == nil && raw.Month == nil && raw.Day == nil) {
		return nil
	}
	return &Date{Year: cloneInt(raw.Year), Month: cloneInt(raw.Month), Day: cloneInt(raw.Day)}
}

// Genre maps an entry of GET /api/genres.
func (m Mapper) Genre(raw shiki.RESTGenre) Genre {
	return Genre{
		ID:        rawID(raw.ID),
		Name:      nameOr(raw.Name),
		Russian:   clean(raw.Russian),
		Kind:      clean(raw.Kind),
		EntryType: clean(raw.EntryType),
	}
}

// Studio maps an entry of GET /api/studios. The display name prefers the
// filtered name upstream uses on the site.
func (m Mapper) Studio(raw shiki.RESTStudio) Studio {
	name := raw.FilteredName
	if clean(name) == nil {
		name = raw.Name
	}
	return Studio{
		ID:       rawID(raw.ID),
		Name:     nameOr(name),
		ImageURL: m.absolute(raw.Image),
	}
}

// Publisher maps an entry of GET /api/publishers.
func (m Mapper) Publisher(raw shiki.RESTPublisher) Publisher {
	return Publisher{ID: rawID(raw.ID), Name: nameOr(raw.Name)}
}
