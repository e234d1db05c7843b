package shiki

import (
	"strconv"
	"strings"
)

// AnimeParams configures an animes query.
type AnimeParams struct {
	Search   string
	Page     int
	Limit    int
	Kind     string
	Status   string
	Season   string
	Rating   string
	Genre    string
	Studio   string
	Order    string
	IDs      []int64
	Censored *bool
}

// MangaParams configures a mangas query.
type MangaParams struct {
	Search    string
	Page      int
	Limit     int
	Kind      string
	Status    string
	Season    string
	Genre     string
	Publisher string
	Order     string
	IDs       []int64
	Censored  *bool
}

// CharacterParams configures a characters query.
type CharacterParams struct {
	Search string
	Page   int
	Limit  int
	IDs    []int64
}

// PeopleParams configures a people query.
type PeopleParams struct {
	Search     string
	Page       int
	Limit      int
	IDs        []int64
	IsSeyu     *bool
	IsMangaka  *bool
	IsProducer *bool
}

const posterFields = `poster { id originalUrl mainUrl previewUrl miniUrl miniAltUrl }`

const mediaSummaryFields = `id name russian url kind score status ` + posterFields

const animeSummaryFields = mediaSummaryFields + ` episodes episodesAired`

const mangaSummaryFields = mediaSummaryFields + ` volumes chapters`

const dateFields = `{ year month day date }`

const mediaDetailFields = `malId licenseNameRu english japanese synonyms
  airedOn ` + dateFields + `
  releasedOn ` + dateFields + `
  isCensored licensors
  genres { id name russian kind }
  externalLinks { id kind url }
  personRoles { id rolesRu rolesEn person { id name russian url isSeyu isMangaka isProducer website ` + posterFields + ` } }
  characterRoles { id rolesRu rolesEn character { id name russian url isAnime isManga isRanobe ` + posterFields + ` } }
  related { id relationKind relationText
    anime { id name russian url kind ` + posterFields + ` }
    manga { id name russian url kind ` + posterFields + ` } }
  scoresStats { score count }
  statusesStats { status count }
  description descriptionHtml descriptionSource`

const animeDetailFields = animeSummaryFields + ` rating duration season nextEpisodeAt fansubbers fandubbers
  studios { id name imageUrl }
  videos { id url name kind playerUrl imageUrl }
  screenshots { id originalUrl x166Url x332Url }
  ` + mediaDetailFields

const mangaDetailFields = mangaSummaryFields + `
  publishers { id name }
  ` + mediaDetailFields

const characterFields = `id name russian japanese synonyms url description descriptionHtml isAnime isManga isRanobe ` + posterFields

const personFields = `id name russian japanese synonyms url website isSeyu isMangaka isProducer ` + posterFields

const animesQuery = `query($search: String, $page: PositiveInt, $limit: PositiveInt, $kind: AnimeKindString, $status: AnimeStatusString, $season: SeasonString, $rating: RatingString, $genre: String, $studio: String, $order: OrderEnum, $ids: String, $censored: Boolean) {
  animes(search: $search, page: $page, limit: $limit, kind: $kind, status: $status, season: $season, rating: $rating, genre: $genre, studio: $studio, order: $order, ids: $ids, censored: $censored) { %s }
}`

const mangasQuery = `query($search: String, $page: PositiveInt, $limit: PositiveInt, $kind: MangaKindString, $status: MangaStatusString, $season: SeasonString, $genre: String, $publisher: String, $order: OrderEnum, $ids: String, $censored: Boolean) {
  mangas(search: $search, page: $page, limit: $limit, kind: $kind, status: $status, season: $season, genre: $genre, publisher: $publisher, order: $order, ids: $ids, censored: $censored) { %s }
}`

const charactersQuery = `query($search: String, $page: PositiveInt, $limit: PositiveInt, $ids: [ID!]) {
  characters(search: $search, page: $page, limit: $limit, ids: $ids) { ` + characterFields + ` }
}`

const peopleQuery = `query($search: String, $page: PositiveInt, $limit: PositiveInt, $ids: [ID!], $isSeyu: Boolean, $isMangaka: Boolean, $isProducer: Boolean) {
  people(search: $search, page: $page, limit: $limit, ids: $ids, isSeyu: $isSeyu, isMangaka: $isMangaka, isProducer: $isProducer) { ` + personFields + ` }
}`

// variables collects only the set values; unset arguments fall back to the
// upstream defaults.
type variables map[string]any

func (v variables) str(key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		v[key] = value
	}
}

func (v variables) positive(key string, value int) {
	if value > 0 {
		v[key] = value
	}
}

func (v variables) flag(key string, value *bool) {
	if value != nil {
		v[key] = *value
	}
}

func (v variables) idList(key string, ids []int64) {
	if len(ids) == 0 {
		return
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strconv.FormatInt(id, 10))
	}
	v[key] = out
}

func (v variables) idCSV(key string, ids []int64) {
	if len(ids) == 0 {
		return
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	v[key] = strings.Join(parts, ",")
}

func (p AnimeParams) variables() variables {
	v := variables{}
	v.str("search", p.Search)
	v.positive("page", p.Page)
	v.positive("limit", p.Limit)
	v.str("kind", p.Kind)
	v.str("status", p.Status)
	v.str("season", p.Season)
	v.str("rating", p.Rating)
	v.str("genre", p.Genre)
	v.str("studio", p.Studio)
	v.str("order", p.Order)
	v.idCSV("ids", p.IDs)
	v.flag("censored", p.Censored)
	return v
}

func (p MangaParams) variables() variables {
	v := variables{}
	v.str("search", p.Search)
	v.positive("page", p.Page)
	v.positive("limit", p.Limit)
	v.str("kind", p.Kind)
	v.str("status", p.Status)
	v.str("season", p.Season)
	v.str("genre", p.Genre)
	v.str("publisher", p.Publisher)
	v.str("order", p.Order)
	v.idCSV("ids", p.IDs)
	v.flag("censored", p.Censored)
	return v
}

func (p CharacterParams) variables() variables {
	v := variables{}
	v.str("search", p.Search)
	v.positive("page", p.Page)
	v.positive("limit", p.Limit)
	v.idList("ids", p.IDs)
	return v
}

func (p PeopleParams) variables() variables {
	v := variables{}
	v.str("search", p.Search)
	v.positive("page", p.Page)
	v.positive("limit", p.Limit)
	v.idList("ids", p.IDs)
	v.flag("isSeyu", p.IsSeyu)
	v.flag("isMangaka", p.IsMangaka)
	v.flag("isProducer", p.IsProducer)
	return v
}
