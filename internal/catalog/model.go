package catalog

import "time"

// Collection names the site path segment of an entity type.
type Collection string

const (
	CollectionAnimes     Collection = "animes"
	CollectionMangas     Collection = "mangas"
	CollectionCharacters Collection = "characters"
	CollectionPeople     Collection = "people"
)

// UnknownName is used when upstream omits a title or name, and for the
// sentinel records that stand in for omitted nested objects.
const UnknownName = "Unknown"

// Poster lists the absolute URL variants of an image. Preview equals Main
// when upstream has no separate preview.
type Poster struct {
	Main     *string `json:"main,omitempty"`
	Original *string `json:"original,omitempty"`
	Preview  *string `json:"preview,omitempty"`
	Small    *string `json:"x96,omitempty"`
	Smaller  *string `json:"x48,omitempty"`
}

// MediaSummary is the search-result shape shared by anime and manga.
type MediaSummary struct {
	ID            int64      `json:"id"`
	Collection    Collection `json:"collection"`
	Title         string     `json:"title"`
	Russian       *string    `json:"russian,omitempty"`
	URL           *string    `json:"url,omitempty"`
	PosterURL     *string    `json:"poster_url,omitempty"`
	Poster        *Poster    `json:"poster,omitempty"`
	Score         *float64   `json:"score,omitempty"`
	Kind          *string    `json:"kind,omitempty"`
	Status        *string    `json:"status,omitempty"`
	Episodes      *int       `json:"episodes,omitempty"`
	EpisodesAired *int       `json:"episodes_aired,omitempty"`
	Volumes       *int       `json:"volumes,omitempty"`
	Chapters      *int       `json:"chapters,omitempty"`
}

// MediaDetail is the full record of an anime or manga. Collections are nil
// when upstream omitted them and empty when upstream returned none.
type MediaDetail struct {
	MediaSummary

	MalID             *int64          `json:"mal_id,omitempty"`
	English           *string         `json:"english,omitempty"`
	Japanese          *string         `json:"japanese,omitempty"`
	LicenseNameRu     *string         `json:"license_name_ru,omitempty"`
	Synonyms          []string        `json:"synonyms"`
	Description       *string         `json:"description,omitempty"`
	DescriptionHTML   *string         `json:"description_html,omitempty"`
	DescriptionSource *string         `json:"description_source,omitempty"`
	Rating            *string         `json:"rating,omitempty"`
	Duration          *int            `json:"duration,omitempty"`
	Season            *string         `json:"season,omitempty"`
	AiredOn           *Date           `json:"aired_on,omitempty"`
	ReleasedOn        *Date           `json:"released_on,omitempty"`
	NextEpisodeAt     *time.Time      `json:"next_episode_at,omitempty"`
	IsCensored        *bool           `json:"is_censored,omitempty"`
	Genres            []Genre         `json:"genres"`
	Studios           []Studio        `json:"studios"`
	Publishers        []Publisher     `json:"publishers"`
	ExternalLinks     []ExternalLink  `json:"external_links"`
	PersonRoles       []PersonRole    `json:"person_roles"`
	CharacterRoles    []CharacterRole `json:"character_roles"`
	Related           []Related       `json:"related"`
	Videos            []Video         `json:"videos"`
	Screenshots       []Screenshot    `json:"screenshots"`
	ScoresStats       []ScoreStat     `json:"scores_stats"`
	StatusesStats     []StatusStat    `json:"statuses_stats"`
	Fansubbers        []string        `json:"fansubbers"`
	Fandubbers        []string        `json:"fandubbers"`
	Licensors         []string        `json:"licensors"`
}

// Date is a possibly incomplete calendar date.
type Date struct {
	Year  *int    `json:"year,omitempty"`
	Month *int    `json:"month,omitempty"`
	Day   *int    `json:"day,omitempty"`
	Date  *string `json:"date,omitempty"`
}

type Genre struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Russian   *string `json:"russian,omitempty"`
	Kind      *string `json:"kind,omitempty"`
	EntryType *string `json:"entry_type,omitempty"`
}

type Studio struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	ImageURL *string `json:"image_url,omitempty"`
}

type Publisher struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ExternalLink struct {
	ID   *int64 `json:"id,omitempty"`
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

// PersonSummary is a person as it appears in search results and role edges.
// ID 0 marks the unresolved sentinel.
type PersonSummary struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Russian    *string `json:"russian,omitempty"`
	URL        *string `json:"url,omitempty"`
	PosterURL  *string `json:"poster_url,omitempty"`
	Poster     *Poster `json:"poster,omitempty"`
	IsSeyu     *bool   `json:"is_seyu,omitempty"`
	IsMangaka  *bool   `json:"is_mangaka,omitempty"`
	IsProducer *bool   `json:"is_producer,omitempty"`
	Website    *string `json:"website,omitempty"`
}

// PersonDetail is the full record of a person.
type PersonDetail struct {
	PersonSummary

	Japanese   *string    `json:"japanese,omitempty"`
	JobTitle   *string    `json:"job_title,omitempty"`
	BirthOn    *Date      `json:"birth_on,omitempty"`
	DeceasedOn *Date      `json:"deceased_on,omitempty"`
	Works      []WorkEdge `json:"works"`
}

// CharacterSummary is a character as it appears in search results and role
// edges. ID 0 marks the unresolved sentinel.
type CharacterSummary struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Russian     *string `json:"russian,omitempty"`
	URL         *string `json:"url,omitempty"`
	PosterURL   *string `json:"poster_url,omitempty"`
	Poster      *Poster `json:"poster,omitempty"`
	Description *string `json:"description,omitempty"`
	IsAnime     *bool   `json:"is_anime,omitempty"`
	IsManga     *bool   `json:"is_manga,omitempty"`
	IsRanobe    *bool   `json:"is_ranobe,omitempty"`
}

// CharacterDetail is the full record of a character. Synonyms is never nil.
type CharacterDetail struct {
	CharacterSummary

	Japanese        *string         `json:"japanese,omitempty"`
	Synonyms        []string        `json:"synonyms"`
	DescriptionHTML *string         `json:"description_html,omitempty"`
	Roles           []MediaRoleEdge `json:"character_roles"`
	Seyus           []PersonSummary `json:"seyus"`
}

// PersonRole links a media entry to a staff member.
type PersonRole struct {
	ID      int64         `json:"id"`
	RolesRu []string      `json:"roles_ru"`
	RolesEn []string      `json:"roles_en"`
	Person  PersonSummary `json:"person"`
}

// CharacterRole links a media entry to a character.
type CharacterRole struct {
	ID        int64            `json:"id"`
	RolesRu   []string         `json:"roles_ru"`
	RolesEn   []string         `json:"roles_en"`
	Character CharacterSummary `json:"character"`
}

// Related is an edge to another work. Exactly one of Anime and Manga is set.
type Related struct {
	ID           int64         `json:"id"`
	RelationKind string        `json:"relation_kind"`
	RelationText *string       `json:"relation_text,omitempty"`
	Anime        *MediaSummary `json:"anime,omitempty"`
	Manga        *MediaSummary `json:"manga,omitempty"`
}

// MediaRoleEdge is a character's appearance in a work. Exactly one of Anime
// and Manga is set.
type MediaRoleEdge struct {
	ID    int64         `json:"id"`
	Roles []string      `json:"roles_ru"`
	Anime *MediaSummary `json:"anime,omitempty"`
	Manga *MediaSummary `json:"manga,omitempty"`
}

// WorkEdge is a person's credit on a work. Exactly one of Anime and Manga is
// set.
type WorkEdge struct {
	Role  *string       `json:"role,omitempty"`
	Anime *MediaSummary `json:"anime,omitempty"`
	Manga *MediaSummary `json:"manga,omitempty"`
}

type Video struct {
	ID        int64   `json:"id"`
	URL       *string `json:"url,omitempty"`
	Name      *string `json:"name,omitempty"`
	Kind      *string `json:"kind,omitempty"`
	PlayerURL *string `json:"player_url,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
}

type Screenshot struct {
	ID          int64   `json:"id"`
	OriginalURL *string `json:"original_url,omitempty"`
	X166URL     *string `json:"x166_url,omitempty"`
	X332URL     *string `json:"x332_url,omitempty"`
}

type ScoreStat struct {
	Score int `json:"score"`
	Count int `json:"count"`
}

type StatusStat struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Page wraps a list result with the pagination echo fields.
type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}
