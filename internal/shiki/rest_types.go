package shiki

import "encoding/json"

// The REST API is loosely typed: ids and scores arrive as numbers or as
// strings depending on the endpoint, so they are kept raw and coerced by the
// caller.

// RESTImage is the image block of REST records. Paths are usually relative to
// the site origin.
type RESTImage struct {
	Original *string `json:"original"`
	Preview  *string `json:"preview"`
	X96      *string `json:"x96"`
	X48      *string `json:"x48"`
}

// RESTMedia is an anime or manga entry embedded in REST payloads.
type RESTMedia struct {
	ID            json.RawMessage `json:"id"`
	Name          *string         `json:"name"`
	Russian       *string         `json:"russian"`
	Image         *RESTImage      `json:"image"`
	URL           *string         `json:"url"`
	Kind          *string         `json:"kind"`
	Score         json.RawMessage `json:"score"`
	Status        *string         `json:"status"`
	Episodes      *int            `json:"episodes"`
	EpisodesAired *int            `json:"episodes_aired"`
	Volumes       *int            `json:"volumes"`
	Chapters      *int            `json:"chapters"`
	AiredOn       *string         `json:"aired_on"`
	ReleasedOn    *string         `json:"released_on"`
	Roles         []string        `json:"roles"`
	Role          *string         `json:"role"`
}

// RESTPersonRef is a person reference embedded in REST payloads.
type RESTPersonRef struct {
	ID      json.RawMessage `json:"id"`
	Name    *string         `json:"name"`
	Russian *string         `json:"russian"`
	Image   *RESTImage      `json:"image"`
	URL     *string         `json:"url"`
}

// RESTCharacter mirrors GET /api/characters/:id.
type RESTCharacter struct {
	ID              json.RawMessage `json:"id"`
	Name            *string         `json:"name"`
	Russian         *string         `json:"russian"`
	Japanese        *string         `json:"japanese"`
	Altname         *string         `json:"altname"`
	Image           *RESTImage      `json:"image"`
	URL             *string         `json:"url"`
	Description     *string         `json:"description"`
	DescriptionHTML *string         `json:"description_html"`
	Seyu            []RESTPersonRef `json:"seyu"`
	Animes          []RESTMedia     `json:"animes"`
	Mangas          []RESTMedia     `json:"mangas"`
}

// RESTDate is the date object used by person records.
type RESTDate struct {
	Year  *int `json:"year"`
	Month *int `json:"month"`
	Day   *int `json:"day"`
}

// RESTWork is one entry of a person's filmography.
type RESTWork struct {
	Anime *RESTMedia `json:"anime"`
	Manga *RESTMedia `json:"manga"`
	Role  *string    `json:"role"`
}

// RESTPerson mirrors GET /api/people/:id.
type RESTPerson struct {
	ID         json.RawMessage `json:"id"`
	Name       *string         `json:"name"`
	Russian    *string         `json:"russian"`
	Japanese   *string         `json:"japanese"`
	Image      *RESTImage      `json:"image"`
	URL        *string         `json:"url"`
	JobTitle   *string         `json:"job_title"`
	Website    *string         `json:"website"`
	BirthOn    *RESTDate       `json:"birth_on"`
	DeceasedOn *RESTDate       `json:"deceased_on"`
	Seyu       *bool           `json:"seyu"`
	Mangaka    *bool           `json:"mangaka"`
	Producer   *bool           `json:"producer"`
	Works      []RESTWork      `json:"works"`
}

// RESTGenre mirrors an entry of GET /api/genres.
type RESTGenre struct {
	ID        json.RawMessage `json:"id"`
	Name      *string         `json:"name"`
	Russian   *string         `json:"russian"`
	Kind      *string         `json:"kind"`
	EntryType *string         `json:"entry_type"`
}

// RESTStudio mirrors an entry of GET /api/studios.
type RESTStudio struct {
	ID           json.RawMessage `json:"id"`
	Name         *string         `json:"name"`
	FilteredName *string         `json:"filtered_name"`
	Real         *bool           `json:"real"`
	Image        *string         `json:"image"`
}

// RESTPublisher mirrors an entry of GET /api/publishers.
type RESTPublisher struct {
	ID   json.RawMessage `json:"id"`
	Name *string         `json:"name"`
}
