package shiki

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a GraphQL identifier. The query API serializes ids as strings; the
// typed client exposes them as integers.
type ID int64

// UnmarshalJSON accepts both "123" and 123.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = 0
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		if s == "" {
			*id = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("parse id %q: %w", s, err)
		}
		*id = ID(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	*id = ID(n)
	return nil
}

// Media mirrors the GraphQL Anime and Manga object types. Fields that a query
// does not select, or that do not exist on the collection, stay nil.
type Media struct {
	ID                ID              `json:"id"`
	MalID             *ID             `json:"malId"`
	Name              *string         `json:"name"`
	Russian           *string         `json:"russian"`
	LicenseNameRu     *string         `json:"licenseNameRu"`
	English           *string         `json:"english"`
	Japanese          *string         `json:"japanese"`
	Synonyms          []string        `json:"synonyms"`
	Kind              *string         `json:"kind"`
	Rating            *string         `json:"rating"`
	Score             *float64        `json:"score"`
	Status            *string         `json:"status"`
	Episodes          *int            `json:"episodes"`
	EpisodesAired     *int            `json:"episodesAired"`
	Duration          *int            `json:"duration"`
	Volumes           *int            `json:"volumes"`
	Chapters          *int            `json:"chapters"`
	AiredOn           *Date           `json:"airedOn"`
	ReleasedOn        *Date           `json:"releasedOn"`
	URL               *string         `json:"url"`
	Season            *string         `json:"season"`
	Poster            *Poster         `json:"poster"`
	Fansubbers        []string        `json:"fansubbers"`
	Fandubbers        []string        `json:"fandubbers"`
	Licensors         []string        `json:"licensors"`
	NextEpisodeAt     *string         `json:"nextEpisodeAt"`
	IsCensored        *bool           `json:"isCensored"`
	Genres            []Genre         `json:"genres"`
	Studios           []Studio        `json:"studios"`
	Publishers        []Publisher     `json:"publishers"`
	ExternalLinks     []ExternalLink  `json:"externalLinks"`
	PersonRoles       []PersonRole    `json:"personRoles"`
	CharacterRoles    []CharacterRole `json:"characterRoles"`
	Related           []Related       `json:"related"`
	Videos            []Video         `json:"videos"`
	Screenshots       []Screenshot    `json:"screenshots"`
	ScoresStats       []ScoreStat     `json:"scoresStats"`
	StatusesStats     []StatusStat    `json:"statusesStats"`
	Description       *string         `json:"description"`
	DescriptionHTML   *string         `json:"descriptionHtml"`
	DescriptionSource *string         `json:"descriptionSource"`
}

// Date is the incomplete date object used across the query API.
type Date struct {
	Year  *int    `json:"year"`
	Month *int    `json:"month"`
	Day   *int    `json:"day"`
	Date  *string `json:"date"`
}

// Poster lists the image variants of an entity.
type Poster struct {
	ID          *ID     `json:"id"`
	OriginalURL *string `json:"originalUrl"`
	MainURL     *string `json:"mainUrl"`
	PreviewURL  *string `json:"previewUrl"`
	MiniURL     *string `json:"miniUrl"`
	MiniAltURL  *string `json:"miniAltUrl"`
}

// Genre mirrors the Genre object type.
type Genre struct {
	ID      ID      `json:"id"`
	Name    *string `json:"name"`
	Russian *string `json:"russian"`
	Kind    *string `json:"kind"`
}

// Studio mirrors the Studio object type.
type Studio struct {
	ID       ID      `json:"id"`
	Name     *string `json:"name"`
	ImageURL *string `json:"imageUrl"`
}

// Publisher mirrors the Publisher object type.
type Publisher struct {
	ID   ID      `json:"id"`
	Name *string `json:"name"`
}

// ExternalLink mirrors the ExternalLink object type.
type ExternalLink struct {
	ID   *ID     `json:"id"`
	Kind *string `json:"kind"`
	URL  *string `json:"url"`
}

// PersonRole links a media entry to a staff member.
type PersonRole struct {
	ID      ID       `json:"id"`
	RolesRu []string `json:"rolesRu"`
	RolesEn []string `json:"rolesEn"`
	Person  *Person  `json:"person"`
}

// CharacterRole links a media entry to a character.
type CharacterRole struct {
	ID        ID         `json:"id"`
	RolesRu   []string   `json:"rolesRu"`
	RolesEn   []string   `json:"rolesEn"`
	Character *Character `json:"character"`
}

// Related is an edge to another anime or manga.
type Related struct {
	ID           ID      `json:"id"`
	RelationKind *string `json:"relationKind"`
	RelationText *string `json:"relationText"`
	Anime        *Media  `json:"anime"`
	Manga        *Media  `json:"manga"`
}

// Video mirrors the Video object type.
type Video struct {
	ID        ID      `json:"id"`
	URL       *string `json:"url"`
	Name      *string `json:"name"`
	Kind      *string `json:"kind"`
	PlayerURL *string `json:"playerUrl"`
	ImageURL  *string `json:"imageUrl"`
}

// Screenshot mirrors the Screenshot object type.
type Screenshot struct {
	ID          ID      `json:"id"`
	OriginalURL *string `json:"originalUrl"`
	X166URL     *string `json:"x166Url"`
	X332URL     *string `json:"x332Url"`
}

// ScoreStat is one bucket of the score histogram.
type ScoreStat struct {
	Score int `json:"score"`
	Count int `json:"count"`
}

// StatusStat is one bucket of the list-status histogram.
type StatusStat struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Character mirrors the Character object type.
type Character struct {
	ID              ID       `json:"id"`
	Name            *string  `json:"name"`
	Russian         *string  `json:"russian"`
	Japanese        *string  `json:"japanese"`
	Synonyms        []string `json:"synonyms"`
	URL             *string  `json:"url"`
	Description     *string  `json:"description"`
	DescriptionHTML *string  `json:"descriptionHtml"`
	Poster          *Poster  `json:"poster"`
	IsAnime         *bool    `json:"isAnime"`
	IsManga         *bool    `json:"isManga"`
	IsRanobe        *bool    `json:"isRanobe"`
}

// Person mirrors the Person object type.
type Person struct {
	ID         ID       `json:"id"`
	Name       *string  `json:"name"`
	Russian    *string  `json:"russian"`
	Japanese   *string  `json:"japanese"`
	Synonyms   []string `json:"synonyms"`
	URL        *string  `json:"url"`
	Website    *string  `json:"website"`
	Poster     *Poster  `json:"poster"`
	IsSeyu     *bool    `json:"isSeyu"`
	IsMangaka  *bool    `json:"isMangaka"`
	IsProducer *bool    `json:"isProducer"`
}
