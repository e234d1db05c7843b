package catalog

import (
	"strconv"
	"strings"
	"time"
)

var kindLabels = map[string]string{
	"tv":         "ТВ",
	"movie":      "Фильм",
	"ova":        "OVA",
	"ona":        "ONA",
	"special":    "Спешл",
	"tv_special": "ТВ-спешл",
	"music":      "Клип",
	"tv_13":      "ТВ-13",
	"tv_24":      "ТВ-24",
	"tv_48":      "ТВ-48",
	"manga":      "Манга",
	"manhwa":     "Манхва",
	"manhua":     "Маньхуа",
	"novel":      "Ранобэ",
	"one_shot":   "Ваншот",
	"doujin":     "Додзинси",
}

var statusLabels = map[string]string{
	"anons":    "Анонсировано",
	"ongoing":  "Онгоинг",
	"released": "Выпущено",
}

var ratingLabels = map[string]string{
	"none":   "Без рейтинга",
	"g":      "G",
	"pg":     "PG",
	"pg_13":  "PG-13",
	"r":      "R-17",
	"r_plus": "R+",
	"rx":     "Rx",
}

var relationLabels = map[string]string{
	"sequel":              "Сиквел",
	"prequel":             "Приквел",
	"alternative":         "Альтернатива",
	"side_story":          "Побочная история",
	"parent_story":        "Основная история",
	"summary":             "Рекап",
	"adaptation":          "Адаптация",
	"spin_off":            "Спин-офф",
	"character":           "Персонаж",
	"other":               "Другое",
	"full_story":          "Полная история",
	"alternative_setting": "Альтернативный сеттинг",
	"alternative_version": "Альтернативная версия",
}

var roleLabels = map[string]string{
	"Main":                     "Главный",
	"Supporting":               "Второстепенный",
	"Producer":                 "Продюсер",
	"Director":                 "Режиссёр",
	"Original Creator":         "Автор оригинала",
	"Music":                    "Композитор",
	"Character Design":         "Дизайнер персонажей",
	"Series Composition":       "Сценарист",
	"Animation Director":       "Режиссёр анимации",
	"Script":                   "Сценарий",
	"Editing":                  "Монтаж",
	"Sound Director":           "Звукорежиссёр",
	"Art Director":             "Арт-директор",
	"Key Animation":            "Ключевая анимация",
	"Background Art":           "Художник-постановщик",
	"Storyboard":               "Раскадровка",
	"Color Design":             "Цветовой дизайн",
	"Theme Song Performance":   "Исполнение темы",
	"Theme Song Arrangement":   "Аранжировка темы",
	"Theme Song Composition":   "Композиция темы",
	"Theme Song Lyrics":        "Текст темы",
	"Chief Animation Director": "Шеф-режиссёр анимации",
	"Executive Producer":       "Исполнительный продюсер",
	"Associate Producer":       "Ассоциированный продюсер",
	"Assistant Director":       "Помощник режиссёра",
	"Music Producer":           "Музыкальный продюсер",
	"Sound Effects":            "Звуковые эффекты",
	"Director of Photography":  "Оператор-постановщик",
	"Digital Art":              "Цифровая графика",
	"3D Director":              "3D-режиссёр",
	"In-Between Animation":     "Промежуточная анимация",
	"Planning":                 "Планирование",
	"Color Setting":            "Работа с цветом",
}

var monthsGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// KindLabel returns the display name of an anime or manga kind. Unknown kinds
// are upper-cased; an absent kind yields "".
func KindLabel(kind *string) string {
	if kind == nil || *kind == "" {
		return ""
	}
	if label, ok := kindLabels[*kind]; ok {
		return label
	}
	return strings.ToUpper(*kind)
}

// StatusLabel returns the display name of a release status.
func StatusLabel(status *string) string {
	if status == nil || *status == "" {
		return ""
	}
	if label, ok := statusLabels[*status]; ok {
		return label
	}
	return *status
}

// RatingLabel returns the display name of an age rating.
func RatingLabel(rating *string) string {
	if rating == nil || *rating == "" {
		return ""
	}
	if label, ok := ratingLabels[*rating]; ok {
		return label
	}
	return strings.ToUpper(*rating)
}

// RelationLabel returns the display name of a relation kind.
func RelationLabel(kind string) string {
	if label, ok := relationLabels[kind]; ok {
		return label
	}
	return kind
}

// RoleLabel translates an English staff or character role.
func RoleLabel(role string) string {
	if label, ok := roleLabels[role]; ok {
		return label
	}
	return role
}

// FormatDate renders a possibly incomplete date as "5 апреля 2009". Full
// dates in the Date field win over the component fields.
func FormatDate(d *Date) string {
	if d == nil {
		return ""
	}
	if d.Date != nil {
		if t, err := time.Parse("2006-01-02", *d.Date); err == nil {
			return strconv.Itoa(t.Day()) + " " + monthsGenitive[t.Month()-1] + " " + strconv.Itoa(t.Year())
		}
	}
	if d.Year == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	if d.Day != nil && *d.Day > 0 {
		parts = append(parts, strconv.Itoa(*d.Day))
	}
	if d.Month != nil && *d.Month >= 1 && *d.Month <= 12 {
		parts = append(parts, monthsGenitive[*d.Month-1])
	}
	parts = append(parts, strconv.Itoa(*d.Year))
	return strings.Join(parts, " ")
}
