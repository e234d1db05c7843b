package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shikidesk/internal/accent"
	"github.com/five82/shikidesk/internal/catalog"
)

// maxDetailRows caps the role and relation sections.
const maxDetailRows = 12

// renderDetail refreshes the detail viewport content.
func (m *Model) renderDetail() {
	if m.view != ViewDetail {
		return
	}
	m.detail.SetContent(m.detailContent())
}

func (m Model) detailContent() string {
	styles := m.theme.Styles()
	width := max(20, m.detail.Width)

	var b strings.Builder
	b.WriteString(m.renderTitleBar(width))
	b.WriteString("\n\n")

	switch {
	case m.detailLoading:
		b.WriteString(styles.MutedText.Render("Загрузка..."))
		return b.String()
	case m.detailErr != nil:
		b.WriteString(styles.DangerText.Render(errorText(m.detailErr)))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("esc: назад"))
		return b.String()
	}

	var d detailWriter
	switch entity := m.detailEntity.(type) {
	case catalog.MediaDetail:
		d = mediaSections(entity)
	case catalog.CharacterDetail:
		d = characterSections(entity)
	case catalog.PersonDetail:
		d = personSections(entity)
	}
	b.WriteString(d.render(styles, width))
	return b.String()
}

// renderTitleBar draws the title on the poster accent when one is known.
func (m Model) renderTitleBar(width int) string {
	styles := m.theme.Styles()
	title := displayTitle(m.detailCard, m.prefs().PreferredLanguage)
	title = truncate(title, width-4)

	if m.accentColor == "" {
		return styles.AccentText.Bold(true).Render(title)
	}
	c, err := accent.Parse(m.accentColor)
	if err != nil {
		return styles.AccentText.Bold(true).Render(title)
	}
	swatch := m.theme.Swatch(c, title)
	bar := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Tint(c))).
		Width(width).
		Render(swatch)
	return bar
}

type field struct {
	label string
	value string
}

type section struct {
	title string
	lines []string
}

// detailWriter collects the fields, prose and sections of one entity page.
type detailWriter struct {
	subtitle    string
	fields      []field
	description string
	sections    []section
}

func (d *detailWriter) field(label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	d.fields = append(d.fields, field{label: label, value: value})
}

func (d *detailWriter) section(title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	if len(lines) > maxDetailRows {
		extra := len(lines) - maxDetailRows
		lines = append(lines[:maxDetailRows:maxDetailRows], fmt.Sprintf("... и ещё %d", extra))
	}
	d.sections = append(d.sections, section{title: title, lines: lines})
}

func (d detailWriter) render(styles Styles, width int) string {
	var b strings.Builder
	if d.subtitle != "" {
		b.WriteString(styles.MutedText.Render(d.subtitle))
		b.WriteString("\n\n")
	}

	labelWidth := 0
	for _, f := range d.fields {
		labelWidth = max(labelWidth, len([]rune(f.label)))
	}
	for _, f := range d.fields {
		b.WriteString(styles.FaintText.Render(padRight(f.label, labelWidth+2)))
		b.WriteString(styles.Text.Render(f.value))
		b.WriteString("\n")
	}

	if d.description != "" {
		b.WriteString("\n")
		b.WriteString(styles.Text.Width(width).Render(d.description))
		b.WriteString("\n")
	}

	for _, s := range d.sections {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render(s.title))
		b.WriteString("\n")
		for _, line := range s.lines {
			b.WriteString("  ")
			b.WriteString(styles.Text.Render(truncate(line, width-2)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func mediaSections(m catalog.MediaDetail) detailWriter {
	var d detailWriter
	d.subtitle = joinNonEmpty(" / ", m.Title, deref(m.English), deref(m.Japanese))

	d.field("Тип", catalog.KindLabel(m.Kind))
	d.field("Статус", catalog.StatusLabel(m.Status))
	if m.Score != nil {
		d.field("Оценка", strconv.FormatFloat(*m.Score, 'f', 2, 64))
	}
	d.field("Эпизоды", episodes(m.MediaSummary))
	if m.Volumes != nil && *m.Volumes > 0 {
		d.field("Тома", strconv.Itoa(*m.Volumes))
	}
	if m.Chapters != nil && *m.Chapters > 0 {
		d.field("Главы", strconv.Itoa(*m.Chapters))
	}
	if m.Duration != nil && *m.Duration > 0 {
		d.field("Длительность", fmt.Sprintf("%d мин.", *m.Duration))
	}
	d.field("Рейтинг", catalog.RatingLabel(m.Rating))
	d.field("Сезон", deref(m.Season))
	d.field("Выходит с", catalog.FormatDate(m.AiredOn))
	d.field("Вышло", catalog.FormatDate(m.ReleasedOn))
	if m.NextEpisodeAt != nil {
		d.field("Следующий эпизод", m.NextEpisodeAt.Local().Format(time.DateTime))
	}
	d.field("Жанры", genreNames(m.Genres))

	studios := make([]string, 0, len(m.Studios))
	for _, s := range m.Studios {
		studios = append(studios, s.Name)
	}
	d.field("Студии", strings.Join(studios, ", "))
	publishers := make([]string, 0, len(m.Publishers))
	for _, p := range m.Publishers {
		publishers = append(publishers, p.Name)
	}
	d.field("Издатели", strings.Join(publishers, ", "))
	d.field("Синонимы", strings.Join(m.Synonyms, ", "))

	d.description = plainText(deref(m.Description))

	var characters []string
	for _, r := range m.CharacterRoles {
		characters = append(characters, joinNonEmpty(" · ", personName(r.Character.Name, r.Character.Russian), strings.Join(r.RolesRu, ", ")))
	}
	d.section("Персонажи", characters)

	var staff []string
	for _, r := range m.PersonRoles {
		roles := make([]string, 0, len(r.RolesEn))
		for _, role := range r.RolesEn {
			roles = append(roles, catalog.RoleLabel(role))
		}
		staff = append(staff, joinNonEmpty(" · ", personName(r.Person.Name, r.Person.Russian), strings.Join(roles, ", ")))
	}
	d.section("Авторы", staff)

	var related []string
	for _, r := range m.Related {
		target := r.Anime
		if target == nil {
			target = r.Manga
		}
		if target == nil {
			continue
		}
		related = append(related, joinNonEmpty(" · ", catalog.RelationLabel(r.RelationKind), mediaName(*target)))
	}
	d.section("Связанное", related)
	return d
}

func characterSections(c catalog.CharacterDetail) detailWriter {
	var d detailWriter
	d.subtitle = joinNonEmpty(" / ", c.Name, deref(c.Japanese))
	d.field("Синонимы", strings.Join(c.Synonyms, ", "))
	d.description = plainText(deref(c.Description))

	var seyus []string
	for _, p := range c.Seyus {
		seyus = append(seyus, personName(p.Name, p.Russian))
	}
	d.section("Сэйю", seyus)

	var works []string
	for _, r := range c.Roles {
		target := r.Anime
		if target == nil {
			target = r.Manga
		}
		if target == nil {
			continue
		}
		works = append(works, joinNonEmpty(" · ", mediaName(*target), strings.Join(r.Roles, ", ")))
	}
	d.section("Появления", works)
	return d
}

func personSections(p catalog.PersonDetail) detailWriter {
	var d detailWriter
	d.subtitle = joinNonEmpty(" / ", p.Name, deref(p.Japanese))
	d.field("Должность", deref(p.JobTitle))
	d.field("Дата рождения", catalog.FormatDate(p.BirthOn))
	d.field("Дата смерти", catalog.FormatDate(p.DeceasedOn))
	d.field("Сайт", deref(p.Website))

	var works []string
	for _, w := range p.Works {
		target := w.Anime
		if target == nil {
			target = w.Manga
		}
		if target == nil {
			continue
		}
		works = append(works, joinNonEmpty(" · ", mediaName(*target), deref(w.Role)))
	}
	d.section("Работы", works)
	return d
}

func episodes(m catalog.MediaSummary) string {
	if m.Episodes == nil || *m.Episodes == 0 {
		if m.EpisodesAired != nil && *m.EpisodesAired > 0 {
			return strconv.Itoa(*m.EpisodesAired) + " / ?"
		}
		return ""
	}
	if m.EpisodesAired != nil && *m.EpisodesAired > 0 && *m.EpisodesAired < *m.Episodes {
		return fmt.Sprintf("%d / %d", *m.EpisodesAired, *m.Episodes)
	}
	return strconv.Itoa(*m.Episodes)
}

func genreNames(genres []catalog.Genre) string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		if g.Russian != nil && *g.Russian != "" {
			names = append(names, *g.Russian)
		} else {
			names = append(names, g.Name)
		}
	}
	return strings.Join(names, ", ")
}

func personName(name string, russian *string) string {
	if r := deref(russian); r != "" && r != name {
		return r + " (" + name + ")"
	}
	return name
}

func mediaName(m catalog.MediaSummary) string {
	title := personName(m.Title, m.Russian)
	if kind := catalog.KindLabel(m.Kind); kind != "" {
		return title + ", " + kind
	}
	return title
}
