package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shikidesk/internal/apperr"
	"github.com/five82/shikidesk/internal/catalog"
)

// chromeLines is the number of rows used by the header, search bar, status
// line and footer.
const chromeLines = 4

func (m Model) listHeight() int {
	return max(1, m.height-chromeLines)
}

func (m Model) renderMain() string {
	var body string
	if m.view == ViewDetail {
		body = m.detail.View()
	} else {
		body = m.renderList()
	}
	body = lipgloss.NewStyle().Height(m.listHeight()).MaxHeight(m.listHeight()).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderSearchBar(),
		body,
		m.renderStatus(),
		m.renderFooter(),
	)
}

// renderHeader renders the logo and the collection tabs.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	parts := []string{styles.AccentText.Bold(true).Render("shikidesk")}
	for _, tab := range tabOrder {
		if tab == m.tab {
			parts = append(parts, styles.ActiveTab.Render(tab.Label()))
		} else {
			parts = append(parts, styles.Tab.Render(tab.Label()))
		}
	}
	return styles.Header.Width(m.width).Render(strings.Join(parts, " "))
}

func (m Model) renderSearchBar() string {
	styles := m.theme.Styles()
	if m.editing {
		return m.input.View()
	}
	if m.query == "" {
		return styles.FaintText.Render("/ " + m.input.Placeholder)
	}
	return styles.AccentText.Render("/ ") + styles.Text.Render(m.query)
}

func (m Model) renderList() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	if len(snap.Cards) == 0 {
		switch {
		case snap.Loading:
			return styles.MutedText.Render("Загрузка...")
		case snap.LastError != nil:
			return ""
		default:
			return styles.MutedText.Render("Ничего не найдено")
		}
	}

	height := m.listHeight()
	start := 0
	if m.selected >= height {
		start = m.selected - height + 1
	}
	end := min(len(snap.Cards), start+height)

	lang := m.prefs().PreferredLanguage
	titleWidth := max(10, m.width-36)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		card := snap.Cards[i]
		line := fmt.Sprintf(" %s %s %s %s",
			fit(displayTitle(card, lang), titleWidth),
			fit(card.Kind, 12),
			fit(card.Status, 12),
			formatScore(card.Score),
		)
		if i == m.selected {
			lines = append(lines, styles.Selected.Width(m.width).Render(line))
		} else {
			lines = append(lines, styles.Text.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

// renderStatus shows loading progress, paging and the last error.
func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	var parts []string
	if snap.LastError != nil {
		parts = append(parts, styles.DangerText.Render(errorText(snap.LastError)))
	}
	if snap.Loading {
		parts = append(parts, styles.WarningText.Render("Загрузка..."))
	}
	if n := len(snap.Cards); n > 0 {
		count := fmt.Sprintf("%d/%d", min(m.selected+1, n), n)
		if snap.HasMore {
			count += "+"
		}
		parts = append(parts, styles.MutedText.Render(count))
	}
	if !snap.LastUpdated.IsZero() && m.view == ViewList {
		parts = append(parts, styles.FaintText.Render(snap.LastUpdated.Format(time.TimeOnly)))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	return m.theme.Styles().Footer.Width(m.width).Render(m.help.View(m.keys))
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Theme: " + m.theme.Name))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// displayTitle picks the title in the preferred language.
func displayTitle(card catalog.Card, lang string) string {
	if lang == "russian" && card.Subtitle != "" {
		return card.Subtitle
	}
	return card.Title
}

func formatScore(score *float64) string {
	if score == nil {
		return "  - "
	}
	return fmt.Sprintf("%4.2f", *score)
}

// errorText renders a failure for the status line.
func errorText(err error) string {
	appErr, ok := apperr.As(err)
	if !ok {
		return err.Error()
	}
	if appErr.RetryAfter != nil {
		return fmt.Sprintf("%s (повтор через %s)", appErr.Message, appErr.RetryAfter.Round(time.Second))
	}
	return appErr.Message
}
