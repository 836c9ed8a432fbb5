package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/store"
)

const maxNameWidth = 80

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel frames lines in a box drawn with the current theme.
func Panel(lines []string) string {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if w := lipgloss.Width(ln); w > maxw {
			maxw = w
		}
	}
	var b strings.Builder
	b.WriteString(t.CornerTL + strings.Repeat(t.H, maxw+2) + t.CornerTR + "\n")
	for _, ln := range lines {
		pad := strings.Repeat(" ", maxw-lipgloss.Width(ln))
		b.WriteString(t.V + " " + ln + pad + " " + t.V + "\n")
	}
	b.WriteString(t.CornerBL + strings.Repeat(t.H, maxw+2) + t.CornerBR + "\n")
	return b.String()
}

// ItemLines renders one line per item: index, checkbox, name.
func ItemLines(items []model.Item) []string {
	t := Current()
	if len(items) == 0 {
		return []string{C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		idx := fmt.Sprintf("%2d.", i+1)
		box, color := t.BoxUnchecked, t.Muted
		name := it.Name
		if len([]rune(name)) > maxNameWidth {
			name = string([]rune(name)[:maxNameWidth-3]) + "..."
		}
		if it.Checked {
			box, color = t.BoxChecked, t.Success
			name = C(t.Checked, name)
		}
		out = append(out, fmt.Sprintf("%s %s %s", C(dim, idx), C(color, box), name))
	}
	return out
}

// ListPanel renders the visible items of s with a header and progress bar.
func ListPanel(s *store.Store) string {
	t := Current()
	checked, pending := s.Stats()

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		C(t.Title, "Shopping list"),
		C(t.Success, "✔"), checked,
		C(t.Pending, "•"), pending,
		C(t.Accent, "Total"), s.Len(),
	)
	lines := []string{header, C(t.Muted, ProgressBar(checked, checked+pending, 28))}

	var filters []string
	if s.HideCompleted() {
		filters = append(filters, "hiding checked")
	}
	if s.SearchActive() {
		filters = append(filters, fmt.Sprintf("search %q", s.SearchWord()))
	}
	if len(filters) > 0 {
		lines = append(lines, C(t.Muted, "filter: "+strings.Join(filters, ", ")))
	}

	lines = append(lines, "")
	lines = append(lines, ItemLines(store.VisibleItems(s))...)
	return Panel(lines)
}
