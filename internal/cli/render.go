package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/qdeck/qdeck/pkg/types"
)

var (
	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Width(12).
			Height(1).
			Align(lipgloss.Center)

	emptyCellStyle = cellStyle.
			BorderForeground(lipgloss.Color("240")).
			Foreground(lipgloss.Color("240"))

	headerStyle = lipgloss.NewStyle().Bold(true)
)

// RenderPage draws one page as a bordered grid of cells.
func RenderPage(profile string, page *types.Page) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s / %s (%dx%d)", profile, page.Name, page.Rows, page.Cols)))
	b.WriteString("\n")

	for row := 1; row <= page.Rows; row++ {
		cells := make([]string, 0, page.Cols)
		for col := 1; col <= page.Cols; col++ {
			button := page.ButtonAt(types.Position{Row: row, Col: col})
			if button == nil {
				cells = append(cells, emptyCellStyle.Render("·"))
				continue
			}
			label := button.Label
			if button.Icon != "" && len([]rune(button.Icon)) <= 4 {
				label = button.Icon + " " + label
			}
			cells = append(cells, cellStyle.Render(label))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderContext formats the aggregated navigation snapshot.
func RenderContext(ctx types.NavigationContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Profile: %s (%d of %d)\n", ctx.ProfileName, ctx.ProfileIndex+1, ctx.TotalProfiles)
	fmt.Fprintf(&b, "Page:    %s (%d of %d)", ctx.PageName, ctx.PageIndex+1, ctx.TotalPages)

	var nav []string
	if ctx.HasPreviousPage {
		nav = append(nav, "prev")
	}
	if ctx.HasNextPage {
		nav = append(nav, "next")
	}
	if len(nav) > 0 {
		fmt.Fprintf(&b, "  [%s]", strings.Join(nav, ", "))
	}
	return b.String()
}

// RenderProfiles formats the profile listing, marking the active one.
func RenderProfiles(profiles []types.ProfileInfo, activeIndex int) string {
	var b strings.Builder
	for _, p := range profiles {
		marker := " "
		if p.Index == activeIndex {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %d  %-20s %d page(s)", marker, p.Index+1, p.Name, p.PageCount)
		if p.Hotkey != "" {
			fmt.Fprintf(&b, "  [%s]", p.Hotkey)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderPages formats the page listing of the active profile.
func RenderPages(pages []types.PageInfo, activeIndex int) string {
	var b strings.Builder
	for _, p := range pages {
		marker := " "
		if p.Index == activeIndex {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %d  %-20s %dx%d, %d button(s)\n",
			marker, p.Index+1, p.Name, p.Rows, p.Cols, p.ButtonCount)
	}
	return strings.TrimRight(b.String(), "\n")
}
