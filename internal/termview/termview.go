// Package termview renders tag table views for terminals.
package termview

import (
	"fmt"
	"strings"

	"github.com/lodthe/docker-tags/internal/tagstable"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorPrimary   = lipgloss.Color("#00ff88")
	colorSecondary = lipgloss.Color("#00ccff")
	colorError     = lipgloss.Color("#ff4444")
	colorMuted     = lipgloss.Color("#737373")
	colorBorder    = lipgloss.Color("#404040")

	headingStyle = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(0, 1)
)

// Render draws the view: a placeholder, an error panel or a bordered table.
func Render(v tagstable.View) string {
	switch {
	case v.MissingAnnotation != nil:
		return renderMissingAnnotation(v.MissingAnnotation)
	case v.Error != nil:
		return renderError(v.Error)
	case v.Table != nil:
		return renderTable(v.Table)
	default:
		return ""
	}
}

func renderMissingAnnotation(v *tagstable.MissingAnnotationView) string {
	return headingStyle.Render("Missing Annotation") + "\n" +
		mutedStyle.Render(fmt.Sprintf("Add the %s annotation to the entity to see its tags.", v.Annotation))
}

func renderError(e *tagstable.ErrorInfo) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorError).Render("Error: " + e.Name)

	return errorStyle.Render(title + "\n" + e.Message)
}

func renderTable(t *tagstable.TableView) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(t.Heading))
	b.WriteString("\n")

	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Title
	}

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = RenderCell(cell)
		}
	}

	if len(headers) > 0 {
		tbl := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
			Headers(headers...).
			Rows(rows...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})

		b.WriteString(tbl.String())
		b.WriteString("\n")
	}

	if t.EmptyContent != "" {
		b.WriteString(mutedStyle.Render(t.EmptyContent))
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(pagination(t)))

	return b.String()
}

func pagination(t *tagstable.TableView) string {
	pages := 1
	if t.PageSize > 0 && t.TotalCount > 0 {
		pages = (t.TotalCount + t.PageSize - 1) / t.PageSize
	}

	sizes := make([]string, len(t.PageSizeOptions))
	for i, s := range t.PageSizeOptions {
		sizes[i] = fmt.Sprint(s)
	}

	return fmt.Sprintf("page %d of %d, %d rows per page (%s)", t.Page+1, pages, t.PageSize, strings.Join(sizes, ", "))
}

// RenderCell renders text as is and chips as bracketed labels.
func RenderCell(c tagstable.Cell) string {
	if len(c.Chips) == 0 {
		return c.Text
	}

	chips := make([]string, len(c.Chips))
	for i, chip := range c.Chips {
		chips[i] = renderChip(chip)
	}

	return strings.Join(chips, " ")
}

func renderChip(c tagstable.Chip) string {
	color := colorSecondary
	if c.Color == tagstable.ChipColorPrimary {
		color = colorPrimary
	}

	style := lipgloss.NewStyle().Foreground(color)
	if c.Variant == tagstable.ChipVariantOutlined {
		return style.Render("(" + c.Label + ")")
	}

	return style.Bold(true).Render("[" + c.Label + "]")
}
