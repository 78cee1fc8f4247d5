package termview

import (
	"regexp"
	"testing"

	"github.com/lodthe/docker-tags/internal/tagstable"

	"github.com/stretchr/testify/assert"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func TestRender_Table(t *testing.T) {
	v := tagstable.View{
		State: "ready",
		Table: &tagstable.TableView{
			Heading: "Docker Tags (1)",
			Columns: tagstable.BuildColumns([]tagstable.Column{tagstable.ColumnName, tagstable.ColumnStatus, tagstable.ColumnArchitecture}),
			Rows: [][]tagstable.Cell{{
				{Text: "V1.0.0"},
				{Chips: []tagstable.Chip{{Label: "Active", Color: tagstable.ChipColorSecondary, Variant: tagstable.ChipVariantDefault}}},
				{Chips: []tagstable.Chip{
					{Label: "AMD64", Color: tagstable.ChipColorPrimary, Variant: tagstable.ChipVariantOutlined},
					{Label: "ARM64", Color: tagstable.ChipColorPrimary, Variant: tagstable.ChipVariantOutlined},
				}},
			}},
			Page:            0,
			PageSize:        5,
			PageSizeOptions: []int{5, 10, 25},
			TotalCount:      1,
		},
	}

	out := stripANSI(Render(v))
	assert.Contains(t, out, "Docker Tags (1)")
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Architecture")
	assert.Contains(t, out, "V1.0.0")
	assert.Contains(t, out, "[Active]")
	assert.Contains(t, out, "(AMD64) (ARM64)")
	assert.Contains(t, out, "page 1 of 1, 5 rows per page (5, 10, 25)")
	assert.NotContains(t, out, tagstable.EmptyContent)
}

func TestRender_EmptyTable(t *testing.T) {
	v := tagstable.View{
		Table: &tagstable.TableView{
			Heading:      "Tags (0)",
			Columns:      tagstable.BuildColumns([]tagstable.Column{tagstable.ColumnName}),
			PageSize:     5,
			EmptyContent: tagstable.EmptyContent,
		},
	}

	out := stripANSI(Render(v))
	assert.Contains(t, out, "Tags (0)")
	assert.Contains(t, out, tagstable.EmptyContent)
}

func TestRender_Error(t *testing.T) {
	out := stripANSI(Render(tagstable.View{Error: &tagstable.ErrorInfo{
		Name:    tagstable.ErrorNameNotFound,
		Message: `namespace "ns" or repository "rp" not found`,
	}}))

	assert.Contains(t, out, "Error: NotFoundError")
	assert.Contains(t, out, `"ns"`)
	assert.Contains(t, out, `"rp"`)
}

func TestRender_MissingAnnotation(t *testing.T) {
	out := stripANSI(Render(tagstable.View{MissingAnnotation: &tagstable.MissingAnnotationView{Annotation: "docker.com/repository"}}))

	assert.Contains(t, out, "Missing Annotation")
	assert.Contains(t, out, "docker.com/repository")
}

func TestRenderCell(t *testing.T) {
	assert.Equal(t, "text", RenderCell(tagstable.Cell{Text: "text"}))
	assert.Equal(t, "", RenderCell(tagstable.Cell{}))
}

func TestPagination(t *testing.T) {
	got := pagination(&tagstable.TableView{Page: 1, PageSize: 5, TotalCount: 12, PageSizeOptions: []int{5}})
	assert.Equal(t, "page 2 of 3, 5 rows per page (5)", got)
}
