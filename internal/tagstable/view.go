package tagstable

import (
	"context"

	"github.com/lodthe/docker-tags/internal/annotation"
)

const EmptyContent = "No Docker Tags found"

// View is what a table shows after a page request: the missing annotation
// placeholder, an error panel or the table itself.
type View struct {
	State             string                 `json:"state"`
	MissingAnnotation *MissingAnnotationView `json:"missing_annotation,omitempty"`
	Error             *ErrorInfo             `json:"error,omitempty"`
	Table             *TableView             `json:"table,omitempty"`
}

type MissingAnnotationView struct {
	Annotation string `json:"annotation"`
}

type TableView struct {
	Heading         string      `json:"heading"`
	Columns         []ColumnDef `json:"columns"`
	Rows            [][]Cell    `json:"rows"`
	Page            int         `json:"page"`
	PageSize        int         `json:"page_size"`
	PageSizeOptions []int       `json:"page_size_options"`
	TotalCount      int         `json:"total_count"`
	EmptyContent    string      `json:"empty_content,omitempty"`
}

// Render runs a page request and builds the resulting view.
func (c *Controller) Render(ctx context.Context, q Query) View {
	return c.View(c.Query(ctx, q))
}

// View builds the view of the given page result.
func (c *Controller) View(result QueryResult) View {
	v := View{State: c.state.String()}

	switch c.state {
	case StateUnavailable:
		v.MissingAnnotation = &MissingAnnotationView{Annotation: annotation.Key}
		return v

	case StateError:
		v.Error = c.err
		return v
	}

	rows := make([][]Cell, 0, len(result.Data))
	for _, tag := range result.Data {
		row := make([]Cell, 0, len(c.columns))
		for _, col := range c.columns {
			row = append(row, col.Render(tag))
		}

		rows = append(rows, row)
	}

	table := &TableView{
		Heading:         c.Heading(),
		Columns:         c.columns,
		Rows:            rows,
		Page:            result.Page,
		PageSize:        c.lastQuery.PageSize,
		PageSizeOptions: c.opts.PageSizeOptions,
		TotalCount:      result.TotalCount,
	}
	if len(rows) == 0 {
		table.EmptyContent = EmptyContent
	}

	v.Table = table

	return v
}
