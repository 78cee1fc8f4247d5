package tagstable

import "github.com/lodthe/docker-tags/pkg/dockerhub"

// ActiveStatus is the tag status rendered with the primary chip color.
const ActiveStatus = "active"

type ChipColor string

const (
	ChipColorPrimary   ChipColor = "primary"
	ChipColorSecondary ChipColor = "secondary"
)

type ChipVariant string

const (
	ChipVariantDefault  ChipVariant = "default"
	ChipVariantOutlined ChipVariant = "outlined"
)

type Chip struct {
	Label   string      `json:"label"`
	Color   ChipColor   `json:"color"`
	Variant ChipVariant `json:"variant"`
	Key     string      `json:"key,omitempty"`
}

// Cell is a rendered table cell: either plain text or a list of chips.
type Cell struct {
	Text  string `json:"text,omitempty"`
	Chips []Chip `json:"chips,omitempty"`
}

type ColumnDef struct {
	ID    Column `json:"id"`
	Title string `json:"title"`
	Field string `json:"field"`

	render func(tag dockerhub.Tag) Cell
}

func (c ColumnDef) Render(tag dockerhub.Tag) Cell {
	return c.render(tag)
}

var columnDefs = map[Column]ColumnDef{
	ColumnName: {
		ID:    ColumnName,
		Title: "Name",
		Field: "name",
		render: func(tag dockerhub.Tag) Cell {
			return Cell{Text: tag.Name}
		},
	},
	ColumnUsername: {
		ID:    ColumnUsername,
		Title: "Username",
		Field: "last_updater_username",
		render: func(tag dockerhub.Tag) Cell {
			return Cell{Text: tag.LastUpdaterUsername}
		},
	},
	ColumnStatus: {
		ID:     ColumnStatus,
		Title:  "Status",
		Field:  "tag_status",
		render: renderStatus,
	},
	ColumnArchitecture: {
		ID:     ColumnArchitecture,
		Title:  "Architecture",
		Field:  "architecture",
		render: renderArchitectures,
	},
}

func renderStatus(tag dockerhub.Tag) Cell {
	color := ChipColorSecondary
	if tag.TagStatus == ActiveStatus {
		color = ChipColorPrimary
	}

	return Cell{Chips: []Chip{{
		Label:   tag.TagStatus,
		Color:   color,
		Variant: ChipVariantDefault,
		Key:     tag.Digest,
	}}}
}

func renderArchitectures(tag dockerhub.Tag) Cell {
	chips := make([]Chip, 0, len(tag.Images))
	for _, img := range tag.Images {
		chips = append(chips, Chip{
			Label:   img.Architecture,
			Color:   ChipColorPrimary,
			Variant: ChipVariantOutlined,
			Key:     img.Digest,
		})
	}

	return Cell{Chips: chips}
}

// BuildColumns resolves column names in the given order.
// Duplicates are kept and unknown names are skipped.
func BuildColumns(columns []Column) []ColumnDef {
	defs := make([]ColumnDef, 0, len(columns))
	for _, c := range columns {
		def, known := columnDefs[c]
		if !known {
			continue
		}

		defs = append(defs, def)
	}

	return defs
}
