package tagstable

type Column string

const (
	ColumnName         Column = "name"
	ColumnUsername     Column = "username"
	ColumnStatus       Column = "status"
	ColumnArchitecture Column = "architecture"
)

const DefaultHeading = "Docker Tags"

// Options configures a table. Zero values are replaced by defaults in WithDefaults,
// except for a non-nil empty Columns slice which renders no columns at all.
type Options struct {
	Heading            string   `mapstructure:"heading" json:"heading"`
	Columns            []Column `mapstructure:"columns" json:"columns"`
	InitialPage        int      `mapstructure:"initial_page" json:"initial_page"`
	PageSize           int      `mapstructure:"page_size" json:"page_size"`
	PageSizeOptions    []int    `mapstructure:"page_size_options" json:"page_size_options"`
	ShowCountInHeading *bool    `mapstructure:"show_count_in_heading" json:"show_count_in_heading"`
}

func DefaultOptions() Options {
	showCount := true

	return Options{
		Heading:            DefaultHeading,
		Columns:            []Column{ColumnName, ColumnUsername, ColumnStatus, ColumnArchitecture},
		InitialPage:        0,
		PageSize:           5,
		PageSizeOptions:    []int{5, 10, 25},
		ShowCountInHeading: &showCount,
	}
}

// WithDefaults returns a copy of o with unset fields taken from DefaultOptions.
func (o Options) WithDefaults() Options {
	def := DefaultOptions()

	if o.Heading == "" {
		o.Heading = def.Heading
	}
	if o.Columns == nil {
		o.Columns = def.Columns
	}
	if o.InitialPage < 0 {
		o.InitialPage = def.InitialPage
	}
	if o.PageSize <= 0 {
		o.PageSize = def.PageSize
	}
	if len(o.PageSizeOptions) == 0 {
		o.PageSizeOptions = def.PageSizeOptions
	}
	if o.ShowCountInHeading == nil {
		o.ShowCountInHeading = def.ShowCountInHeading
	}

	return o
}

// Merge overrides fields of o with the set fields of override.
// Zero values count as unset, so a zero InitialPage keeps the base page.
func (o Options) Merge(override Options) Options {
	if override.Heading != "" {
		o.Heading = override.Heading
	}
	if override.Columns != nil {
		o.Columns = override.Columns
	}
	if override.InitialPage > 0 {
		o.InitialPage = override.InitialPage
	}
	if override.PageSize > 0 {
		o.PageSize = override.PageSize
	}
	if len(override.PageSizeOptions) != 0 {
		o.PageSizeOptions = override.PageSizeOptions
	}
	if override.ShowCountInHeading != nil {
		o.ShowCountInHeading = override.ShowCountInHeading
	}

	return o
}
