package types

// RasterBackend identifies the PDF rendering tool.
type RasterBackend string

const (
	BackendFitz    RasterBackend = "fitz"
	BackendPoppler RasterBackend = "poppler"
)

// DefaultDPI is the rendering resolution used when none is configured.
const DefaultDPI = 200

// DefaultIndexColumn is the header label of the table-number column.
const DefaultIndexColumn = "table_no"

// RasterConfig holds settings for the PDF-to-images conversion.
type RasterConfig struct {
	// Backend selects the renderer: fitz (in-process MuPDF) or poppler (pdftoppm).
	Backend RasterBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// DPI is the rendering resolution (default 200).
	DPI int `json:"dpi" yaml:"dpi" mapstructure:"dpi"`

	// OutputDir overrides the default <stem>_pages directory.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty" mapstructure:"output_dir"`

	// PopplerImage is the container image used when pdftoppm is not on PATH.
	PopplerImage string `json:"poppler_image" yaml:"poppler_image" mapstructure:"poppler_image"`
}

// TableConfig holds settings for the DOCX-tables-to-workbook conversion.
type TableConfig struct {
	// OutputPath overrides the default <stem>_tables.xlsx file.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty" mapstructure:"output_path"`

	// IndexColumn is the header label of the leading table-number column.
	IndexColumn string `json:"index_column" yaml:"index_column" mapstructure:"index_column"`
}

// HistoryConfig holds settings for the conversion history store.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty disables history.
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a logrus level name (debug, info, warn, error).
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// Config groups all settings for the docconv CLI.
type Config struct {
	PDF     RasterConfig  `json:"pdf" yaml:"pdf" mapstructure:"pdf"`
	Tables  TableConfig   `json:"tables" yaml:"tables" mapstructure:"tables"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
