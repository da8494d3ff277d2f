package schema

// ImageTable represents the 'images' table
type ImageTable struct {
	Table      string
	ID         string
	Path       string
	Name       string
	FocusX     string
	FocusY     string
	Hash       string
	DimensionX string
	DimensionY string
	Type       string
	Palette    string
}

// Image is the schema definition for images
var Image = ImageTable{
	Table:      "images",
	ID:         "id",
	Path:       "path",
	Name:       "name",
	FocusX:     "focus_x",
	FocusY:     "focus_y",
	Hash:       "hash",
	DimensionX: "dimension_x",
	DimensionY: "dimension_y",
	Type:       "type",
	Palette:    "palette",
}

func (t ImageTable) Columns() []string {
	return []string{t.ID, t.Path, t.Name, t.FocusX, t.FocusY, t.Hash, t.DimensionX, t.DimensionY, t.Type, t.Palette}
}
