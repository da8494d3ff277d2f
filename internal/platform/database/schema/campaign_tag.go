package schema

// TagTable represents the 'tags' table
type TagTable struct {
	Table string
	ID    string
	Label string
}

// Tag is the schema definition for tags
var Tag = TagTable{
	Table: "tags",
	ID:    "id",
	Label: "label",
}

func (t TagTable) Columns() []string {
	return []string{t.ID, t.Label}
}
