package schema

// CollectionTable represents the 'collections' table
type CollectionTable struct {
	Table string
	ID    string
	Name  string
}

// Collection is the schema definition for collections
var Collection = CollectionTable{
	Table: "collections",
	ID:    "id",
	Name:  "name",
}

func (t CollectionTable) Columns() []string {
	return []string{t.ID, t.Name}
}
