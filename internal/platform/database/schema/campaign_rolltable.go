package schema

// RollTableTable represents the 'rolltables' table
type RollTableTable struct {
	Table string
	ID    string
	Name  string
}

// RollTable is the schema definition for rolltables
var RollTable = RollTableTable{
	Table: "rolltables",
	ID:    "id",
	Name:  "name",
}

func (t RollTableTable) Columns() []string {
	return []string{t.ID, t.Name}
}
