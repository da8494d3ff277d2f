package schema

// RollTableRowTable represents the 'rolltable_rows' table
type RollTableRowTable struct {
	Table       string
	ID          string
	RollTableID string
	Name        string
	DisplayName string
	Category    string
}

// RollTableRow is the schema definition for rolltable_rows
var RollTableRow = RollTableRowTable{
	Table:       "rolltable_rows",
	ID:          "id",
	RollTableID: "rolltable_id",
	Name:        "name",
	DisplayName: "display_name",
	Category:    "category",
}

func (t RollTableRowTable) Columns() []string {
	return []string{t.ID, t.RollTableID, t.Name, t.DisplayName, t.Category}
}
