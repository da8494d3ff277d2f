package schema

// RollTableRowDataTable represents the 'rolltable_row_data' table
type RollTableRowDataTable struct {
	Table string
	ID    string
	RowID string
	Data  string
}

// RollTableRowData is the schema definition for rolltable_row_data
var RollTableRowData = RollTableRowDataTable{
	Table: "rolltable_row_data",
	ID:    "id",
	RowID: "rolltable_row_id",
	Data:  "data",
}

func (t RollTableRowDataTable) Columns() []string {
	return []string{t.ID, t.RowID, t.Data}
}
