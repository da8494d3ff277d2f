package schema

// CombatTable represents the 'combats' table
type CombatTable struct {
	Table               string
	ID                  string
	Title               string
	Round               string
	ActiveParticipantID string
	IsActive            string
}

// Combat is the schema definition for combats
var Combat = CombatTable{
	Table:               "combats",
	ID:                  "id",
	Title:               "title",
	Round:               "round",
	ActiveParticipantID: "active_participant_id",
	IsActive:            "is_active",
}

func (t CombatTable) Columns() []string {
	return []string{t.ID, t.Title, t.Round, t.ActiveParticipantID, t.IsActive}
}
