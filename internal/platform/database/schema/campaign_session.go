package schema

// SessionTable represents the 'sessions' table
type SessionTable struct {
	Table     string
	ID        string
	Title     string
	Mode      string
	ImageID   string
	CombatID  string
	MessageID string
}

// Session is the schema definition for sessions
var Session = SessionTable{
	Table:     "sessions",
	ID:        "id",
	Title:     "title",
	Mode:      "mode",
	ImageID:   "image_id",
	CombatID:  "combat_id",
	MessageID: "message_id",
}

func (t SessionTable) Columns() []string {
	return []string{t.ID, t.Title, t.Mode, t.ImageID, t.CombatID, t.MessageID}
}
