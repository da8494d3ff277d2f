package schema

// MessageTable represents the 'messages' table
type MessageTable struct {
	Table   string
	ID      string
	Message string
}

// Message is the schema definition for messages
var Message = MessageTable{
	Table:   "messages",
	ID:      "id",
	Message: "message",
}

func (t MessageTable) Columns() []string {
	return []string{t.ID, t.Message}
}
