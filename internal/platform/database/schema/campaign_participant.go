package schema

// ParticipantTable represents the 'participants' table
type ParticipantTable struct {
	Table              string
	ID                 string
	CombatID           string
	EntityID           string
	ImageID            string
	Name               string
	IsVisible          string
	IsPC               string
	Damage             string
	MaxHP              string
	HitDice            string
	AC                 string
	Initiative         string
	InitiativeModifier string
	Conditions         string
	HasReaction        string
	Colour             string
}

// Participant is the schema definition for participants
var Participant = ParticipantTable{
	Table:              "participants",
	ID:                 "id",
	CombatID:           "combat_id",
	EntityID:           "entity_id",
	ImageID:            "image_id",
	Name:               "name",
	IsVisible:          "is_visible",
	IsPC:               "is_pc",
	Damage:             "damage",
	MaxHP:              "max_hp",
	HitDice:            "hit_dice",
	AC:                 "ac",
	Initiative:         "initiative",
	InitiativeModifier: "initiative_modifier",
	Conditions:         "conditions",
	HasReaction:        "has_reaction",
	Colour:             "colour",
}

func (t ParticipantTable) Columns() []string {
	return []string{t.ID, t.CombatID, t.EntityID, t.ImageID, t.Name, t.IsVisible, t.IsPC, t.Damage, t.MaxHP, t.HitDice, t.AC, t.Initiative, t.InitiativeModifier, t.Conditions, t.HasReaction, t.Colour}
}
