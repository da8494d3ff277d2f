package schema

// EntityTable represents the 'entities' table
type EntityTable struct {
	Table              string
	ID                 string
	Name               string
	HitDice            string
	AC                 string
	CR                 string
	InitiativeModifier string
	IsPC               string
	ImageID            string
	Data               string
	Source             string
	SourcePage         string
}

// Entity is the schema definition for entities
var Entity = EntityTable{
	Table:              "entities",
	ID:                 "id",
	Name:               "name",
	HitDice:            "hit_dice",
	AC:                 "ac",
	CR:                 "cr",
	InitiativeModifier: "initiative_modifier",
	IsPC:               "is_pc",
	ImageID:            "image_id",
	Data:               "data",
	Source:             "source",
	SourcePage:         "source_page",
}

func (t EntityTable) Columns() []string {
	return []string{t.ID, t.Name, t.HitDice, t.AC, t.CR, t.InitiativeModifier, t.IsPC, t.ImageID, t.Data, t.Source, t.SourcePage}
}
