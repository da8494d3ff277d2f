package schema

// ImageTagTable represents the 'image_tags' table
type ImageTagTable struct {
	Table   string
	ImageID string
	TagID   string
}

// ImageTag is the schema definition for image_tags
var ImageTag = ImageTagTable{
	Table:   "image_tags",
	ImageID: "image_id",
	TagID:   "tag_id",
}
