package schema

// ImageCollectionTable represents the 'image_collections' table
type ImageCollectionTable struct {
	Table        string
	ImageID      string
	CollectionID string
}

// ImageCollection is the schema definition for image_collections
var ImageCollection = ImageCollectionTable{
	Table:        "image_collections",
	ImageID:      "image_id",
	CollectionID: "collection_id",
}
