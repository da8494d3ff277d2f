// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package image keeps the metadata of the campaign's pictures: backdrops,
character portraits, handouts and maps.

Files themselves live outside the service. This package stores where they
are and what they look like, sizes thumbnails, and ranks images by the tags
they share with a query.
*/
package image

import (
	"fmt"

	"github.com/taibuivan/tabletop/internal/core/tag"
	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/pkg/optional"
)

// # Field Identifiers

const (
	FieldPath       = "path"
	FieldName       = "name"
	FieldType       = "type"
	FieldDimensionX = "dimension_x"
	FieldDimensionY = "dimension_y"
	FieldWidth      = "width"
	FieldHeight     = "height"
	FieldScale      = "scale"
	FieldTags       = "tags"
)

// ResourceImage names the row kind in client-facing errors.
const ResourceImage = "Image"

// Type is what an image is used for.
type Type string

const (
	TypeBackdrop  Type = "backdrop"
	TypeCharacter Type = "character"
	TypeHandout   Type = "handout"
	TypeMap       Type = "map"
)

// Types lists every valid [Type].
var Types = []string{string(TypeBackdrop), string(TypeCharacter), string(TypeHandout), string(TypeMap)}

// # Domain Model

// Image is one picture's metadata.
type Image struct {
	ID   int64  `json:"id"`
	Path string `json:"path"`
	Name string `json:"name"`

	// FocusX and FocusY mark the point to keep in view when cropping.
	FocusX *int `json:"focus_x"`
	FocusY *int `json:"focus_y"`

	Hash       *string   `json:"hash"`
	DimensionX int       `json:"dimension_x"`
	DimensionY int       `json:"dimension_y"`
	Type       Type      `json:"type"`
	Palette    *string   `json:"palette"`
	Tags       []tag.Tag `json:"tags"`
}

// Match is one ranked image.
type Match struct {
	Image      Image   `json:"image"`
	MatchCount int     `json:"match_count"`
	TagIDs     []int64 `json:"tag_ids"`
}

// # Inputs

type CreateInput struct {
	Path       string  `json:"path"`
	Name       string  `json:"name"`
	FocusX     *int    `json:"focus_x"`
	FocusY     *int    `json:"focus_y"`
	Hash       *string `json:"hash"`
	DimensionX int     `json:"dimension_x"`
	DimensionY int     `json:"dimension_y"`
	Type       Type    `json:"type"`
	Palette    *string `json:"palette"`
}

type UpdateInput struct {
	Path       *string                `json:"path"`
	Name       *string                `json:"name"`
	FocusX     optional.Value[int]    `json:"focus_x"`
	FocusY     optional.Value[int]    `json:"focus_y"`
	Hash       optional.Value[string] `json:"hash"`
	DimensionX *int                   `json:"dimension_x"`
	DimensionY *int                   `json:"dimension_y"`
	Type       *Type                  `json:"type"`
	Palette    optional.Value[string] `json:"palette"`
}

// # Thumbnails

// Scale asks for a thumbnail either by a bounding box (Width, Height, or
// both) or by a plain factor. The two forms cannot be mixed.
type Scale struct {
	Width  *int     `json:"width"`
	Height *int     `json:"height"`
	Scale  *float64 `json:"scale"`
}

// Size is a thumbnail's pixel dimensions.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

/*
ThumbnailSize computes the size of a thumbnail of a dimX by dimY image.

Description: With both width and height the image is fitted inside the box
(the smaller ratio wins); with one of them that side is matched; otherwise
the factor applies. The aspect ratio is always kept and the result is
truncated to whole pixels.

Returns:
  - Size: The thumbnail dimensions
  - error: ValidationError when the forms are mixed, none is given, or the
    requested side of the image is zero
*/
func ThumbnailSize(dimX, dimY int, scale Scale) (Size, error) {
	box := scale.Width != nil || scale.Height != nil

	if box && scale.Scale != nil {
		return Size{}, apperr.ValidationError("Cannot supply scale together with width or height",
			apperr.FieldError{Field: FieldScale, Message: "Conflicts with width and height"})
	}

	var factor float64
	switch {
	case scale.Width != nil && scale.Height != nil:
		if dimX <= 0 || dimY <= 0 {
			return Size{}, zeroDimension(FieldDimensionX)
		}
		factor = min(float64(*scale.Width)/float64(dimX), float64(*scale.Height)/float64(dimY))
	case scale.Width != nil:
		if dimX <= 0 {
			return Size{}, zeroDimension(FieldDimensionX)
		}
		factor = float64(*scale.Width) / float64(dimX)
	case scale.Height != nil:
		if dimY <= 0 {
			return Size{}, zeroDimension(FieldDimensionY)
		}
		factor = float64(*scale.Height) / float64(dimY)
	case scale.Scale != nil:
		factor = *scale.Scale
	default:
		return Size{}, apperr.ValidationError("Supply either scale, or one or more of width and height",
			apperr.FieldError{Field: FieldScale, Message: "This field is required"})
	}

	if factor < 0 {
		return Size{}, apperr.ValidationError("Validation failed",
			apperr.FieldError{Field: FieldScale, Message: "Must not be negative"})
	}

	return Size{
		Width:  int(factor * float64(dimX)),
		Height: int(factor * float64(dimY)),
	}, nil
}

func zeroDimension(field string) error {
	return apperr.ValidationError("Image has no recorded size",
		apperr.FieldError{Field: field, Message: fmt.Sprintf("%s is zero", field)})
}
