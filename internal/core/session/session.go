// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session holds what each live table is currently showing.

A session is in exactly one [Mode]. Every mode carries only the references it
needs (a combat for [CombatMode], an image for the picture modes, nothing for
[LoadingMode]), so a session can never point at a combat while showing a map.
A message overlay may sit on top of any mode.

Every change is published to the session's pub/sub channel so viewers can
redraw.
*/
package session

import (
	"encoding/json"
	"fmt"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/validate"
	"github.com/taibuivan/tabletop/pkg/optional"
)

// # Field Identifiers

const (
	FieldTitle     = "title"
	FieldMode      = "mode"
	FieldImageID   = "image_id"
	FieldCombatID  = "combat_id"
	FieldMessageID = "message_id"
)

const ResourceSession = "Session"

const maxTitleLength = 200

// # Modes

// ModeName is the wire and column value of a [Mode].
type ModeName string

const (
	ModeLoading  ModeName = "loading"
	ModeBackdrop ModeName = "backdrop"
	ModeCombat   ModeName = "combat"
	ModeHandout  ModeName = "handout"
	ModeMap      ModeName = "map"
)

var modeNames = []string{
	string(ModeLoading), string(ModeBackdrop), string(ModeCombat), string(ModeHandout), string(ModeMap),
}

// Mode is what a session shows. The set of modes is closed.
type Mode interface {
	Name() ModeName
	references() references
}

// references is the persisted shape of a mode.
type references struct {
	ImageID  *int64
	CombatID *int64
}

type LoadingMode struct{}

type BackdropMode struct{ ImageID int64 }

type CombatMode struct{ CombatID int64 }

type HandoutMode struct{ ImageID int64 }

type MapMode struct{ ImageID int64 }

func (LoadingMode) Name() ModeName  { return ModeLoading }
func (BackdropMode) Name() ModeName { return ModeBackdrop }
func (CombatMode) Name() ModeName   { return ModeCombat }
func (HandoutMode) Name() ModeName  { return ModeHandout }
func (MapMode) Name() ModeName      { return ModeMap }

func (LoadingMode) references() references { return references{} }

func (mode BackdropMode) references() references { return references{ImageID: &mode.ImageID} }

func (mode CombatMode) references() references { return references{CombatID: &mode.CombatID} }

func (mode HandoutMode) references() references { return references{ImageID: &mode.ImageID} }

func (mode MapMode) references() references { return references{ImageID: &mode.ImageID} }

/*
NewMode builds the mode called name from the references a client sent.

Description: The references the mode needs must be present and positive; the
ones it does not use must be absent. An empty name means [LoadingMode].

Returns:
  - Mode: The validated mode
  - error: ValidationError naming every offending field
*/
func NewMode(name ModeName, imageID, combatID *int64) (Mode, error) {
	if name == "" {
		name = ModeLoading
	}

	validator := &validate.Validator{}
	validator.OneOf(FieldMode, string(name), modeNames...)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	needsImage := name == ModeBackdrop || name == ModeHandout || name == ModeMap
	needsCombat := name == ModeCombat

	checkReference(validator, FieldImageID, imageID, needsImage, name)
	checkReference(validator, FieldCombatID, combatID, needsCombat, name)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	switch name {
	case ModeBackdrop:
		return BackdropMode{ImageID: *imageID}, nil
	case ModeCombat:
		return CombatMode{CombatID: *combatID}, nil
	case ModeHandout:
		return HandoutMode{ImageID: *imageID}, nil
	case ModeMap:
		return MapMode{ImageID: *imageID}, nil
	default:
		return LoadingMode{}, nil
	}
}

func checkReference(validator *validate.Validator, field string, id *int64, needed bool, mode ModeName) {
	switch {
	case needed && id == nil:
		validator.Custom(field, true, fmt.Sprintf("Required in %s mode", mode))
	case needed:
		validator.PositiveID(field, *id)
	case id != nil:
		validator.Custom(field, true, fmt.Sprintf("Not allowed in %s mode", mode))
	}
}

// # Domain Model

// Session is one live table.
type Session struct {
	ID    int64
	Title string
	Mode  Mode

	// MessageID is the overlay shown on top of the mode, if any.
	MessageID *int64
}

// wire is the flat JSON shape of a session: the mode name plus whichever
// reference it carries.
type wire struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Mode      ModeName `json:"mode"`
	ImageID   *int64   `json:"image_id,omitempty"`
	CombatID  *int64   `json:"combat_id,omitempty"`
	MessageID *int64   `json:"message_id"`
}

func (session Session) MarshalJSON() ([]byte, error) {
	mode := session.Mode
	if mode == nil {
		mode = LoadingMode{}
	}
	refs := mode.references()

	return json.Marshal(wire{
		ID:        session.ID,
		Title:     session.Title,
		Mode:      mode.Name(),
		ImageID:   refs.ImageID,
		CombatID:  refs.CombatID,
		MessageID: session.MessageID,
	})
}

// UnmarshalJSON dispatches on "mode". A body that breaks the mode rules is
// a ValidationError.
func (session *Session) UnmarshalJSON(data []byte) error {
	var decoded wire
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	mode, err := NewMode(decoded.Mode, decoded.ImageID, decoded.CombatID)
	if err != nil {
		return err
	}

	*session = Session{ID: decoded.ID, Title: decoded.Title, Mode: mode, MessageID: decoded.MessageID}
	return nil
}

// # Inputs

// CreateInput is the create body. An empty Mode starts the session loading.
type CreateInput struct {
	Title     string   `json:"title"`
	Mode      ModeName `json:"mode"`
	ImageID   *int64   `json:"image_id"`
	CombatID  *int64   `json:"combat_id"`
	MessageID *int64   `json:"message_id"`
}

// UpdateInput is a sparse update. Setting Mode replaces the mode and its
// references; references without a Mode are rejected.
type UpdateInput struct {
	Title     *string               `json:"title"`
	Mode      *ModeName             `json:"mode"`
	ImageID   *int64                `json:"image_id"`
	CombatID  *int64                `json:"combat_id"`
	MessageID optional.Value[int64] `json:"message_id"`
}

// Change is a validated update, ready for storage.
type Change struct {
	Title     *string
	Mode      Mode
	MessageID optional.Value[int64]
}

func modeless(input UpdateInput) error {
	var details []apperr.FieldError
	if input.ImageID != nil {
		details = append(details, apperr.FieldError{Field: FieldImageID, Message: "Send mode with it"})
	}
	if input.CombatID != nil {
		details = append(details, apperr.FieldError{Field: FieldCombatID, Message: "Send mode with it"})
	}
	if len(details) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", details...)
}
