// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package message stores the short narrative lines a game master can flash
// over any session view.
package message

// FieldMessage is the only field clients send.
const FieldMessage = "message"

// ResourceMessage names the row kind in client-facing errors.
const ResourceMessage = "Message"

// MaxLength is the longest message accepted, in characters.
const MaxLength = 400

// Message is one stored line.
type Message struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// Input is the create and update body.
type Input struct {
	Message string `json:"message"`
}
