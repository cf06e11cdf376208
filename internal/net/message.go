package net

import (
	"PenBoard/internal/canvas"
	"PenBoard/internal/state"
)

// MessageType tags a wire message.
type MessageType string

const (
	// client to host
	TypeCommand MessageType = "command" // Text is a single command
	TypeRun     MessageType = "run"     // Text is a program
	TypeCheck   MessageType = "check"   // Text is a program to dry-run

	// host to client
	TypeResult   MessageType = "result"
	TypeDraw     MessageType = "draw"
	TypeSnapshot MessageType = "snapshot"
)

// Message is the JSON envelope exchanged over the websocket.
type Message struct {
	Type       MessageType        `json:"type"`
	Text       string             `json:"text,omitempty"`
	OK         bool               `json:"ok,omitempty"`
	Error      string             `json:"error,omitempty"`
	Pen        *state.Pen         `json:"pen,omitempty"`
	Primitive  *canvas.Primitive  `json:"primitive,omitempty"`
	Primitives []canvas.Primitive `json:"primitives,omitempty"`
}
