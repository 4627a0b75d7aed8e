package domain

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Envelope is the wire format in both directions: a named event plus its
// structured payload.
type Envelope struct {
	Type    string      `json:"type"`
	Content interface{} `json:"content"`
}

// Client is one live websocket connection. ID is assigned at upgrade time and
// doubles as the player's connection identifier for the lifetime of the socket.
type Client struct {
	ID        uuid.UUID
	Conn      *websocket.Conn
	Send      chan []byte
	WriteLock sync.Mutex
	Done      chan struct{}
}
