package types

// ClientMessage is the single inbound wire shape. Type selects which of the
// optional fields are meaningful.
type ClientMessage struct {
	Type     string `json:"type"`
	Nickname string `json:"nickname,omitempty"`
	RoomKey  string `json:"roomKey,omitempty"`
	Ready    bool   `json:"ready,omitempty"`
}

// ServerMessage is the outbound envelope: the event name plus its payload.
type ServerMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}
