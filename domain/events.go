package domain

// Inbound event names (client -> server).
const (
	EventCreateRoom   = "createRoom"
	EventJoinRoom     = "joinRoom"
	EventStartGame    = "startGame"
	EventSelectNumber = "selectNumber"
	EventCallBingo    = "callBingo"
)

// Outbound event names (server -> one connection or -> room).
const (
	EventRoomCreated    = "roomCreated"
	EventJoinedRoom     = "joinedRoom"
	EventPlayersList    = "playersList"
	EventPlayerJoined   = "playerJoined"
	EventGameStarted    = "gameStarted"
	EventTurnUpdate     = "turnUpdate"
	EventNumberSelected = "numberSelected"
	EventBingoCall      = "bingoCall"
	EventError          = "error"
)

// CreateRoomPayload's MaxPlayers is a pointer so an absent field can be told
// apart from an explicit zero: absent means "biggest room", zero clamps up.
type CreateRoomPayload struct {
	PlayerName string `json:"playerName"`
	MaxPlayers *int   `json:"maxPlayers"`
}

type JoinRoomPayload struct {
	PlayerName string `json:"playerName"`
	RoomCode   string `json:"roomCode"`
}

type StartGamePayload struct {
	RoomCode string `json:"roomCode"`
}

type SelectNumberPayload struct {
	Number   int    `json:"number"`
	RoomCode string `json:"roomCode"`
}

type CallBingoPayload struct {
	RoomCode string `json:"roomCode"`
}

type RoomCreatedPayload struct {
	RoomCode string `json:"roomCode"`
}

type JoinedRoomPayload struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type PlayersListPayload struct {
	Players    []*Player `json:"players"`
	MaxPlayers int       `json:"maxPlayers"`
}

type PlayerJoinedPayload struct {
	Player *Player `json:"player"`
}

type TurnUpdatePayload struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// NumberSelected relays the number as-is. The server does not check that it
// is in range or unselected; that stays on the client side.
type NumberSelectedPayload struct {
	Number int    `json:"number"`
	Player string `json:"player"`
}

type BingoCallPayload struct {
	Player string `json:"player"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
