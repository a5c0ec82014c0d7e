package room

import "github.com/infectedparty/backend/internal/game"

// Event is the sealed union of outbound messages. Each kind carries its wire
// name and the payload the gateway serializes; the gateway and tests can
// type-switch exhaustively on the concrete types.
type Event interface {
	Name() string
	Payload() any
}

// PlayerView is the roster projection broadcast to clients. Roles are never
// included here; they travel by unicast until the results phase.
type PlayerView struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Ready    bool   `json:"ready"`
}

// PlayerRoleView reveals a player's role. Broadcast only in results.
type PlayerRoleView struct {
	ID       string    `json:"id"`
	Nickname string    `json:"nickname"`
	Role     game.Role `json:"role"`
}

// ReadyStatus is the derived tally for a phase-local ready gate. It is always
// recomputed from the live roster, never stored.
type ReadyStatus struct {
	ReadyCount   int  `json:"readyCount"`
	TotalPlayers int  `json:"totalPlayers"`
	AllReady     bool `json:"allReady"`
}

// JoinSuccess is unicast to a client whose join was accepted.
type JoinSuccess struct{}

func (JoinSuccess) Name() string { return "joinSuccess" }

func (JoinSuccess) Payload() any { return nil }

// JoinError is unicast to a client whose join was rejected.
type JoinError struct {
	Reason string `json:"reason"`
}

func (JoinError) Name() string { return "joinError" }

func (e JoinError) Payload() any { return e.Reason }

// Players is the full roster snapshot, broadcast on every membership or
// waiting-readiness change.
type Players struct {
	Players []PlayerView `json:"players"`
}

func (Players) Name() string { return "players" }

func (e Players) Payload() any { return e.Players }

// GameInfo summarizes the room for the waiting screen.
type GameInfo struct {
	PlayersCount int    `json:"playersCount"`
	MaxPlayers   int    `json:"maxPlayers"`
	RoomKey      string `json:"roomKey"`
	CanStart     bool   `json:"canStart"`
	RoomFull     bool   `json:"roomFull"`
	AllReady     bool   `json:"allReady"`
}

func (GameInfo) Name() string { return "gameInfo" }

func (e GameInfo) Payload() any { return e }

// GamePhase announces a phase transition.
type GamePhase struct {
	Phase game.Phase `json:"phase"`
}

func (GamePhase) Name() string { return "gamePhase" }

func (e GamePhase) Payload() any { return e.Phase }

// GameSet carries the round's flavor-text scenario.
type GameSet struct {
	Text string `json:"text"`
}

func (GameSet) Name() string { return "gameSet" }

func (e GameSet) Payload() any { return e.Text }

// PlayerRole is unicast to exactly one player; it is never broadcast.
type PlayerRole struct {
	Role game.Role `json:"role"`
}

func (PlayerRole) Name() string { return "playerRole" }

func (e PlayerRole) Payload() any { return e.Role }

// CurrentQuestion carries the active discussion prompt.
type CurrentQuestion struct {
	Question string `json:"question"`
	Number   int    `json:"number"`
	Total    int    `json:"total"`
}

func (CurrentQuestion) Name() string { return "currentQuestion" }

func (e CurrentQuestion) Payload() any { return e }

// QuestionReadyStatus is the question-phase ready tally.
type QuestionReadyStatus struct {
	ReadyStatus
}

func (QuestionReadyStatus) Name() string { return "questionReadyStatus" }

func (e QuestionReadyStatus) Payload() any { return e.ReadyStatus }

// VotingReadyStatus is the voting-phase ready tally.
type VotingReadyStatus struct {
	ReadyStatus
}

func (VotingReadyStatus) Name() string { return "votingReadyStatus" }

func (e VotingReadyStatus) Payload() any { return e.ReadyStatus }

// PlayersWithRoles is the results-phase reveal: the one broadcast where every
// player's role is visible to everyone.
type PlayersWithRoles struct {
	Players []PlayerRoleView `json:"players"`
}

func (PlayersWithRoles) Name() string { return "playersWithRoles" }

func (e PlayersWithRoles) Payload() any { return e.Players }
