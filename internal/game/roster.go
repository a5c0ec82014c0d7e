package game

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

var ErrBadKey = errors.New("invalid room key")
var ErrRoomFull = errors.New("room is full")
var ErrBadNickname = errors.New("invalid nickname")
var ErrGameInProgress = errors.New("game already in progress")

const maxNicknameLen = 20

// Role is the hidden assignment revealed only in the results phase.
type Role string

const (
	RoleUnset    Role = ""
	RoleHealthy  Role = "HEALTHY"
	RoleInfected Role = "INFECTED"
)

// Player is a single roster entry. All fields exist from creation; the
// readiness flags and Role are mutated by the room session across phases.
type Player struct {
	ID            string
	Nickname      string
	Ready         bool
	QuestionReady bool
	VotingReady   bool
	Role          Role
}

// Selector picks which readiness flag a tally is computed over.
type Selector func(*Player) bool

// Roster owns the set of connected players keyed by connection id.
// Insertion order is preserved so snapshots render stably on clients.
// Not safe for concurrent use; the room session serializes access.
type Roster struct {
	roomKey  string
	capacity int
	players  map[string]*Player
	order    []string
}

func NewRoster(roomKey string, capacity int) *Roster {
	return &Roster{
		roomKey:  roomKey,
		capacity: capacity,
		players:  make(map[string]*Player),
	}
}

// Join inserts a new player with all flags cleared. The capacity check runs
// before the key check: a full room reports ErrRoomFull regardless of key.
// Joining an already-seated id is a no-op; the existing entry keeps its state.
func (r *Roster) Join(id, nickname, suppliedKey string) error {
	if _, ok := r.players[id]; ok {
		return nil
	}
	if len(r.players) >= r.capacity {
		return ErrRoomFull
	}
	if suppliedKey != r.roomKey {
		return ErrBadKey
	}
	if !ValidNickname(nickname) {
		return ErrBadNickname
	}
	r.players[id] = &Player{ID: id, Nickname: nickname}
	r.order = append(r.order, id)
	return nil
}

// Leave is idempotent; duplicate disconnect signals are tolerated.
func (r *Roster) Leave(id string) {
	if _, ok := r.players[id]; !ok {
		return
	}
	delete(r.players, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Roster) Has(id string) bool {
	_, ok := r.players[id]
	return ok
}

func (r *Roster) SetReady(id string, ready bool) bool {
	p, ok := r.players[id]
	if !ok {
		return false
	}
	p.Ready = ready
	return true
}

func (r *Roster) SetQuestionReady(id string) bool {
	p, ok := r.players[id]
	if !ok {
		return false
	}
	p.QuestionReady = true
	return true
}

func (r *Roster) SetVotingReady(id string) bool {
	p, ok := r.players[id]
	if !ok {
		return false
	}
	p.VotingReady = true
	return true
}

func (r *Roster) ResetQuestionReady() {
	for _, p := range r.players {
		p.QuestionReady = false
	}
}

// AllReady reports whether every player satisfies sel. An empty roster is
// never ready; the vacuous truth would let an empty room start a round.
func (r *Roster) AllReady(sel Selector) bool {
	if len(r.players) == 0 {
		return false
	}
	for _, p := range r.players {
		if !sel(p) {
			return false
		}
	}
	return true
}

func (r *Roster) ReadyCount(sel Selector) int {
	n := 0
	for _, p := range r.players {
		if sel(p) {
			n++
		}
	}
	return n
}

func (r *Roster) Size() int {
	return len(r.players)
}

func (r *Roster) IsFull() bool {
	return len(r.players) == r.capacity
}

func (r *Roster) Capacity() int {
	return r.capacity
}

func (r *Roster) RoomKey() string {
	return r.roomKey
}

// Players returns copies of the roster entries in insertion order.
func (r *Roster) Players() []Player {
	out := make([]Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.players[id])
	}
	return out
}

// IDs returns the connection ids in insertion order.
func (r *Roster) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ValidNickname accepts 1-20 printable characters. Uniqueness is not
// required; players are identified by connection id.
func ValidNickname(nickname string) bool {
	n := utf8.RuneCountInString(nickname)
	if n < 1 || n > maxNicknameLen {
		return false
	}
	for _, r := range nickname {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
