package room

import (
	"context"
	"errors"
	"math/rand"

	"go.uber.org/zap"

	"github.com/infectedparty/backend/internal/game"
)

// Msg is the sealed union of commands the room accepts on its inbox.
type Msg interface{ isRoomMsg() }

// Join asks for a roster seat. Outbox is where this client wants to receive
// events; it is registered only if the join is accepted.
type Join struct {
	ConnID   string
	Nickname string
	RoomKey  string
	Outbox   chan Event
}

func (Join) isRoomMsg() {}

// Leave is transport-raised on disconnect. Idempotent.
type Leave struct{ ConnID string }

func (Leave) isRoomMsg() {}

// SetReady toggles waiting-room readiness.
type SetReady struct {
	ConnID string
	Ready  bool
}

func (SetReady) isRoomMsg() {}

// StartQuestions moves the room out of role assignment. Any connected client
// may trigger it.
type StartQuestions struct{ ConnID string }

func (StartQuestions) isRoomMsg() {}

// QuestionReady marks the sender ready for the next question.
type QuestionReady struct{ ConnID string }

func (QuestionReady) isRoomMsg() {}

// VotingReady marks the sender ready to end voting.
type VotingReady struct{ ConnID string }

func (VotingReady) isRoomMsg() {}

// GetView reflects internal state without data races; used by tests and the
// info endpoint.
type GetView struct{ Reply chan View }

func (GetView) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

type View struct {
	Phase      game.Phase
	NumClients int
	Players    []game.Player
	GameSet    string
	Question   game.Question
}

// Config is the room's static surface: the shared join secret, the fixed
// capacity, and the two catalogs.
type Config struct {
	RoomKey   string
	Capacity  int
	Questions []string
	GameSets  []string
}

// Room is the authoritative session for the single game round. All mutation
// happens on the loop goroutine, one command at a time, so two racing
// last-player-ready signals can never double-fire a transition.
type Room struct {
	inbox   chan Msg
	roster  *game.Roster
	deck    *game.QuestionDeck
	phase   game.Phase
	gameSet string
	sets    []string
	clients map[string]chan Event
	rng     *rand.Rand
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(parent context.Context, cfg Config, rng *rand.Rand, log *zap.Logger) *Room {
	ctx, cancel := context.WithCancel(parent)

	r := &Room{
		inbox:   make(chan Msg, 64),
		roster:  game.NewRoster(cfg.RoomKey, cfg.Capacity),
		deck:    game.NewQuestionDeck(cfg.Questions),
		phase:   game.PhaseWaiting,
		sets:    cfg.GameSets,
		clients: make(map[string]chan Event),
		rng:     rng,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}

	go r.loop()
	return r
}

// Inbox exposes the command channel to the transport layer and tests.
func (r *Room) Inbox() chan<- Msg { return r.inbox }

// Done is closed once the session loop has exited; commands sent after that
// are never processed.
func (r *Room) Done() <-chan struct{} { return r.ctx.Done() }

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				r.handleJoin(msg)
			case Leave:
				r.handleLeave(msg.ConnID)
			case SetReady:
				r.handleSetReady(msg)
			case StartQuestions:
				r.handleStartQuestions(msg.ConnID)
			case QuestionReady:
				r.handleQuestionReady(msg.ConnID)
			case VotingReady:
				r.handleVotingReady(msg.ConnID)
			case GetView:
				msg.Reply <- View{
					Phase:      r.phase,
					NumClients: len(r.clients),
					Players:    r.roster.Players(),
					GameSet:    r.gameSet,
					Question:   r.deck.Current(),
				}
			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

func (r *Room) handleJoin(msg Join) {
	err := func() error {
		if r.roster.Has(msg.ConnID) {
			return nil // duplicate join from a seated client
		}
		if r.roster.IsFull() {
			return game.ErrRoomFull
		}
		if r.phase != game.PhaseWaiting {
			return game.ErrGameInProgress
		}
		return r.roster.Join(msg.ConnID, msg.Nickname, msg.RoomKey)
	}()
	if err != nil {
		r.log.Info("join rejected",
			zap.String("conn", msg.ConnID),
			zap.String("nickname", msg.Nickname),
			zap.Error(err))
		// Reply directly: rejected clients are never registered.
		select {
		case msg.Outbox <- JoinError{Reason: joinErrorReason(err)}:
		default:
		}
		return
	}

	r.clients[msg.ConnID] = msg.Outbox
	r.log.Info("player joined",
		zap.String("conn", msg.ConnID),
		zap.String("nickname", msg.Nickname),
		zap.Int("players", r.roster.Size()))

	r.unicast(msg.ConnID, JoinSuccess{})
	r.broadcastRoster()
}

func (r *Room) handleLeave(id string) {
	// The room is the sole sender on a registered outbox; closing it here
	// releases the connection's writer goroutine.
	if ch, ok := r.clients[id]; ok {
		close(ch)
		delete(r.clients, id)
	}
	if !r.roster.Has(id) {
		return
	}
	r.roster.Leave(id)
	r.log.Info("player left", zap.String("conn", id), zap.Int("players", r.roster.Size()))

	// Nothing else is recomputed here; the next ready signal re-derives its
	// tally against the shrunken roster.
	r.broadcastRoster()
}

func (r *Room) handleSetReady(msg SetReady) {
	if r.phase != game.PhaseWaiting {
		r.log.Debug("setReady ignored outside waiting", zap.String("conn", msg.ConnID), zap.String("phase", r.phase.String()))
		return
	}
	if !r.roster.SetReady(msg.ConnID, msg.Ready) {
		r.log.Warn("setReady from unknown player", zap.String("conn", msg.ConnID))
		return
	}

	r.broadcastRoster()

	if r.roster.IsFull() && r.roster.AllReady(waitingReady) {
		r.startRound()
	}
}

// startRound fires the single Waiting -> RoleAssignment transition. Emit
// order is fixed: roster state precedes the phase change, which precedes the
// role unicasts, so no client observes an inconsistent phase/role pairing.
func (r *Room) startRound() {
	r.gameSet = game.PickGameSet(r.sets, r.rng)
	assignments := game.AssignRoles(r.roster, r.rng)
	r.phase = game.PhaseRoleAssignment
	r.log.Info("round started", zap.String("gameSet", r.gameSet), zap.Int("players", len(assignments)))

	r.broadcast(GamePhase{Phase: r.phase})
	r.broadcast(GameSet{Text: r.gameSet})
	for _, a := range assignments {
		r.unicast(a.PlayerID, PlayerRole{Role: a.Role})
	}
}

func (r *Room) handleStartQuestions(id string) {
	if r.phase != game.PhaseRoleAssignment {
		r.log.Debug("startQuestions ignored", zap.String("conn", id), zap.String("phase", r.phase.String()))
		return
	}
	r.deck.Reset()
	r.roster.ResetQuestionReady()
	r.phase = game.PhaseQuestion
	r.log.Info("question phase started", zap.Int("questions", r.deck.Total()))

	r.broadcast(GamePhase{Phase: r.phase})
	r.broadcastCurrentQuestion()
}

func (r *Room) handleQuestionReady(id string) {
	if r.phase != game.PhaseQuestion {
		r.log.Debug("questionReady ignored", zap.String("conn", id), zap.String("phase", r.phase.String()))
		return
	}
	if !r.roster.SetQuestionReady(id) {
		r.log.Warn("questionReady from unknown player", zap.String("conn", id))
		return
	}

	status := r.readyStatus(questionReady)
	r.broadcast(QuestionReadyStatus{ReadyStatus: status})
	if !status.AllReady {
		return
	}

	if r.deck.Advance() {
		r.roster.ResetQuestionReady()
		r.broadcastCurrentQuestion()
		r.broadcast(QuestionReadyStatus{ReadyStatus: r.readyStatus(questionReady)})
		return
	}

	r.phase = game.PhaseVoting
	r.log.Info("questions exhausted, voting phase started")
	r.broadcast(GamePhase{Phase: r.phase})
}

func (r *Room) handleVotingReady(id string) {
	if r.phase != game.PhaseVoting {
		r.log.Debug("votingReady ignored", zap.String("conn", id), zap.String("phase", r.phase.String()))
		return
	}
	if !r.roster.SetVotingReady(id) {
		r.log.Warn("votingReady from unknown player", zap.String("conn", id))
		return
	}

	status := r.readyStatus(votingReady)
	r.broadcast(VotingReadyStatus{ReadyStatus: status})
	if !status.AllReady {
		return
	}

	r.phase = game.PhaseResults
	r.log.Info("voting complete, revealing roles")
	r.broadcast(GamePhase{Phase: r.phase})
	r.broadcast(PlayersWithRoles{Players: r.roleViews()})
}

// readyStatus derives the tally from the live roster. It is never cached:
// a disconnect between two signals must shrink the denominator.
func (r *Room) readyStatus(sel game.Selector) ReadyStatus {
	total := r.roster.Size()
	count := r.roster.ReadyCount(sel)
	return ReadyStatus{
		ReadyCount:   count,
		TotalPlayers: total,
		AllReady:     total > 0 && count == total,
	}
}

func waitingReady(p *game.Player) bool { return p.Ready }

func questionReady(p *game.Player) bool { return p.QuestionReady }

func votingReady(p *game.Player) bool { return p.VotingReady }

func (r *Room) broadcastRoster() {
	r.broadcast(Players{Players: r.playerViews()})
	r.broadcast(r.gameInfo())
}

func (r *Room) broadcastCurrentQuestion() {
	q := r.deck.Current()
	r.broadcast(CurrentQuestion{Question: q.Text, Number: q.Number, Total: q.Total})
}

func (r *Room) gameInfo() GameInfo {
	return GameInfo{
		PlayersCount: r.roster.Size(),
		MaxPlayers:   r.roster.Capacity(),
		RoomKey:      r.roster.RoomKey(),
		CanStart:     r.roster.IsFull() && r.roster.AllReady(waitingReady),
		RoomFull:     r.roster.IsFull(),
		AllReady:     r.roster.AllReady(waitingReady),
	}
}

func (r *Room) playerViews() []PlayerView {
	players := r.roster.Players()
	views := make([]PlayerView, 0, len(players))
	for _, p := range players {
		views = append(views, PlayerView{ID: p.ID, Nickname: p.Nickname, Ready: p.Ready})
	}
	return views
}

func (r *Room) roleViews() []PlayerRoleView {
	players := r.roster.Players()
	views := make([]PlayerRoleView, 0, len(players))
	for _, p := range players {
		views = append(views, PlayerRoleView{ID: p.ID, Nickname: p.Nickname, Role: p.Role})
	}
	return views
}

func (r *Room) broadcast(ev Event) {
	dropped := false
	for id, ch := range r.clients {
		select {
		case ch <- ev:
			// ok
		default:
			// Client is slow/full: drop it and free its seat.
			r.log.Warn("dropping slow client", zap.String("conn", id))
			close(ch)
			delete(r.clients, id)
			r.roster.Leave(id)
			dropped = true
		}
	}
	if dropped {
		// Survivors must not render the dropped player. Recursion terminates:
		// every drop strictly shrinks the client set.
		r.broadcastRoster()
	}
}

func (r *Room) unicast(id string, ev Event) {
	ch, ok := r.clients[id]
	if !ok {
		return
	}
	select {
	case ch <- ev:
	default:
		r.log.Warn("dropping slow client", zap.String("conn", id))
		close(ch)
		delete(r.clients, id)
		r.roster.Leave(id)
		r.broadcastRoster()
	}
}

func (r *Room) shutdown() {
	for id, ch := range r.clients {
		close(ch)
		delete(r.clients, id)
	}
	r.cancel()
}

func joinErrorReason(err error) string {
	switch {
	case errors.Is(err, game.ErrBadKey):
		return "invalid room key"
	case errors.Is(err, game.ErrRoomFull):
		return "room is full"
	case errors.Is(err, game.ErrBadNickname):
		return "nickname must be 1-20 printable characters"
	case errors.Is(err, game.ErrGameInProgress):
		return "game already in progress"
	default:
		return "unable to join"
	}
}
