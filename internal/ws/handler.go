package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/infectedparty/backend/internal/room"
	"github.com/infectedparty/backend/internal/types"
)

const writeTimeout = 3 * time.Second

// Handler upgrades a client connection and pumps events between it and the
// room session. Each connection gets a fresh id and a buffered outbox; the
// outbox is only registered with the room once the client joins.
func Handler(rm *room.Room, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		connID := uuid.NewString()
		out := make(chan room.Event, 16)
		log.Info("client connected", zap.String("conn", connID))

		// A leave for a client that never joined is a no-op in the room.
		defer func() {
			rm.Inbox() <- room.Leave{ConnID: connID}
			log.Info("client disconnected", zap.String("conn", connID))
		}()

		// Writer goroutine: drains the outbox until the room closes it.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for {
				select {
				case <-writeCtx.Done():
					// Covers connections that never joined: the room only
					// closes outboxes it has registered.
					return
				case ev, ok := <-out:
					if !ok {
						return
					}
					payload, err := json.Marshal(types.ServerMessage{Type: ev.Name(), Data: ev.Payload()})
					if err != nil {
						log.Error("encode event", zap.String("event", ev.Name()), zap.Error(err))
						continue
					}
					ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
					_ = conn.Write(ctx, websocket.MessageText, payload)
					cancel()
				}
			}
		}()

		// Reader loop. No read deadline: players idle for minutes between
		// phases while waiting on each other.
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				log.Warn("bad client payload", zap.String("conn", connID), zap.Error(err))
				continue
			}

			msg, ok := toRoomMsg(cm, connID, out)
			if !ok {
				log.Warn("unknown client message", zap.String("conn", connID), zap.String("type", cm.Type))
				continue
			}

			rm.Inbox() <- msg
		}
	}
}

func toRoomMsg(m types.ClientMessage, connID string, out chan room.Event) (room.Msg, bool) {
	switch m.Type {
	case "join":
		return room.Join{ConnID: connID, Nickname: m.Nickname, RoomKey: m.RoomKey, Outbox: out}, true
	case "setReady":
		return room.SetReady{ConnID: connID, Ready: m.Ready}, true
	case "startQuestions":
		return room.StartQuestions{ConnID: connID}, true
	case "questionReady":
		return room.QuestionReady{ConnID: connID}, true
	case "votingReady":
		return room.VotingReady{ConnID: connID}, true
	default:
		return nil, false
	}
}
