package httpapi

import (
	"encoding/json"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/infectedparty/backend/internal/config"
	"github.com/infectedparty/backend/internal/room"
)

// RoomInfo reports the public room facts for a landing page. The room key is
// deliberately absent; it travels via the join link or word of mouth.
func RoomInfo(cfg *config.Config, rm *room.Room) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan room.View, 1)
		rm.Inbox() <- room.GetView{Reply: reply}

		var view room.View
		select {
		case view = <-reply:
		case <-rm.Done():
			http.Error(w, "room is shut down", http.StatusServiceUnavailable)
			return
		case <-r.Context().Done():
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			Phase      string `json:"phase"`
			Players    int    `json:"players"`
			MaxPlayers int    `json:"maxPlayers"`
		}{
			Phase:      view.Phase.String(),
			Players:    len(view.Players),
			MaxPlayers: cfg.Capacity,
		})
	}
}

// JoinQR serves a PNG QR code of the join URL, room key included, so players
// at the table can scan straight in.
func JoinQR(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		png, err := qrcode.Encode(cfg.JoinURL(), qrcode.Medium, 256)
		if err != nil {
			http.Error(w, "failed to generate qr code", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
