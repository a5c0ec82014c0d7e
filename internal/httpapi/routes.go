package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/infectedparty/backend/internal/config"
	"github.com/infectedparty/backend/internal/room"
	"github.com/infectedparty/backend/internal/ws"
)

func SetupRoutes(rm *room.Room, cfg *config.Config, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", Healthz)
	r.Get("/info", RoomInfo(cfg, rm))
	r.Get("/join/qr.png", JoinQR(cfg))
	r.Get("/ws", ws.Handler(rm, log))
	return r
}
