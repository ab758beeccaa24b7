package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/swipemood/server/internal/service/room"
	"github.com/swipemood/server/pkg/validator"
	"github.com/swipemood/server/pkg/wsrouter"
)

type iRoomService interface {
	CreateRoom(context.Context, *room.CreateRoomParams) (room.CreateRoomResponse, error)
	GetRoom(context.Context, string) (room.Room, error)
	AddTrack(context.Context, *room.AddTrackParams) error
	RemoveRoom(context.Context, string) (room.RemoveRoomResponse, error)
	JoinRoom(context.Context, *room.JoinRoomParams) (room.JoinRoomResponse, error)
	SetPlayback(context.Context, *room.SetPlaybackParams) (room.SetPlaybackResponse, error)
	PostMessage(context.Context, *room.PostMessageParams) (room.PostMessageResponse, error)
	CloseRoom(context.Context, *room.CloseRoomParams) (room.CloseRoomResponse, error)
	DisconnectSession(context.Context, *websocket.Conn) (room.DisconnectSessionResponse, error)
}

type controller struct {
	roomService iRoomService
	upgrader    websocket.Upgrader
	validate    *validator.Validator
	wsmux       *wsrouter.WSRouter
	logger      *slog.Logger
}

func NewController(roomService iRoomService, logger *slog.Logger) *controller {
	c := &controller{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		roomService: roomService,
		validate:    validator.NewValidator(),
		logger:      logger,
	}
	c.wsmux = c.getWSRouter()

	return c
}
