package room

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/swipemood/server/internal/repository/chat"
	roomRepo "github.com/swipemood/server/internal/repository/room"
	"github.com/swipemood/server/internal/repository/session"
	"github.com/swipemood/server/pkg/randstr"
)

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomAlreadyExists = errors.New("room already exists")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrNotInRoom         = errors.New("session has not joined this room")
)

type iRoomRepo interface {
	CreateRoom(context.Context, *roomRepo.CreateRoomParams) error
	GetRoom(context.Context, string) (roomRepo.Room, error)
	AddMember(context.Context, *roomRepo.AddMemberParams) error
	RemoveRoom(context.Context, string) error
	SetNowPlaying(context.Context, *roomRepo.SetNowPlayingParams) error
	AddTrack(context.Context, *roomRepo.AddTrackParams) error
}

type iSessionRepo interface {
	Add(*websocket.Conn, session.Session) error
	RemoveByConn(*websocket.Conn) (session.Session, error)
	GetByConn(*websocket.Conn) (session.Session, error)
	GetRoomConns(string) []*websocket.Conn
	GetRoomSessions(string) []session.Session
}

type iPlaybackRepo interface {
	Set(roomCode, locator string)
	Get(roomCode string) (string, bool)
	Remove(roomCode string)
}

type iChatRepo interface {
	Append(roomCode string, message chat.Message)
	List(roomCode string) []chat.Message
	Remove(roomCode string)
}

type iGenerator interface {
	GenerateRandomString(length int) string
}

type service struct {
	roomRepo     iRoomRepo
	sessionRepo  iSessionRepo
	playbackRepo iPlaybackRepo
	chatRepo     iChatRepo
	generator    iGenerator
	logger       *slog.Logger
}

func NewService(roomRepo iRoomRepo, sessionRepo iSessionRepo, playbackRepo iPlaybackRepo, chatRepo iChatRepo, logger *slog.Logger) *service {
	s := service{
		roomRepo:     roomRepo,
		sessionRepo:  sessionRepo,
		playbackRepo: playbackRepo,
		chatRepo:     chatRepo,
		logger:       logger,
	}

	letterBytes := []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	s.generator = randstr.New(letterBytes)

	return &s
}

// Room codes are case-normalized at the boundary so "abc123" and "ABC123"
// address the same room.
func normalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func mapRoomRepoError(err error) error {
	switch {
	case errors.Is(err, roomRepo.ErrRoomNotFound):
		return ErrRoomNotFound
	case errors.Is(err, roomRepo.ErrRoomAlreadyExists):
		return ErrRoomAlreadyExists
	default:
		return err
	}
}
