package room

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	roomRepo "github.com/swipemood/server/internal/repository/room"
)

const roomCodeLength = 6

type CreateRoomParams struct {
	RoomCode  string
	AdminName string
}

type CreateRoomResponse struct {
	RoomCode string
}

// CreateRoom creates the durable room record. The code is taken from the
// request when provided and generated otherwise. A code is reusable only once
// the previous room's record is gone; while it remains, creation fails.
func (s service) CreateRoom(ctx context.Context, params *CreateRoomParams) (CreateRoomResponse, error) {
	roomCode := normalizeRoomCode(params.RoomCode)
	if roomCode == "" {
		roomCode = s.generator.GenerateRandomString(roomCodeLength)
	}

	if err := s.roomRepo.CreateRoom(ctx, &roomRepo.CreateRoomParams{
		Code:      roomCode,
		AdminName: params.AdminName,
		CreatedAt: time.Now().Unix(),
	}); err != nil {
		return CreateRoomResponse{}, fmt.Errorf("failed to create room: %w", mapRoomRepoError(err))
	}

	return CreateRoomResponse{RoomCode: roomCode}, nil
}

func (s service) GetRoom(ctx context.Context, roomCode string) (Room, error) {
	rm, err := s.roomRepo.GetRoom(ctx, normalizeRoomCode(roomCode))
	if err != nil {
		return Room{}, fmt.Errorf("failed to get room: %w", mapRoomRepoError(err))
	}

	return Room{
		RoomCode:   rm.Code,
		Roster:     buildRoster(rm),
		Tracks:     buildTracks(rm),
		NowPlaying: rm.NowPlaying,
	}, nil
}

type AddTrackParams struct {
	RoomCode   string
	Title      string
	Path       string
	UploadedBy string
}

func (s service) AddTrack(ctx context.Context, params *AddTrackParams) error {
	if err := s.roomRepo.AddTrack(ctx, &roomRepo.AddTrackParams{
		Code:       normalizeRoomCode(params.RoomCode),
		Title:      params.Title,
		Path:       params.Path,
		UploadedBy: params.UploadedBy,
	}); err != nil {
		return fmt.Errorf("failed to add track: %w", mapRoomRepoError(err))
	}

	return nil
}

type CloseRoomParams struct {
	Conn     *websocket.Conn
	RoomCode string
}

type CloseRoomResponse struct {
	Conns []*websocket.Conn
}

// CloseRoom tears the room down: durable record first, then the ephemeral
// caches. The returned conns cover every session still registered for the
// code, the closer included, so all clients observe the closure uniformly.
// Sessions are not force-unregistered here; each one is reclaimed through its
// own disconnect path.
func (s service) CloseRoom(ctx context.Context, params *CloseRoomParams) (CloseRoomResponse, error) {
	roomCode := normalizeRoomCode(params.RoomCode)

	sess, err := s.sessionRepo.GetByConn(params.Conn)
	if err != nil || sess.RoomCode != roomCode {
		return CloseRoomResponse{}, ErrNotInRoom
	}

	rm, err := s.roomRepo.GetRoom(ctx, roomCode)
	if err != nil {
		return CloseRoomResponse{}, fmt.Errorf("failed to get room: %w", mapRoomRepoError(err))
	}

	if sess.DisplayName != rm.AdminName {
		return CloseRoomResponse{}, ErrPermissionDenied
	}

	conns, err := s.removeRoom(ctx, roomCode)
	if err != nil {
		return CloseRoomResponse{}, err
	}

	return CloseRoomResponse{Conns: conns}, nil
}

type RemoveRoomResponse struct {
	Conns []*websocket.Conn
}

// RemoveRoom is the thin deletion path behind the REST surface. It fails if
// the room is already gone, matching the directory endpoint's contract.
func (s service) RemoveRoom(ctx context.Context, roomCode string) (RemoveRoomResponse, error) {
	roomCode = normalizeRoomCode(roomCode)

	if _, err := s.roomRepo.GetRoom(ctx, roomCode); err != nil {
		return RemoveRoomResponse{}, fmt.Errorf("failed to get room: %w", mapRoomRepoError(err))
	}

	conns, err := s.removeRoom(ctx, roomCode)
	if err != nil {
		return RemoveRoomResponse{}, err
	}

	return RemoveRoomResponse{Conns: conns}, nil
}

func (s service) removeRoom(ctx context.Context, roomCode string) ([]*websocket.Conn, error) {
	// Deletion is idempotent: a concurrent closer winning the race is fine.
	if err := s.roomRepo.RemoveRoom(ctx, roomCode); err != nil {
		return nil, fmt.Errorf("failed to remove room: %w", err)
	}

	s.playbackRepo.Remove(roomCode)
	s.chatRepo.Remove(roomCode)

	return s.sessionRepo.GetRoomConns(roomCode), nil
}
