package room

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	roomRepo "github.com/swipemood/server/internal/repository/room"
)

type SetPlaybackParams struct {
	Conn     *websocket.Conn
	RoomCode string
	Locator  string
}

type SetPlaybackResponse struct {
	Locator string
	Conns   []*websocket.Conn
}

// SetPlayback stores the room's current playback locator and returns the
// conns to fan it out to. The originator is excluded: it already has the
// value it just sent. Late joiners receive the stored value as unicast
// catch-up in JoinRoom. Only the room's admin may set playback.
func (s service) SetPlayback(ctx context.Context, params *SetPlaybackParams) (SetPlaybackResponse, error) {
	roomCode := normalizeRoomCode(params.RoomCode)

	sess, err := s.sessionRepo.GetByConn(params.Conn)
	if err != nil || sess.RoomCode != roomCode {
		return SetPlaybackResponse{}, ErrNotInRoom
	}

	rm, err := s.roomRepo.GetRoom(ctx, roomCode)
	if err != nil {
		return SetPlaybackResponse{}, fmt.Errorf("failed to get room: %w", mapRoomRepoError(err))
	}

	if sess.DisplayName != rm.AdminName {
		return SetPlaybackResponse{}, ErrPermissionDenied
	}

	// Persist the legacy nowPlaying snapshot first; if the room vanished
	// underneath us this aborts before any ephemeral mutation or broadcast.
	if err := s.roomRepo.SetNowPlaying(ctx, &roomRepo.SetNowPlayingParams{
		Code:    roomCode,
		Locator: params.Locator,
	}); err != nil {
		return SetPlaybackResponse{}, fmt.Errorf("failed to set now playing: %w", mapRoomRepoError(err))
	}

	s.playbackRepo.Set(roomCode, params.Locator)

	return SetPlaybackResponse{
		Locator: params.Locator,
		Conns:   connsExcept(s.sessionRepo.GetRoomConns(roomCode), params.Conn),
	}, nil
}
