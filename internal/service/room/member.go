package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	roomRepo "github.com/swipemood/server/internal/repository/room"
	"github.com/swipemood/server/internal/repository/session"
)

type JoinRoomParams struct {
	Conn        *websocket.Conn
	RoomCode    string
	DisplayName string
}

type JoinRoomResponse struct {
	Session     session.Session
	Role        string
	Roster      []RosterEntry
	Conns       []*websocket.Conn
	Playback    *string
	ChatHistory []ChatMessage
}

// JoinRoom admits a session into a room. The session is registered before the
// directory lookup so it is reachable for broadcasts while the lookup is in
// flight; on any failure it is unregistered again. Durable and ephemeral
// state may change underneath the directory calls, so existence is rechecked
// after each one.
func (s service) JoinRoom(ctx context.Context, params *JoinRoomParams) (JoinRoomResponse, error) {
	roomCode := normalizeRoomCode(params.RoomCode)

	sess := session.Session{
		Id:          uuid.NewString(),
		RoomCode:    roomCode,
		DisplayName: params.DisplayName,
	}
	if err := s.sessionRepo.Add(params.Conn, sess); err != nil {
		return JoinRoomResponse{}, fmt.Errorf("failed to register session: %w", err)
	}

	rm, err := s.roomRepo.GetRoom(ctx, roomCode)
	if err != nil {
		s.sessionRepo.RemoveByConn(params.Conn)
		return JoinRoomResponse{}, fmt.Errorf("failed to get room: %w", mapRoomRepoError(err))
	}

	role := RoleAdmin
	if params.DisplayName != rm.AdminName {
		role = RoleMember
		// The directory owns the at-most-once guarantee: a second concurrent
		// insertion of the same name collapses into a single entry.
		if err := s.roomRepo.AddMember(ctx, &roomRepo.AddMemberParams{
			Code:       roomCode,
			MemberName: params.DisplayName,
		}); err != nil {
			s.sessionRepo.RemoveByConn(params.Conn)
			return JoinRoomResponse{}, fmt.Errorf("failed to add member: %w", mapRoomRepoError(err))
		}
	}

	// Refetch so the roster reflects the insertion, and recheck that the room
	// survived the directory calls. A failed fetch must abort before the
	// broadcast: a stale or partial roster is never sent.
	rm, err = s.roomRepo.GetRoom(ctx, roomCode)
	if err != nil {
		s.sessionRepo.RemoveByConn(params.Conn)
		return JoinRoomResponse{}, fmt.Errorf("failed to get room: %w", mapRoomRepoError(err))
	}

	resp := JoinRoomResponse{
		Session:     sess,
		Role:        role,
		Roster:      buildRoster(rm),
		Conns:       s.sessionRepo.GetRoomConns(roomCode),
		ChatHistory: buildChatMessages(s.chatRepo.List(roomCode)),
	}

	if locator, ok := s.playbackRepo.Get(roomCode); ok {
		resp.Playback = &locator
	}

	return resp, nil
}

type DisconnectSessionResponse struct {
	Session session.Session
}

// DisconnectSession reclaims a session on transport close. Disconnects are
// not errors; an unknown connection simply was never admitted or is already
// gone.
func (s service) DisconnectSession(ctx context.Context, conn *websocket.Conn) (DisconnectSessionResponse, error) {
	sess, err := s.sessionRepo.RemoveByConn(conn)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return DisconnectSessionResponse{}, nil
		}
		return DisconnectSessionResponse{}, err
	}

	return DisconnectSessionResponse{Session: sess}, nil
}
