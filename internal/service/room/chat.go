package room

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/swipemood/server/internal/repository/chat"
)

type PostMessageParams struct {
	Conn     *websocket.Conn
	RoomCode string
	Text     string
}

type PostMessageResponse struct {
	Message ChatMessage
	Conns   []*websocket.Conn
}

// PostMessage appends to the room's chat log and returns the conns to fan the
// record out to. Unlike playback, the originator is included: the sender's UI
// reflects the authoritative ordering instead of trusting local echo.
func (s service) PostMessage(ctx context.Context, params *PostMessageParams) (PostMessageResponse, error) {
	roomCode := normalizeRoomCode(params.RoomCode)

	sess, err := s.sessionRepo.GetByConn(params.Conn)
	if err != nil || sess.RoomCode != roomCode {
		return PostMessageResponse{}, ErrNotInRoom
	}

	// Posting to a closed room fails like any other operation on it.
	if _, err := s.roomRepo.GetRoom(ctx, roomCode); err != nil {
		return PostMessageResponse{}, fmt.Errorf("failed to get room: %w", mapRoomRepoError(err))
	}

	message := chat.Message{
		SenderName: sess.DisplayName,
		Text:       params.Text,
		Timestamp:  time.Now().UnixMilli(),
	}
	s.chatRepo.Append(roomCode, message)

	return PostMessageResponse{
		Message: ChatMessage{
			SenderName: message.SenderName,
			Text:       message.Text,
			Timestamp:  message.Timestamp,
		},
		Conns: s.sessionRepo.GetRoomConns(roomCode),
	}, nil
}
