package controller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/swipemood/server/internal/service/room"
	"github.com/swipemood/server/pkg/ctxlogger"
)

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type JoinRoomInput struct {
	RoomCode    string `json:"roomCode" validate:"required,max=32"`
	DisplayName string `json:"displayName" validate:"required,max=32"`
}

func (c controller) handleJoinRoom(ctx context.Context, conn *websocket.Conn, input JoinRoomInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("invalid payload: %v", validationErrors)
	}

	joinRoomResp, err := c.roomService.JoinRoom(ctx, &room.JoinRoomParams{
		Conn:        conn,
		RoomCode:    input.RoomCode,
		DisplayName: input.DisplayName,
	})
	if err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}

	ctx = ctxlogger.AppendCtx(ctx, slog.String("room_code", joinRoomResp.Session.RoomCode))
	c.logger.InfoContext(ctx, "session joined",
		"session_id", joinRoomResp.Session.Id,
		"display_name", joinRoomResp.Session.DisplayName,
		"role", joinRoomResp.Role,
	)

	c.broadcast(ctx, joinRoomResp.Conns, &Output{
		Type:    "user-joined",
		Payload: joinRoomResp.Roster,
	})

	// Catch-up is unicast to the joiner alone, never broadcast.
	if joinRoomResp.Playback != nil {
		c.writeToConn(ctx, conn, &Output{
			Type:    "sync-video",
			Payload: *joinRoomResp.Playback,
		})
	}
	c.writeToConn(ctx, conn, &Output{
		Type:    "chat-history",
		Payload: joinRoomResp.ChatHistory,
	})

	return nil
}

type PlayVideoInput struct {
	RoomCode string `json:"roomCode" validate:"required,max=32"`
	Locator  string `json:"locator" validate:"required"`
}

func (c controller) handlePlayVideo(ctx context.Context, conn *websocket.Conn, input PlayVideoInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("invalid payload: %v", validationErrors)
	}

	setPlaybackResp, err := c.roomService.SetPlayback(ctx, &room.SetPlaybackParams{
		Conn:     conn,
		RoomCode: input.RoomCode,
		Locator:  input.Locator,
	})
	if err != nil {
		return fmt.Errorf("failed to set playback: %w", err)
	}

	c.broadcast(ctx, setPlaybackResp.Conns, &Output{
		Type:    "sync-video",
		Payload: setPlaybackResp.Locator,
	})

	return nil
}

type ChatMessageInput struct {
	RoomCode string `json:"roomCode" validate:"required,max=32"`
	Message  string `json:"message" validate:"required,max=2000"`
}

func (c controller) handleChatMessage(ctx context.Context, conn *websocket.Conn, input ChatMessageInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("invalid payload: %v", validationErrors)
	}

	postMessageResp, err := c.roomService.PostMessage(ctx, &room.PostMessageParams{
		Conn:     conn,
		RoomCode: input.RoomCode,
		Text:     input.Message,
	})
	if err != nil {
		return fmt.Errorf("failed to post message: %w", err)
	}

	c.broadcast(ctx, postMessageResp.Conns, &Output{
		Type:    "chat-message",
		Payload: postMessageResp.Message,
	})

	return nil
}

type CloseRoomInput struct {
	RoomCode string `json:"roomCode" validate:"required,max=32"`
}

func (c controller) handleCloseRoom(ctx context.Context, conn *websocket.Conn, input CloseRoomInput) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("invalid payload: %v", validationErrors)
	}

	closeRoomResp, err := c.roomService.CloseRoom(ctx, &room.CloseRoomParams{
		Conn:     conn,
		RoomCode: input.RoomCode,
	})
	if err != nil {
		return fmt.Errorf("failed to close room: %w", err)
	}

	// No exclusion: the closer is notified too, so every client reacts the
	// same way.
	c.broadcast(ctx, closeRoomResp.Conns, &Output{
		Type: "room-closed",
	})

	return nil
}
