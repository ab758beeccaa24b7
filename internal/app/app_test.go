package app

import (
	"context"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatInmemory "github.com/swipemood/server/internal/repository/chat/inmemory"
	playbackInmemory "github.com/swipemood/server/internal/repository/playback/inmemory"
	roomRedis "github.com/swipemood/server/internal/repository/room/redis"
	sessionInmemory "github.com/swipemood/server/internal/repository/session/inmemory"
	"github.com/swipemood/server/internal/service/room"
)

// Full room lifecycle: alice creates and joins, bob joins, alice plays a
// clip, bob chats, alice closes, carol is refused.
func TestRoomLifecycle(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	r := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})

	roomRepo := roomRedis.NewRepo(r, slog.Default())
	sessionRepo := sessionInmemory.NewRepo(slog.Default())
	playbackRepo := playbackInmemory.NewRepo()
	chatRepo := chatInmemory.NewRepo()
	service := room.NewService(roomRepo, sessionRepo, playbackRepo, chatRepo, slog.Default())

	ctx := context.Background()

	// alice creates the room
	createRoomResp, err := service.CreateRoom(ctx, &room.CreateRoomParams{
		RoomCode:  "ABC123",
		AdminName: "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "ABC123", createRoomResp.RoomCode)
	t.Log("room created")

	// alice joins as admin
	aliceConn := &websocket.Conn{}
	aliceJoinResp, err := service.JoinRoom(ctx, &room.JoinRoomParams{
		Conn:        aliceConn,
		RoomCode:    "ABC123",
		DisplayName: "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, room.RoleAdmin, aliceJoinResp.Role)
	t.Log("alice joined")

	// bob joins as member
	bobConn := &websocket.Conn{}
	bobJoinResp, err := service.JoinRoom(ctx, &room.JoinRoomParams{
		Conn:        bobConn,
		RoomCode:    "ABC123",
		DisplayName: "bob",
	})
	require.NoError(t, err)
	assert.Equal(t, room.RoleMember, bobJoinResp.Role)
	assert.Equal(t, []room.RosterEntry{
		{Name: "alice", Role: room.RoleAdmin},
		{Name: "bob", Role: room.RoleMember},
	}, bobJoinResp.Roster)
	assert.Len(t, bobJoinResp.Conns, 2)
	t.Log("bob joined")

	// alice plays clip-9: bob receives it, alice does not
	setPlaybackResp, err := service.SetPlayback(ctx, &room.SetPlaybackParams{
		Conn:     aliceConn,
		RoomCode: "ABC123",
		Locator:  "clip-9",
	})
	require.NoError(t, err)
	assert.Equal(t, "clip-9", setPlaybackResp.Locator)
	assert.Equal(t, []*websocket.Conn{bobConn}, setPlaybackResp.Conns)
	t.Log("playback set")

	// bob posts "hi": both alice and bob receive it, sender included
	postMessageResp, err := service.PostMessage(ctx, &room.PostMessageParams{
		Conn:     bobConn,
		RoomCode: "ABC123",
		Text:     "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", postMessageResp.Message.SenderName)
	assert.Len(t, postMessageResp.Conns, 2)
	assert.Contains(t, postMessageResp.Conns, bobConn)
	t.Log("message posted")

	// alice closes the room: both are notified
	closeRoomResp, err := service.CloseRoom(ctx, &room.CloseRoomParams{
		Conn:     aliceConn,
		RoomCode: "ABC123",
	})
	require.NoError(t, err)
	assert.Len(t, closeRoomResp.Conns, 2)
	t.Log("room closed")

	// carol joining afterwards is refused
	_, err = service.JoinRoom(ctx, &room.JoinRoomParams{
		Conn:        &websocket.Conn{},
		RoomCode:    "ABC123",
		DisplayName: "carol",
	})
	require.ErrorIs(t, err, room.ErrRoomNotFound)
	t.Log("carol refused")
}
