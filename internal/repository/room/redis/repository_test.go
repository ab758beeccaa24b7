package redis

import (
	"context"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swipemood/server/internal/repository/room"
)

func newTestRepo(t *testing.T) *repo {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	rc := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})

	return NewRepo(rc, slog.Default())
}

func TestCreateRoomDuplicate(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	err := r.CreateRoom(ctx, &room.CreateRoomParams{Code: "ABC123", AdminName: "alice", CreatedAt: 1})
	require.NoError(t, err)

	err = r.CreateRoom(ctx, &room.CreateRoomParams{Code: "ABC123", AdminName: "mallory", CreatedAt: 2})
	require.ErrorIs(t, err, room.ErrRoomAlreadyExists)

	rm, err := r.GetRoom(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, "alice", rm.AdminName, "the losing create must not overwrite the admin")
	assert.Equal(t, int64(1), rm.CreatedAt, "the losing create must not touch any field")
}

func TestGetRoomNotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.GetRoom(context.Background(), "MISSING")
	require.ErrorIs(t, err, room.ErrRoomNotFound)
}

func TestAddMemberIdempotent(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateRoom(ctx, &room.CreateRoomParams{Code: "ABC123", AdminName: "alice", CreatedAt: 1}))

	require.NoError(t, r.AddMember(ctx, &room.AddMemberParams{Code: "ABC123", MemberName: "bob"}))
	require.NoError(t, r.AddMember(ctx, &room.AddMemberParams{Code: "ABC123", MemberName: "bob"}))

	rm, err := r.GetRoom(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, rm.MemberNames)
}

func TestAddMemberNeverInsertsAdmin(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateRoom(ctx, &room.CreateRoomParams{Code: "ABC123", AdminName: "alice", CreatedAt: 1}))
	require.NoError(t, r.AddMember(ctx, &room.AddMemberParams{Code: "ABC123", MemberName: "alice"}))

	rm, err := r.GetRoom(ctx, "ABC123")
	require.NoError(t, err)
	assert.Empty(t, rm.MemberNames)
}

func TestAddMemberRoomNotFound(t *testing.T) {
	r := newTestRepo(t)

	err := r.AddMember(context.Background(), &room.AddMemberParams{Code: "MISSING", MemberName: "bob"})
	require.ErrorIs(t, err, room.ErrRoomNotFound)
}

func TestRemoveRoomIdempotent(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateRoom(ctx, &room.CreateRoomParams{Code: "ABC123", AdminName: "alice", CreatedAt: 1}))
	require.NoError(t, r.AddMember(ctx, &room.AddMemberParams{Code: "ABC123", MemberName: "bob"}))

	require.NoError(t, r.RemoveRoom(ctx, "ABC123"))
	require.NoError(t, r.RemoveRoom(ctx, "ABC123"), "removing an absent room must succeed")

	_, err := r.GetRoom(ctx, "ABC123")
	require.ErrorIs(t, err, room.ErrRoomNotFound)
}

func TestRemoveRoomLeavesNoResidue(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateRoom(ctx, &room.CreateRoomParams{Code: "ABC123", AdminName: "alice", CreatedAt: 1}))
	require.NoError(t, r.AddMember(ctx, &room.AddMemberParams{Code: "ABC123", MemberName: "bob"}))
	require.NoError(t, r.AddTrack(ctx, &room.AddTrackParams{Code: "ABC123", Title: "one", Path: "/tracks/1.mp3", UploadedBy: "alice"}))
	require.NoError(t, r.SetNowPlaying(ctx, &room.SetNowPlayingParams{Code: "ABC123", Locator: "clip-9"}))

	require.NoError(t, r.RemoveRoom(ctx, "ABC123"))

	// Writes after removal must fail cleanly instead of recreating any key.
	require.ErrorIs(t, r.SetNowPlaying(ctx, &room.SetNowPlayingParams{Code: "ABC123", Locator: "clip-10"}), room.ErrRoomNotFound)
	require.ErrorIs(t, r.AddTrack(ctx, &room.AddTrackParams{Code: "ABC123", Title: "two"}), room.ErrRoomNotFound)
	require.ErrorIs(t, r.AddMember(ctx, &room.AddMemberParams{Code: "ABC123", MemberName: "carol"}), room.ErrRoomNotFound)
	_, err := r.GetRoom(ctx, "ABC123")
	require.ErrorIs(t, err, room.ErrRoomNotFound)

	// Reusing the code starts from a blank slate, with no inherited state.
	require.NoError(t, r.CreateRoom(ctx, &room.CreateRoomParams{Code: "ABC123", AdminName: "carol", CreatedAt: 2}))

	rm, err := r.GetRoom(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, "carol", rm.AdminName)
	assert.Equal(t, int64(2), rm.CreatedAt)
	assert.Empty(t, rm.MemberNames)
	assert.Empty(t, rm.Tracks)
	assert.Empty(t, rm.NowPlaying)
}

func TestSetNowPlaying(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	err := r.SetNowPlaying(ctx, &room.SetNowPlayingParams{Code: "MISSING", Locator: "clip-9"})
	require.ErrorIs(t, err, room.ErrRoomNotFound)

	require.NoError(t, r.CreateRoom(ctx, &room.CreateRoomParams{Code: "ABC123", AdminName: "alice", CreatedAt: 1}))
	require.NoError(t, r.SetNowPlaying(ctx, &room.SetNowPlayingParams{Code: "ABC123", Locator: "clip-9"}))

	rm, err := r.GetRoom(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, "clip-9", rm.NowPlaying)
}

func TestTracks(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	err := r.AddTrack(ctx, &room.AddTrackParams{Code: "MISSING", Title: "t"})
	require.ErrorIs(t, err, room.ErrRoomNotFound)

	require.NoError(t, r.CreateRoom(ctx, &room.CreateRoomParams{Code: "ABC123", AdminName: "alice", CreatedAt: 1}))
	require.NoError(t, r.AddTrack(ctx, &room.AddTrackParams{Code: "ABC123", Title: "one", Path: "/tracks/1.mp3", UploadedBy: "alice"}))
	require.NoError(t, r.AddTrack(ctx, &room.AddTrackParams{Code: "ABC123", Title: "two", Path: "/tracks/2.mp3", UploadedBy: "bob"}))

	rm, err := r.GetRoom(ctx, "ABC123")
	require.NoError(t, err)
	require.Len(t, rm.Tracks, 2)
	assert.Equal(t, room.Track{Title: "one", Path: "/tracks/1.mp3", UploadedBy: "alice"}, rm.Tracks[0])
	assert.Equal(t, room.Track{Title: "two", Path: "/tracks/2.mp3", UploadedBy: "bob"}, rm.Tracks[1])
}
