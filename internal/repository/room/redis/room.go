package redis

import (
	"context"

	"github.com/swipemood/server/internal/repository/room"
)

func (r repo) CreateRoom(ctx context.Context, params *room.CreateRoomParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)

	// Uniqueness check and hash creation are one script: two racing creates
	// with the same code resolve to exactly one winner, and the losing write
	// cannot leave a partial hash behind.
	res, err := createRoomScript.Run(ctx, r.rc,
		[]string{r.getRoomKey(params.Code)},
		params.AdminName, params.CreatedAt,
	).Int()
	if err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return err
	}

	if res == 0 {
		r.logger.DebugContext(ctx, "returned", "error", room.ErrRoomAlreadyExists)
		return room.ErrRoomAlreadyExists
	}

	return nil
}

func (r repo) GetRoom(ctx context.Context, code string) (room.Room, error) {
	r.logger.DebugContext(ctx, "called", "code", code)

	fields, err := r.rc.HGetAll(ctx, r.getRoomKey(code)).Result()
	if err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return room.Room{}, err
	}
	if len(fields) == 0 {
		r.logger.DebugContext(ctx, "returned", "error", room.ErrRoomNotFound)
		return room.Room{}, room.ErrRoomNotFound
	}

	memberNames, err := r.rc.SMembers(ctx, r.getMemberSetKey(code)).Result()
	if err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return room.Room{}, err
	}

	tracks, err := r.getTracks(ctx, code)
	if err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return room.Room{}, err
	}

	return room.Room{
		Code:        code,
		AdminName:   fields["admin_name"],
		CreatedAt:   r.fieldToInt64(fields["created_at"]),
		NowPlaying:  fields["now_playing"],
		MemberNames: memberNames,
		Tracks:      tracks,
	}, nil
}

// RemoveRoom deletes the room record and its substructures. Removing an
// absent room is not an error, so racing closers both succeed.
func (r repo) RemoveRoom(ctx context.Context, code string) error {
	r.logger.DebugContext(ctx, "called", "code", code)

	if err := r.rc.Del(ctx,
		r.getRoomKey(code),
		r.getMemberSetKey(code),
		r.getTrackListKey(code),
	).Err(); err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return err
	}

	return nil
}

func (r repo) SetNowPlaying(ctx context.Context, params *room.SetNowPlayingParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)

	res, err := setNowPlayingScript.Run(ctx, r.rc,
		[]string{r.getRoomKey(params.Code)},
		params.Locator,
	).Int()
	if err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return err
	}

	if res == -1 {
		r.logger.DebugContext(ctx, "returned", "error", room.ErrRoomNotFound)
		return room.ErrRoomNotFound
	}

	return nil
}
