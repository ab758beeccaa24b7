package redis

import (
	"context"

	"github.com/swipemood/server/internal/repository/room"
)

// AddMember inserts the name into the room's member set. The set semantics
// make the insertion idempotent: concurrent calls with the same name collapse
// into a single stored entry. The admin name is never inserted.
func (r repo) AddMember(ctx context.Context, params *room.AddMemberParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)

	res, err := addMemberScript.Run(ctx, r.rc,
		[]string{r.getRoomKey(params.Code), r.getMemberSetKey(params.Code)},
		params.MemberName,
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
