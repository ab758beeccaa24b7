package redis

import (
	"context"
	"encoding/json"

	"github.com/swipemood/server/internal/repository/room"
)

func (r repo) AddTrack(ctx context.Context, params *room.AddTrackParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)

	track, err := json.Marshal(room.Track{
		Title:      params.Title,
		Path:       params.Path,
		UploadedBy: params.UploadedBy,
	})
	if err != nil {
		return err
	}

	res, err := addTrackScript.Run(ctx, r.rc,
		[]string{r.getRoomKey(params.Code), r.getTrackListKey(params.Code)},
		track,
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

func (r repo) getTracks(ctx context.Context, code string) ([]room.Track, error) {
	raw, err := r.rc.LRange(ctx, r.getTrackListKey(code), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	tracks := make([]room.Track, 0, len(raw))
	for _, item := range raw {
		var track room.Track
		if err := json.Unmarshal([]byte(item), &track); err != nil {
			return nil, err
		}

		tracks = append(tracks, track)
	}

	return tracks, nil
}
