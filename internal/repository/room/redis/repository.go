package redis

import (
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Every durable write is an existence-guarded Lua script: the check and the
// write must be one atomic step so that a concurrent room removal cannot land
// in between and have the trailing write resurrect a deleted room key.
// redis.Script runs EVALSHA and falls back to EVAL when the script is not
// cached yet, so nothing has to be preloaded at construction.
var (
	createRoomScript = redis.NewScript(`
		if redis.call('EXISTS', KEYS[1]) == 1 then
			return 0
		end
		redis.call('HSET', KEYS[1], 'admin_name', ARGV[1], 'created_at', ARGV[2])
		return 1
	`)

	addMemberScript = redis.NewScript(`
		if redis.call('EXISTS', KEYS[1]) == 0 then
			return -1
		end
		if redis.call('HGET', KEYS[1], 'admin_name') == ARGV[1] then
			return 0
		end
		return redis.call('SADD', KEYS[2], ARGV[1])
	`)

	setNowPlayingScript = redis.NewScript(`
		if redis.call('EXISTS', KEYS[1]) == 0 then
			return -1
		end
		redis.call('HSET', KEYS[1], 'now_playing', ARGV[1])
		return 1
	`)

	addTrackScript = redis.NewScript(`
		if redis.call('EXISTS', KEYS[1]) == 0 then
			return -1
		end
		return redis.call('RPUSH', KEYS[2], ARGV[1])
	`)
)

type repo struct {
	rc     *redis.Client
	logger *slog.Logger
}

func NewRepo(rc *redis.Client, logger *slog.Logger) *repo {
	return &repo{
		rc:     rc,
		logger: logger,
	}
}

func (r repo) getRoomKey(code string) string {
	return "room:" + code
}

func (r repo) getMemberSetKey(code string) string {
	return "room:" + code + ":members"
}

func (r repo) getTrackListKey(code string) string {
	return "room:" + code + ":tracks"
}

func (r repo) fieldToInt64(field string) int64 {
	i, _ := strconv.ParseInt(field, 10, 64)
	return i
}
