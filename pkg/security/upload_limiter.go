package security

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// UploadLimiter caps uploads per user per day using a Redis sorted-set
// sliding window. Without Redis every upload is allowed.
type UploadLimiter struct {
	rdb       *goredis.Client
	maxPerDay int
}

// KEYS[1] = window key, ARGV[1] = limit, ARGV[2] = window seconds,
// ARGV[3] = now (unix millis). Returns 1 when allowed, 0 when limited.
const uploadRateLimitScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window * 1000)

local count = redis.call('ZCARD', key)
if count >= limit then
    return 0
end

redis.call('ZADD', key, now, now .. '-' .. math.random(1000000))
redis.call('EXPIRE', key, window)
return 1
`

func NewUploadLimiter(rdb *goredis.Client, maxPerDay int) *UploadLimiter {
	if maxPerDay <= 0 {
		maxPerDay = 50
	}
	return &UploadLimiter{rdb: rdb, maxPerDay: maxPerDay}
}

// Allow records an upload for userID and reports whether it is within quota
func (l *UploadLimiter) Allow(ctx context.Context, userID string) (bool, error) {
	if l == nil || l.rdb == nil {
		return true, nil
	}

	key := "rl:upload:user:" + userID
	window := int((24 * time.Hour).Seconds())
	res, err := l.rdb.Eval(ctx, uploadRateLimitScript, []string{key}, l.maxPerDay, window, time.Now().UnixMilli()).Int()
	if err != nil {
		return true, fmt.Errorf("upload limiter: %w", err)
	}
	return res == 1, nil
}
