package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/schemaworks/registrar/internal/faults"
)

// fixedWindowScript increments the window counter and arms its expiry on
// first use. Both steps run atomically on the store so concurrent requests
// from one client never observe a counter without a deadline.
//
// KEYS[1] is the counter key, ARGV[1] the window length in milliseconds.
// Returns {count, remaining window in milliseconds}.
const fixedWindowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`

// scripter is the slice of the Redis client the limiter depends on.
type scripter interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// FixedWindowLimiter counts admissions per identifier in fixed windows
// backed by a shared Redis counter. It implements Limiter.
type FixedWindowLimiter struct {
	store scripter
	cfg   Config
	now   func() time.Time
}

// NewLimiter creates a fixed-window limiter over the given counter store.
func NewLimiter(store scripter, cfg Config) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		store: store,
		cfg:   cfg.withDefaults(),
		now:   time.Now,
	}
}

// Allow consumes one admission for the identifier and reports the decision.
func (l *FixedWindowLimiter) Allow(ctx context.Context, identifier string) (Decision, error) {
	key := l.cfg.KeyPrefix + identifier
	windowMillis := l.cfg.Window.Milliseconds()

	denied := Decision{
		Permitted: false,
		Limit:     l.cfg.Limit,
		Remaining: 0,
		Reset:     l.now().Add(l.cfg.Window),
	}

	res, err := l.store.Eval(ctx, fixedWindowScript, []string{key}, windowMillis).Result()
	if err != nil {
		return denied, faults.New(faults.CodeInternal, "quota.allow", err)
	}

	values, ok := res.([]interface{})
	if !ok || len(values) != 2 {
		return denied, faults.New(faults.CodeInternal, "quota.allow",
			fmt.Errorf("unexpected script result %T", res))
	}

	current, ok1 := values[0].(int64)
	ttlMillis, ok2 := values[1].(int64)
	if !ok1 || !ok2 {
		return denied, faults.New(faults.CodeInternal, "quota.allow",
			fmt.Errorf("unexpected script result values %v", values))
	}

	// PTTL reports a negative value when the key has no expiry, which can
	// only happen if the key was touched outside this limiter. Treat a
	// full window as the horizon in that case.
	if ttlMillis < 0 {
		ttlMillis = windowMillis
	}

	remaining := l.cfg.Limit - int(current)
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Permitted: int(current) <= l.cfg.Limit,
		Limit:     l.cfg.Limit,
		Remaining: remaining,
		Reset:     l.now().Add(time.Duration(ttlMillis) * time.Millisecond),
	}, nil
}

// NewRedisClient creates the go-redis client backing the limiter.
func NewRedisClient(cfg Config) *redis.Client {
	cfg = cfg.withDefaults()

	return redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Username:    cfg.Username,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})
}
