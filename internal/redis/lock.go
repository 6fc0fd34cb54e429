package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockNotAcquired = errors.New("professor schedule lock not acquired")

// Locker serializes booking-critical sections per professor. Two concurrent
// bookings against the same professor must not both reach the
// check-insert-reconcile sequence.
type Locker interface {
	WithProfessorLock(ctx context.Context, professorID uuid.UUID, fn func(ctx context.Context) error) error
}

type redisProfessorLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProfessorLocker creates a locker backed by a per-professor Redis key.
func NewRedisProfessorLocker(client *redis.Client, ttl time.Duration) Locker {
	return &redisProfessorLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *redisProfessorLocker) WithProfessorLock(ctx context.Context, professorID uuid.UUID, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("lock:professor:%s", professorID.String())
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire professor lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		_ = l.release(ctx, key, token)
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

// Release only the lock this call acquired; a lock that expired and was
// re-acquired by someone else must not be deleted from under them.
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisProfessorLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release professor lock: %w", err)
	}
	return nil
}
