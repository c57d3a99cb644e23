package cart

import (
	"context"
	"encoding/json"

	"paperpen/models"

	"github.com/redis/go-redis/v9"
)

// cartKeyPrefix is the fixed key the serialized cart mapping lives under,
// one key per owner.
const cartKeyPrefix = "cart:"

// RedisLocal persists whole carts as JSON blobs in Redis. This is the
// server-side stand-in for device local storage: cheap, synchronous, and
// consulted to rehydrate a cart on first touch.
type RedisLocal struct {
	Conn *redis.Client
}

func (l *RedisLocal) Save(ctx context.Context, ownerID string, lines map[string]models.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return l.Conn.Set(ctx, cartKeyPrefix+ownerID, data, 0).Err()
}

func (l *RedisLocal) Load(ctx context.Context, ownerID string) (map[string]models.CartLine, error) {
	raw, err := l.Conn.Get(ctx, cartKeyPrefix+ownerID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines map[string]models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (l *RedisLocal) Delete(ctx context.Context, ownerID string) error {
	return l.Conn.Del(ctx, cartKeyPrefix+ownerID).Err()
}
