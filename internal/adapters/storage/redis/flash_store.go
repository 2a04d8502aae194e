package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"petclinic/internal/ports/flash"
)

// FlashStore guarda los flashes en Redis para que sobrevivan entre réplicas.
// Key: flash:<uuid>
type FlashStore struct {
	client *redis.Client
}

func NewFlashStore(client *redis.Client) *FlashStore {
	return &FlashStore{client: client}
}

func (s *FlashStore) Put(ctx context.Context, key string, m flash.Message, ttl time.Duration) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(key), b, ttl).Err(); err != nil {
		return fmt.Errorf("flash put: %w", err)
	}
	return nil
}

// Take usa GETDEL: el mensaje se lee una sola vez aunque lleguen dos requests con la misma cookie.
func (s *FlashStore) Take(ctx context.Context, key string) (flash.Message, bool, error) {
	b, err := s.client.GetDel(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return flash.Message{}, false, nil
	}
	if err != nil {
		return flash.Message{}, false, fmt.Errorf("flash take: %w", err)
	}

	var m flash.Message
	if err := json.Unmarshal(b, &m); err != nil {
		return flash.Message{}, false, fmt.Errorf("flash decode: %w", err)
	}
	return m, true, nil
}

func (s *FlashStore) key(k string) string {
	return "flash:" + k
}
