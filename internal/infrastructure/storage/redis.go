package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"photohunt-server/internal/domain"
)

const scoresKeyPrefix = "photohunt:scores:level:"

const (
	// timeSpan - запас под секунды unix-времени в составном ранге
	timeSpan    = 1e10
	dialTimeout = 5 * time.Second
)

// RedisConfig - настройки Redis-хранилища
type RedisConfig struct {
	Client redis.Cmdable
	// Keep - сколько записей держать на уровень
	Keep int
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Client == nil {
		return fmt.Errorf("redis client cannot be nil")
	}
	return nil
}

// RedisStore хранит таблицу уровня в sorted set; член - JSON записи.
type RedisStore struct {
	client redis.Cmdable
	keep   int
	closer func() error
}

// NewRedisStore создает хранилище поверх готового клиента
func NewRedisStore(cfg *RedisConfig) (*RedisStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &RedisStore{
		client: cfg.Client,
		keep:   normalizeLimit(cfg.Keep),
		closer: func() error { return nil },
	}, nil
}

// DialRedis подключается по адресу host:port и проверяет соединение
func DialRedis(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	store, err := NewRedisStore(&RedisConfig{Client: client})
	if err != nil {
		return nil, err
	}
	store.closer = client.Close
	return store, nil
}

// ScoresKey returns the Redis key for a level table.
// Exposed for testing purposes
func ScoresKey(level int) string {
	return fmt.Sprintf("%s%d", scoresKeyPrefix, level)
}

// rankValue складывает счет и время в одно число: больше очков выше, при равенстве раньше выше
func rankValue(e domain.ScoreEntry) float64 {
	return float64(e.Score)*timeSpan + (timeSpan - float64(e.RecordedAt.Unix()))
}

func (r *RedisStore) Record(ctx context.Context, entry domain.ScoreEntry) error {
	if err := checkEntry(entry); err != nil {
		return err
	}

	member, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal score entry: %w", err)
	}

	key := ScoresKey(entry.Level)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, key, redis.Z{Score: rankValue(entry), Member: member})
		// Оставляем только keep лучших (они в конце по возрастанию)
		pipe.ZRemRangeByRank(ctx, key, 0, int64(-r.keep-1))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record score for level %d: %w", entry.Level, err)
	}
	return nil
}

func (r *RedisStore) Top(ctx context.Context, level, limit int) ([]domain.ScoreEntry, error) {
	limit = normalizeLimit(limit)

	members, err := r.client.ZRevRange(ctx, ScoresKey(level), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read scores for level %d: %w", level, err)
	}

	entries := make([]domain.ScoreEntry, 0, len(members))
	for _, m := range members {
		var e domain.ScoreEntry
		if err := json.Unmarshal([]byte(m), &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal score entry: %w", err)
		}
		entries = append(entries, e)
	}
	// Внутри одной секунды порядок уточняем по полному времени
	rank(entries)
	return entries, nil
}

func (r *RedisStore) Close() error {
	return r.closer()
}
