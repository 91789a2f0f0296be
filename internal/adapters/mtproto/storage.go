package mtproto

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/gotd/td/session"
	"github.com/redis/go-redis/v9"
)

// NewFileStorage хранит блоб сессии в рабочем каталоге сервиса.
func NewFileStorage(workDir string) (session.Storage, error) {
	if err := os.MkdirAll(workDir, 0o700); err != nil {
		return nil, err
	}
	return &session.FileStorage{Path: filepath.Join(workDir, "session.json")}, nil
}

// RedisStorage хранит блоб сессии в Redis — общий вход для нескольких
// экземпляров сервиса.
type RedisStorage struct {
	client *redis.Client
	key    string
}

// NewRedisStorage создаёт хранилище по адресу Redis.
func NewRedisStorage(addr, key string) *RedisStorage {
	return &RedisStorage{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		key:    key,
	}
}

var _ session.Storage = (*RedisStorage)(nil)

// LoadSession загружает блоб; session.ErrNotFound — если входа ещё не было.
func (s *RedisStorage) LoadSession(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// StoreSession сохраняет блоб без срока жизни.
func (s *RedisStorage) StoreSession(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key, data, 0).Err()
}
