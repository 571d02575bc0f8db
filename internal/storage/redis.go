package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisStore Redis를 사용하는 Store 구현입니다. 만료는 Redis TTL에 위임합니다.
type redisStore struct {
	client redis.UniversalClient
}

var _ Store = (*redisStore)(nil)

// RedisOptions Redis 접속 정보입니다.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore Redis 서버에 접속하고 PING으로 연결을 확인합니다.
func NewRedisStore(ctx context.Context, opts RedisOptions) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, newErrRedisConnectFailed(err, opts.Addr)
	}

	return &redisStore{client: client}, nil
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := checkKey(ctx, key); err != nil {
		return nil, err
	}

	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, newErrRedisCommandFailed(err, "GET")
	}

	return value, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := checkKey(ctx, key); err != nil {
		return err
	}

	if err := s.client.Set(ctx, key, value, normalizeTTL(ttl)).Err(); err != nil {
		return newErrRedisCommandFailed(err, "SET")
	}

	return nil
}

func (s *redisStore) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if err := checkKey(ctx, key); err != nil {
		return false, err
	}

	stored, err := s.client.SetNX(ctx, key, value, normalizeTTL(ttl)).Result()
	if err != nil {
		return false, newErrRedisCommandFailed(err, "SETNX")
	}

	return stored, nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(ctx, key); err != nil {
		return err
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return newErrRedisCommandFailed(err, "DEL")
	}

	return nil
}

func (s *redisStore) Close() error {
	return s.client.Close()
}

// normalizeTTL 음수 TTL은 go-redis에서 KEEPTTL로 해석되므로 0(만료 없음)으로 바꿉니다.
func normalizeTTL(ttl time.Duration) time.Duration {
	if ttl < 0 {
		return 0
	}
	return ttl
}
