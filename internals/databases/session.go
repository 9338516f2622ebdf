package database

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"sekolahku_backend/internals/configs"
)

// redisStorage membungkus go-redis supaya memenuhi fiber.Storage,
// dipakai sebagai backing store session kalau REDIS_ADDR diset.
type redisStorage struct {
	client *redis.Client
	ctx    context.Context
}

var _ fiber.Storage = (*redisStorage)(nil)

func newRedisStorage(addr, password string) *redisStorage {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	return &redisStorage{client: client, ctx: context.Background()}
}

func (s *redisStorage) Get(key string) ([]byte, error) {
	val, err := s.client.Get(s.ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return val, err
}

func (s *redisStorage) Set(key string, val []byte, exp time.Duration) error {
	return s.client.Set(s.ctx, key, val, exp).Err()
}

func (s *redisStorage) Delete(key string) error {
	return s.client.Del(s.ctx, key).Err()
}

func (s *redisStorage) Reset() error {
	return s.client.FlushDB(s.ctx).Err()
}

func (s *redisStorage) Close() error {
	return s.client.Close()
}

// NewSessionStore membuat session store untuk CSRF & flash state.
// Default in-memory; Redis dipakai saat REDIS_ADDR tersedia supaya
// session selamat dari restart / multi-instance.
func NewSessionStore() *session.Store {
	cfg := session.Config{
		Expiration:     12 * time.Hour,
		KeyLookup:      "cookie:sekolahku_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}

	if addr := configs.GetEnv("REDIS_ADDR"); addr != "" {
		cfg.Storage = newRedisStorage(addr, configs.GetEnv("REDIS_PASSWORD"))
		log.Printf("✅ Session store pakai Redis (%s)", addr)
	}

	return session.New(cfg)
}
