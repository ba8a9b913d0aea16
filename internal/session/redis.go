package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore persists sessions under session:<token> with a native TTL plus
// an account:<id> reverse key used for rotation and logout.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(cfg RedisConfig) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func tokenKey(token string) string       { return "session:" + token }
func accountKey(accountID string) string { return "account:" + accountID }

func (s *RedisStore) Put(ctx context.Context, sess Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrExpired
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	// rotate out the previous token before writing the new pair
	old, err := s.rdb.Get(ctx, accountKey(sess.AccountID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := s.rdb.TxPipeline()

	if old != "" {
		pipe.Del(ctx, tokenKey(old))
	}

	pipe.Set(ctx, tokenKey(sess.Token), payload, ttl)
	pipe.Set(ctx, accountKey(sess.AccountID), sess.Token, ttl)

	_, err = pipe.Exec(ctx)

	return err
}

func (s *RedisStore) Get(ctx context.Context, token string) (Session, error) {
	raw, err := s.rdb.Get(ctx, tokenKey(token)).Bytes()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrNotFound
		}

		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, err
	}

	return sess, nil
}

func (s *RedisStore) DeleteByAccount(ctx context.Context, accountID string) error {
	token, err := s.rdb.Get(ctx, accountKey(accountID)).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}

		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, tokenKey(token))
	pipe.Del(ctx, accountKey(accountID))

	_, err = pipe.Exec(ctx)

	return err
}
