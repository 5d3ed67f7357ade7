package sessions

import (
	"campus-portal/app/server/constants"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound 会话不存在或已过期
var ErrNotFound = errors.New("session not found")

// Session 服务端会话，把请求绑定到一个用户身份
type Session struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store 会话存储的契约：签入创建、按 token 查找、签出销毁
type Store interface {
	Create(ctx context.Context, userID uint, ttl time.Duration) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Destroy(ctx context.Context, id string) error
}

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Create(ctx context.Context, userID uint, ttl time.Duration) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	// 过期由 redis 的 TTL 负责
	if err := s.rdb.Set(ctx, fmt.Sprintf(constants.CacheKeySession, sess.ID), payload, ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	key := fmt.Sprintf(constants.CacheKeySession, id)

	payload, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		// 无效的记录，清理掉
		s.rdb.Del(ctx, key)
		return nil, ErrNotFound
	}

	return &sess, nil
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	// 幂等：不存在的会话直接视为已销毁
	if err := s.rdb.Del(ctx, fmt.Sprintf(constants.CacheKeySession, id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
