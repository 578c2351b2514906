package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goSession/codec"
	"github.com/MrEthical07/goSession/internal"
)

// RedisStore is a Redis-backed [Store] for deployments that outgrow the
// file tree. Records are stored as codec blobs with a PX TTL mirroring the
// embedded expiry, and the per-user index is a Redis set, which makes index
// add/remove atomic without a per-user lock.
type RedisStore struct {
	redis    redis.UniversalClient
	prefix   string
	lifetime time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed store. prefix namespaces every key;
// lifetime is the sliding session lifetime applied on every save.
func NewRedisStore(client redis.UniversalClient, prefix string, lifetime time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "gs"
	}
	return &RedisStore{
		redis:    client,
		prefix:   prefix,
		lifetime: lifetime,
	}
}

func (s *RedisStore) key(token string) string {
	return s.prefix + ":" + token
}

func (s *RedisStore) userKey(userID string) string {
	return s.prefix + ":u:" + userID
}

// Save implements [Store].
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	if !internal.ValidToken(sess.Token) {
		return fmt.Errorf("%w: invalid session token", ErrStorageFailure)
	}
	userID := sess.User.ID.Hex()
	if !internal.ValidUserID(userID) {
		return fmt.Errorf("%w: session user has no id", ErrStorageFailure)
	}

	sess.touch(time.Now(), s.lifetime)

	data, err := codec.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(sess.Token), data, s.lifetime)
		pipe.SAdd(ctx, s.userKey(userID), sess.Token)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	return nil
}

// Get implements [Store].
func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	if !internal.ValidToken(token) {
		return nil, ErrSessionExpired
	}

	data, err := s.redis.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	sess := &Session{}
	if err := codec.Unmarshal(data, sess); err != nil {
		_ = s.redis.Del(ctx, s.key(token)).Err()
		return nil, errors.Join(ErrSessionExpired, err)
	}
	sess.Token = token

	if sess.Expired(time.Now()) {
		_ = s.deleteSessionAndIndex(ctx, sess.User.ID.Hex(), token)
		return nil, ErrSessionExpired
	}

	if err := s.Save(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// Destroy implements [Store].
func (s *RedisStore) Destroy(ctx context.Context, sess *Session) error {
	userID := sess.User.ID.Hex()
	if !internal.ValidUserID(userID) {
		return fmt.Errorf("%w: session user has no id", ErrStorageFailure)
	}
	return s.deleteSessionAndIndex(ctx, userID, sess.Token)
}

// UserTokens implements [Store].
func (s *RedisStore) UserTokens(ctx context.Context, userID string) ([]string, error) {
	if !internal.ValidUserID(userID) {
		return nil, fmt.Errorf("%w: invalid user id", ErrStorageFailure)
	}

	tokens, err := s.redis.SMembers(ctx, s.userKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return tokens, nil
}

// DestroyAll implements [Store]. Deletions continue past individual
// failures; the index set is cleared afterwards either way.
func (s *RedisStore) DestroyAll(ctx context.Context, userID string) (int, error) {
	tokens, err := s.UserTokens(ctx, userID)
	if err != nil {
		return 0, err
	}

	var destroyed int
	var failures []error
	for _, token := range tokens {
		if err := s.redis.Del(ctx, s.key(token)).Err(); err != nil && !errors.Is(err, redis.Nil) {
			failures = append(failures, fmt.Errorf("destroy %s…: %v", tokenPrefix(token), err))
			continue
		}
		destroyed++
	}

	if err := s.redis.Del(ctx, s.userKey(userID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		failures = append(failures, err)
	}

	if len(failures) > 0 {
		return destroyed, fmt.Errorf("%w: %v", ErrStorageFailure, errors.Join(failures...))
	}
	return destroyed, nil
}

func (s *RedisStore) deleteSessionAndIndex(ctx context.Context, userID, token string) error {
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SRem(ctx, s.userKey(userID), token)
		pipe.Del(ctx, s.key(token))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return nil
}
