package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/renameio/v2"

	"github.com/MrEthical07/goSession/codec"
	"github.com/MrEthical07/goSession/internal"
)

const (
	dirPerm  = 0o755
	filePerm = 0o600
)

// FileStore persists sessions on a sharded directory tree. Each record is
// addressable purely from its token; no external lookup locates the file.
//
// Index updates are whole-file read-modify-write, so concurrent updates for
// the same user are serialized by a per-user in-process mutex. Session files
// need no such lock: tokens are unique, so no two logical sessions ever
// write the same path.
type FileStore struct {
	dir      string
	lifetime time.Duration

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-backed store rooted at dir. lifetime is the
// sliding session lifetime applied on every save.
func NewFileStore(dir string, lifetime time.Duration) *FileStore {
	return &FileStore{
		dir:       dir,
		lifetime:  lifetime,
		userLocks: make(map[string]*sync.Mutex),
	}
}

// Save implements [Store]. The session file is written first and the index
// updated second; if the index update fails the fresh file is removed again
// so no partial state stays visibly indexed.
func (s *FileStore) Save(ctx context.Context, sess *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
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

	path := s.tokenPath(sess.Token)
	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	if err := s.indexAdd(userID, sess.Token); err != nil {
		_ = os.Remove(path)
		return err
	}

	return nil
}

// Get implements [Store].
func (s *FileStore) Get(ctx context.Context, token string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !internal.ValidToken(token) {
		return nil, ErrSessionExpired
	}

	path := s.tokenPath(token)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	sess := &Session{}
	if err := codec.Unmarshal(data, sess); err != nil {
		_ = os.Remove(path)
		return nil, errors.Join(ErrSessionExpired, err)
	}
	sess.Token = token

	if sess.Expired(time.Now()) {
		_ = os.Remove(path)
		return nil, ErrSessionExpired
	}

	if err := s.Save(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// Destroy implements [Store].
func (s *FileStore) Destroy(ctx context.Context, sess *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	userID := sess.User.ID.Hex()
	if !internal.ValidUserID(userID) {
		return fmt.Errorf("%w: session user has no id", ErrStorageFailure)
	}

	if err := s.indexRemove(userID, sess.Token); err != nil {
		return err
	}

	if !internal.ValidToken(sess.Token) {
		return nil
	}
	if err := os.Remove(s.tokenPath(sess.Token)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	return nil
}

// UserTokens implements [Store].
func (s *FileStore) UserTokens(ctx context.Context, userID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !internal.ValidUserID(userID) {
		return nil, fmt.Errorf("%w: invalid user id", ErrStorageFailure)
	}
	return s.readIndex(userID)
}

// DestroyAll implements [Store]. It keeps attempting remaining tokens after
// a failure and clears the index afterwards either way: bulk revocation on a
// credential compromise must be maximally effective. The joined per-token
// failures are returned alongside the destroyed count.
func (s *FileStore) DestroyAll(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if !internal.ValidUserID(userID) {
		return 0, fmt.Errorf("%w: invalid user id", ErrStorageFailure)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tokens, err := s.readIndex(userID)
	if err != nil {
		return 0, err
	}

	var destroyed int
	var failures []error
	for _, token := range tokens {
		if !internal.ValidToken(token) {
			continue
		}
		err := os.Remove(s.tokenPath(token))
		if err != nil && !os.IsNotExist(err) {
			failures = append(failures, fmt.Errorf("destroy %s…: %v", tokenPrefix(token), err))
			continue
		}
		destroyed++
	}

	if err := s.writeIndex(userID, []string{}); err != nil {
		failures = append(failures, err)
	}

	if len(failures) > 0 {
		return destroyed, fmt.Errorf("%w: %v", ErrStorageFailure, errors.Join(failures...))
	}
	return destroyed, nil
}

func (s *FileStore) indexAdd(userID, token string) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tokens, err := s.readIndex(userID)
	if err != nil {
		return err
	}
	for _, t := range tokens {
		if t == token {
			return s.writeIndex(userID, tokens)
		}
	}
	return s.writeIndex(userID, append(tokens, token))
}

func (s *FileStore) indexRemove(userID, token string) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tokens, err := s.readIndex(userID)
	if err != nil {
		return err
	}
	for i, t := range tokens {
		if t == token {
			tokens = append(tokens[:i], tokens[i+1:]...)
			break
		}
	}
	// Rewriting an unchanged list is harmless and keeps the contract simple.
	return s.writeIndex(userID, tokens)
}

func (s *FileStore) readIndex(userID string) ([]string, error) {
	data, err := os.ReadFile(s.indexPath(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	var tokens []string
	if err := codec.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if tokens == nil {
		tokens = []string{}
	}
	return tokens, nil
}

func (s *FileStore) writeIndex(userID string, tokens []string) error {
	data, err := codec.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if err := writeAtomic(s.indexPath(userID), data); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return nil
}

// userLock returns the mutex serializing index writes for one user id.
func (s *FileStore) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// tokenPath shards by 3+3 hex prefix: 4096 buckets per level keeps directory
// entries bounded at scale.
func (s *FileStore) tokenPath(token string) string {
	return filepath.Join(s.dir, token[:3], token[3:6], token[6:])
}

// indexPath shards by 4+4 hex prefix of the user id.
func (s *FileStore) indexPath(userID string) string {
	return filepath.Join(s.dir, "index", userID[:4], userID[4:8], userID[8:])
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return err
	}
	return renameio.WriteFile(path, data, filePerm)
}

func tokenPrefix(token string) string {
	if len(token) < 6 {
		return token
	}
	return token[:6]
}
