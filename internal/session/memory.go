package session

import (
	"context"
	"sync"
)

// MemoryStore keeps sessions in two maps under one mutex: token -> session
// and account -> token, so both lookup and rotation are O(1).
type MemoryStore struct {
	mu        sync.RWMutex
	byToken   map[string]Session
	byAccount map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byToken:   make(map[string]Session),
		byAccount: make(map[string]string),
	}
}

func (s *MemoryStore) Put(_ context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.byAccount[sess.AccountID]; ok {
		delete(s.byToken, old)
	}

	s.byToken[sess.Token] = sess
	s.byAccount[sess.AccountID] = sess.Token

	return nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (Session, error) {
	s.mu.RLock()
	sess, ok := s.byToken[token]
	s.mu.RUnlock()

	if !ok {
		return Session{}, ErrNotFound
	}

	return sess, nil
}

func (s *MemoryStore) DeleteByAccount(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token, ok := s.byAccount[accountID]; ok {
		delete(s.byToken, token)
		delete(s.byAccount, accountID)
	}

	return nil
}
