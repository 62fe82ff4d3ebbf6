// Package otp generates short numeric one-time codes and tracks the
// latest pending code per phone number in memory.
package otp

import (
	"crypto/rand"
	"math/big"
	"sync"
	"time"
)

const (
	codeMin = 100000
	codeMax = 999999

	// DefaultTTL bounds how long a pending code stays verifiable.
	DefaultTTL = 15 * time.Minute
)

type entry struct {
	code      string
	createdAt time.Time
}

// Store keeps the most recently generated code per phone number. A new
// code overwrites any prior pending one; concurrent generators race
// with last-write-wins semantics behind the lock.
type Store struct {
	mu    sync.Mutex
	codes map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		codes: map[string]entry{},
		ttl:   ttl,
		now:   time.Now,
	}
}

// Generate produces a 6 digit code uniformly drawn from
// [100000, 999999] and records it as the pending code for the number.
func (s *Store) Generate(phoneNumber string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", err
	}
	code := big.NewInt(0).Add(n, big.NewInt(codeMin)).String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[phoneNumber] = entry{code: code, createdAt: s.now()}
	return code, nil
}

// Verify reports whether the submitted number and code exactly match
// the most recently generated, still valid pair. A matching code is
// consumed.
func (s *Store) Verify(phoneNumber string, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.codes[phoneNumber]
	if !ok {
		return false
	}
	if s.now().Sub(pending.createdAt) > s.ttl {
		delete(s.codes, phoneNumber)
		return false
	}
	if pending.code != code {
		return false
	}
	delete(s.codes, phoneNumber)
	return true
}

// Reset clears all pending codes, for use between tests.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes = map[string]entry{}
}
