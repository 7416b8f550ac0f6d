package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidTTL = errors.New("session TTL must be positive")

// Session is the unit of authentication: its id doubles as the opaque bearer
// token. Expiry is fixed at creation; Touch is informational and never slides
// the expiry window.
type Session struct {
	id         uuid.UUID
	userID     uuid.UUID
	device     string
	browser    string
	ip         string
	lastActive time.Time
	expiresAt  time.Time
	createdAt  time.Time
}

func NewSession(userID uuid.UUID, device, browser, ip string, now time.Time, ttl time.Duration) (*Session, error) {
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	if device == "" {
		device = "Desktop"
	}
	if browser == "" {
		browser = "Unknown"
	}
	return &Session{
		id:         uuid.New(),
		userID:     userID,
		device:     device,
		browser:    browser,
		ip:         ip,
		lastActive: now,
		expiresAt:  now.Add(ttl),
		createdAt:  now,
	}, nil
}

func ReconstructSession(id, userID uuid.UUID, device, browser, ip string, lastActive, expiresAt, createdAt time.Time) *Session {
	return &Session{
		id:         id,
		userID:     userID,
		device:     device,
		browser:    browser,
		ip:         ip,
		lastActive: lastActive,
		expiresAt:  expiresAt,
		createdAt:  createdAt,
	}
}

func (s *Session) IsExpired(now time.Time) bool {
	return s.expiresAt.Before(now)
}

func (s *Session) ID() uuid.UUID         { return s.id }
func (s *Session) UserID() uuid.UUID     { return s.userID }
func (s *Session) Device() string        { return s.device }
func (s *Session) Browser() string       { return s.browser }
func (s *Session) IP() string            { return s.ip }
func (s *Session) LastActive() time.Time { return s.lastActive }
func (s *Session) ExpiresAt() time.Time  { return s.expiresAt }
func (s *Session) CreatedAt() time.Time  { return s.createdAt }
