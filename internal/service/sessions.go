package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	defaultSessionTTL = 7 * 24 * time.Hour
	flashTTL          = 5 * time.Minute

	sessionAudience = "session"
	flashAudience   = "flash"
)

var ErrInvalidSession = errors.New("invalid session")

// Session identifies the logged-in user of one client.
type Session struct {
	ID        string
	UserID    int64
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Category string `json:"c"` // success | info | warning | danger
	Message  string `json:"m"`
}

// SessionClaims defines the signed session payload.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

type flashClaims struct {
	jwt.RegisteredClaims
	Flashes []Flash `json:"f"`
}

// SessionService signs cookie payloads with an HMAC secret.
type SessionService struct {
	key []byte
	ttl time.Duration
}

func NewSessionService(secret string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{key: []byte(secret), ttl: ttl}
}

// Issue starts a session for userID and returns its signed token.
func (s *SessionService) Issue(userID int64) (string, Session, error) {
	if userID <= 0 {
		return "", Session{}, fmt.Errorf("issue session: invalid user id %d", userID)
	}
	now := time.Now().UTC().Truncate(time.Second)
	sess := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Audience:  jwt.ClaimStrings{sessionAudience},
			IssuedAt:  jwt.NewNumericDate(sess.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
		UserID: userID,
	})
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", Session{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, sess, nil
}

// Parse verifies a session token and returns the session it carries.
func (s *SessionService) Parse(tokenStr string) (Session, error) {
	var claims SessionClaims
	if err := s.parse(tokenStr, sessionAudience, &claims); err != nil {
		return Session{}, err
	}
	if claims.UserID <= 0 {
		return Session{}, ErrInvalidSession
	}
	sess := Session{ID: claims.ID, UserID: claims.UserID}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.UTC()
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.UTC()
	}
	return sess, nil
}

// SealFlashes signs pending notices for transport in a cookie.
func (s *SessionService) SealFlashes(flashes []Flash) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &flashClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{flashAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(flashTTL)),
		},
		Flashes: flashes,
	})
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign flashes: %w", err)
	}
	return signed, nil
}

// OpenFlashes verifies a flash token and returns its notices.
func (s *SessionService) OpenFlashes(tokenStr string) ([]Flash, error) {
	var claims flashClaims
	if err := s.parse(tokenStr, flashAudience, &claims); err != nil {
		return nil, err
	}
	return claims.Flashes, nil
}

func (s *SessionService) parse(tokenStr, audience string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.key, nil
	}, jwt.WithAudience(audience), jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if !token.Valid {
		return ErrInvalidSession
	}
	return nil
}
