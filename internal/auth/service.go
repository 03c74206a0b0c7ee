package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxFailures   = 5
	failureWindow = 15 * time.Minute
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=auth
type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// Service implements the identity gate: password sign-in issuing a signed
// session token, plus verification for gated routes.
type Service struct {
	repo   Repository
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	failures map[string][]time.Time
}

func NewService(repo Repository, secret string, ttl time.Duration) *Service {
	return &Service{
		repo:     repo,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
		failures: make(map[string][]time.Time),
	}
}

// SignIn validates the credentials and returns a session token. Failures
// come back as *Error so the form can render a message per kind.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := mail.ParseAddress(email); err != nil {
		return "", &Error{Kind: KindInvalidEmail}
	}

	if s.throttled(email) {
		return "", &Error{Kind: KindTooManyRequests}
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.recordFailure(email)
			return "", &Error{Kind: KindNotFound}
		}

		return "", fmt.Errorf("looking up user: %w", err)
	}

	if user.Disabled {
		return "", &Error{Kind: KindDisabled}
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		s.recordFailure(email)
		return "", &Error{Kind: KindWrongPassword}
	}

	s.clearFailures(email)

	return s.issueToken(user)
}

// Verify parses and validates a session token.
func (s *Service) Verify(token string) (*Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("parsing subject: %w", err)
	}

	var email string
	if len(claims.Audience) > 0 {
		email = claims.Audience[0]
	}

	return &Session{UserID: userID, Email: email}, nil
}

func (s *Service) issueToken(user *User) (string, error) {
	now := s.now()

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		Audience:  jwt.ClaimStrings{user.Email},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return token, nil
}

func (s *Service) throttled(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-failureWindow)
	recent := s.failures[email][:0]

	for _, at := range s.failures[email] {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}

	s.failures[email] = recent

	return len(recent) >= maxFailures
}

func (s *Service) recordFailure(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[email] = append(s.failures[email], s.now())
}

func (s *Service) clearFailures(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.failures, email)
}
