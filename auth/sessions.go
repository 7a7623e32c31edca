// api/auth/sessions.go
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	"github.com/fixhub-app/fixhub/api/model"
)

// Session is the authenticated caller as proven by the auth collaborator:
// subject id, email and expiry. It carries no authorization data; the role
// comes from the profiles table.
type Session struct {
	UserID    string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// Sessions is the external auth collaborator surface: everything the rest of
// the system may ask of the authentication service.
type Sessions interface {
	GetSession(ctx context.Context, token string) (Session, error)
	GetUser(ctx context.Context, token string) (model.Profile, error)
	SignInWithPassword(ctx context.Context, email, password string) (string, Session, error)
	SignOut(ctx context.Context, token string) error
}

// UserStore resolves credentials during sign-in.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)
}

// Revoker denylists session token ids so a sign-out invalidates an otherwise
// valid token.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTSessions implements Sessions with HS256 tokens backed by the profile
// store for credentials and a revocation denylist.
type JWTSessions struct {
	secret  []byte
	ttl     time.Duration
	users   UserStore
	revoker Revoker
	now     func() time.Time
}

func NewJWTSessions(secret string, ttl time.Duration, users UserStore, revoker Revoker) *JWTSessions {
	return &JWTSessions{
		secret:  []byte(secret),
		ttl:     ttl,
		users:   users,
		revoker: revoker,
		now:     time.Now,
	}
}

func (s *JWTSessions) GetSession(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, fixhub_errors.ErrNoSession
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, fixhub_errors.ErrSessionExpired
		}
		return Session{}, fixhub_errors.ErrNoSession
	}
	if !parsed.Valid {
		return Session{}, fixhub_errors.ErrNoSession
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return Session{}, err
	}
	if revoked {
		return Session{}, fixhub_errors.ErrSessionRevoked
	}

	return Session{
		UserID:    claims.Subject,
		Email:     claims.Email,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *JWTSessions) GetUser(ctx context.Context, token string) (model.Profile, error) {
	session, err := s.GetSession(ctx, token)
	if err != nil {
		return model.Profile{}, err
	}
	profile, err := s.users.FindByEmail(ctx, session.Email)
	if err != nil {
		return model.Profile{}, err
	}
	return *profile, nil
}

func (s *JWTSessions) SignInWithPassword(ctx context.Context, email, password string) (string, Session, error) {
	profile, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", Session{}, fixhub_errors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return "", Session{}, fixhub_errors.ErrInvalidCredentials
	}

	now := s.now()
	session := Session{
		UserID:    profile.ID,
		Email:     profile.Email,
		TokenID:   uuid.New().String(),
		ExpiresAt: now.Add(s.ttl),
	}

	claims := sessionClaims{
		Email: session.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.TokenID,
			Subject:   session.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", Session{}, err
	}
	return token, session, nil
}

// SignOut revokes the token for whatever lifetime it has left.
func (s *JWTSessions) SignOut(ctx context.Context, token string) error {
	session, err := s.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, fixhub_errors.ErrSessionRevoked) {
			return nil
		}
		return err
	}
	return s.revoker.Revoke(ctx, session.TokenID, time.Until(session.ExpiresAt))
}

// HashPassword produces the bcrypt hash stored on a profile.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
