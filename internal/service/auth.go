package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/edsg/edsg/internal/domain"
)

var tracer = otel.Tracer("auth")

const sessionLifetime = 24 * time.Hour

type AuthService struct {
	secret []byte
}

func NewAuthService(secret string) *AuthService {
	return &AuthService{
		secret: []byte(secret),
	}
}

type AuthResult struct {
	UserID  string
	IsAdmin bool
}

type sessionClaims struct {
	Admin bool `json:"adm"`
	jwt.RegisteredClaims
}

// IssueToken mints a signed session token for the account.
func (s *AuthService) IssueToken(ctx context.Context, user domain.User) (string, error) {
	_, span := tracer.Start(ctx, "Auth.Service.IssueToken")
	defer span.End()

	now := time.Now()
	claims := sessionClaims{
		Admin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionLifetime)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		span.RecordError(errors.Wrap(err, "token signing failed"))
		return "", err
	}
	return token, nil
}

// VerifyToken validates the session token and returns who it belongs to.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*AuthResult, error) {
	_, span := tracer.Start(ctx, "Auth.Service.VerifyToken")
	defer span.End()

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		span.RecordError(errors.Wrap(err, "jwt validation failed"))
		return nil, err
	}
	if !parsed.Valid || claims.Subject == "" {
		err := errors.New("invalid session token")
		span.RecordError(err)
		return nil, err
	}

	return &AuthResult{
		UserID:  claims.Subject,
		IsAdmin: claims.Admin,
	}, nil
}
