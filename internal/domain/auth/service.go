package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/yanqian/care-moments/pkg/errors"
)

// Service validates access tokens issued by the identity provider.
type Service interface {
	ValidateToken(ctx context.Context, token string) (Claims, error)
}

type service struct {
	cfg      Config
	verifier *oidc.IDTokenVerifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs a Service instance. With neither a secret nor a JWKS URL every token is rejected.
func NewService(cfg Config, logger *slog.Logger) Service {
	s := &service{
		cfg:    cfg,
		logger: logger.With("component", "auth.service"),
		now:    time.Now,
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" && strings.TrimSpace(cfg.JWKSURL) != "" {
		keySet := oidc.NewRemoteKeySet(context.Background(), cfg.JWKSURL)
		s.verifier = oidc.NewVerifier(cfg.Issuer, keySet, &oidc.Config{
			ClientID:             cfg.Audience,
			SkipClientIDCheck:    cfg.Audience == "",
			SkipIssuerCheck:      cfg.Issuer == "",
			SupportedSigningAlgs: []string{oidc.RS256, oidc.ES256},
			Now:                  s.clock,
		})
	}
	return s
}

func (s *service) ValidateToken(ctx context.Context, token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token missing", nil)
	}
	switch {
	case s.cfg.JWTSecret != "":
		return s.parseShared(token)
	case s.verifier != nil:
		return s.verifyRemote(ctx, token)
	default:
		return Claims{}, apperrors.Wrap(apperrors.CodeAuth, "token verification is not configured", nil)
	}
}

func (s *service) clock() time.Time {
	return s.now()
}

func (s *service) parseShared(token string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}
	if s.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(s.cfg.Audience))
	}
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return []byte(s.cfg.JWTSecret), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token expired", err)
		}
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token validation failed", err)
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token invalid", nil)
	}
	return toClaims(claims.Subject, claims.Email, claims.Role, claims.ExpiresAt.Time)
}

func (s *service) verifyRemote(ctx context.Context, token string) (Claims, error) {
	idToken, err := s.verifier.Verify(ctx, token)
	if err != nil {
		var expired *oidc.TokenExpiredError
		if errors.As(err, &expired) {
			return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token expired", err)
		}
		s.logger.Debug("remote token verification failed", "error", err)
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token validation failed", err)
	}
	var extra struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := idToken.Claims(&extra); err != nil {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token claims unreadable", err)
	}
	return toClaims(idToken.Subject, extra.Email, extra.Role, idToken.Expiry)
}

func toClaims(subject, email, role string, expiresAt time.Time) (Claims, error) {
	if strings.TrimSpace(subject) == "" {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token missing subject", nil)
	}
	return Claims{
		UserID:    subject,
		Email:     strings.ToLower(email),
		Role:      role,
		ExpiresAt: expiresAt,
	}, nil
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}
