// Package auth issues and verifies JWTs and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authusecases "github.com/orris-inc/servicedesk/internal/application/auth/usecases"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
	"github.com/orris-inc/servicedesk/internal/shared/config"
	apperrors "github.com/orris-inc/servicedesk/internal/shared/errors"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims carry the subject as a decimal user id in "sub".
type Claims struct {
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	TenantID  *uint     `json:"tenant_id"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid subject %q", c.Subject)
	}
	return uint(id), nil
}

// Actor converts access claims into the caller seen by use cases.
func (c *Claims) Actor() (authorization.Actor, error) {
	id, err := c.UserID()
	if err != nil {
		return authorization.Actor{}, err
	}
	return authorization.Actor{
		UserID:   id,
		TenantID: c.TenantID,
		Roles:    authorization.RolesFromStrings(c.Roles),
	}, nil
}

// JWTService signs access and refresh tokens with separate HS256 secrets.
type JWTService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

func NewJWTService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, issuer string) *JWTService {
	return &JWTService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		issuer:        issuer,
	}
}

// NewJWTServiceFromConfig reads secrets and lifetimes from the auth section.
func NewJWTServiceFromConfig(cfg config.JWTConfig) (*JWTService, error) {
	accessTTL, err := cfg.AccessTTL()
	if err != nil {
		return nil, fmt.Errorf("invalid access token lifetime: %w", err)
	}
	refreshTTL, err := cfg.RefreshTTL()
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token lifetime: %w", err)
	}
	return NewJWTService(cfg.Secret, cfg.RefreshSecret, accessTTL, refreshTTL, cfg.Issuer), nil
}

func (s *JWTService) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *JWTService) Generate(u *user.User) (*authusecases.TokenPair, error) {
	now := biztime.NowUTC()

	access, err := s.sign(u, TokenTypeAccess, now, s.accessTTL, s.accessSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.sign(u, TokenTypeRefresh, now, s.refreshTTL, s.refreshSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &authusecases.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessTTL / time.Second),
	}, nil
}

func (s *JWTService) sign(u *user.User, tokenType TokenType, now time.Time, ttl time.Duration, secret []byte) (string, error) {
	claims := &Claims{
		Email:     u.Email().String(),
		Roles:     u.Roles().Strings(),
		TenantID:  u.TenantID(),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID()), 10),
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseAccess verifies an access token. Failures are AuthErrors.
func (s *JWTService) ParseAccess(tokenString string) (*Claims, error) {
	return s.parse(tokenString, TokenTypeAccess, s.accessSecret)
}

// ParseRefresh verifies a refresh token and returns its subject.
func (s *JWTService) ParseRefresh(tokenString string) (uint, error) {
	claims, err := s.parse(tokenString, TokenTypeRefresh, s.refreshSecret)
	if err != nil {
		return 0, err
	}
	id, err := claims.UserID()
	if err != nil {
		return 0, apperrors.NewTokenInvalidError()
	}
	return id, nil
}

func (s *JWTService) parse(tokenString string, want TokenType, secret []byte) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(biztime.NowUTC),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.NewTokenExpiredError()
		}
		return nil, apperrors.NewTokenInvalidError()
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != want {
		return nil, apperrors.NewTokenInvalidError()
	}
	return claims, nil
}
