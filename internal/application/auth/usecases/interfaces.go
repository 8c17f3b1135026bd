package usecases

import (
	"github.com/orris-inc/servicedesk/internal/application/user/dto"
	"github.com/orris-inc/servicedesk/internal/domain/user"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenService issues access/refresh pairs and verifies refresh tokens.
type TokenService interface {
	Generate(u *user.User) (*TokenPair, error)
	// ParseRefresh returns the subject user id of a valid refresh token.
	ParseRefresh(refreshToken string) (uint, error)
}

type AuthResult struct {
	User   *dto.UserDTO
	Tokens *TokenPair
}
