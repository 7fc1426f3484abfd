package services

import (
	"errors"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/security"
	"github.com/anja687gutierrez-jpg/goiconicway/pkg/config"
)

// ErrInvalidCredentials is returned for any failed operator login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles operator console authentication.
type AuthService struct {
	logger *logging.ChanneledLogger
}

// NewAuthService creates the auth service.
func NewAuthService(logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{logger: logger}
}

// LoginSysop verifies the operator password and mints a console token.
func (s *AuthService) LoginSysop(password string) (string, error) {
	if config.SysopPasswordHash == "" || config.JWTSecret == "" {
		s.logger.System().Warn("Sysop login attempted without configured credentials")
		return "", ErrInvalidCredentials
	}
	if !security.VerifyPassword(config.SysopPasswordHash, password) {
		s.logger.System().Warn("Sysop login failed")
		return "", ErrInvalidCredentials
	}

	token, err := security.GenerateSysopToken(config.JWTSecret)
	if err != nil {
		return "", err
	}
	s.logger.System().Info("Sysop login succeeded")
	return token, nil
}

// ValidateSysopToken checks a console token.
func (s *AuthService) ValidateSysopToken(token string) bool {
	claims, err := security.ValidateJWT(token, config.JWTSecret)
	if err != nil {
		return false
	}
	return security.IsSysopClaims(claims)
}
