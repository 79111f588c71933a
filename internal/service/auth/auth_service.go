package auth

import (
	"context"
	"crypto/subtle"

	"github.com/ougirez/carbon4c/internal/domain/dto"
	"github.com/ougirez/carbon4c/internal/pkg/constants"
	"github.com/ougirez/carbon4c/internal/pkg/logger"
	"github.com/ougirez/carbon4c/internal/pkg/utils"
)

type Service struct {
	secret string
}

func NewService(secret string) *Service {
	return &Service{secret: secret}
}

// LoginAdmin exchanges the shared admin secret for a signed token.
func (svc *Service) LoginAdmin(ctx context.Context, request *dto.LoginRequest) (string, error) {
	if svc.secret == "" || subtle.ConstantTimeCompare([]byte(request.Secret), []byte(svc.secret)) != 1 {
		logger.Warnf(ctx, "rejected admin login")
		return "", constants.ErrUnauthorized
	}

	authToken, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{Secret: request.Secret})
	if err != nil {
		return "", err
	}

	return authToken, nil
}
