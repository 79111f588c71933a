package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/ougirez/carbon4c/internal/pkg/constants"
	"github.com/spf13/viper"
)

const adminTokenTTL = 12 * time.Hour

// AuthTokenWrapper is the payload of the admin cookie.
type AuthTokenWrapper struct {
	jwt.StandardClaims
	Secret string `json:"secret"`
}

func signingKey() []byte {
	return []byte(viper.GetString(constants.ViperSecretKey))
}

func GenerateAuthToken(wrapper *AuthTokenWrapper) (string, error) {
	if wrapper.ExpiresAt == 0 {
		wrapper.ExpiresAt = time.Now().Add(adminTokenTTL).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, wrapper)
	signed, err := token.SignedString(signingKey())
	if err != nil {
		return "", fmt.Errorf("SignedString: %w", err)
	}
	return signed, nil
}

func ParseAuthToken(raw string) (*AuthTokenWrapper, error) {
	wrapper := &AuthTokenWrapper{}
	token, err := jwt.ParseWithClaims(raw, wrapper, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, constants.ErrInvalidAuthToken
		}
		return signingKey(), nil
	})
	if err != nil || !token.Valid {
		return nil, constants.ErrInvalidAuthToken
	}
	return wrapper, nil
}
