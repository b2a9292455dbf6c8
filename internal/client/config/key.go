package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errNotAToken = errors.New("key is not a JWT")

// inspectPublishableKey decodes the API key without verifying its
// signature (the client has no signing secret) and rejects keys that must
// never ship in a client: privileged roles and keys that have already
// expired. Keys in a non-JWT format are reported as errNotAToken and left
// to the backend to judge.
func inspectPublishableKey(key string) error {
	token, _, err := jwt.NewParser().ParseUnverified(key, jwt.MapClaims{})
	if err != nil {
		return errNotAToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errNotAToken
	}

	if role, _ := claims["role"].(string); role == "service_role" {
		return fmt.Errorf("refusing to use a service_role key in a client")
	}

	exp, err := claims.GetExpirationTime()
	if err == nil && exp != nil && exp.Before(time.Now()) {
		return fmt.Errorf("api key expired at %s", exp.Time.Format(time.RFC3339))
	}

	return nil
}
