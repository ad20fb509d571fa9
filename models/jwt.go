package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWT = struct {
	ACCESS_COOKIE_NAME string
	SCOPE              string
}{
	ACCESS_COOKIE_NAME: "access_token",
	SCOPE:              "workspace",
}

type WorkspaceClaims struct {
	WorkspaceID string `json:"workspaceId"`
	Scope       string `json:"scope"`
	jwt.RegisteredClaims
}

type WorkspaceTokenResponse struct {
	Workspace Workspace `json:"workspace"`
	Token     string    `json:"token"`
	Expiry    time.Time `json:"expiry"`
}

// NewAccessToken signs an HS256 token granting access to workspaceID until expiry.
func NewAccessToken(workspaceID string, secret string, expiry time.Time) (string, error) {
	claims := WorkspaceClaims{
		WorkspaceID: workspaceID,
		Scope:       JWT.SCOPE,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("error signing token %v", err)
	}
	return signed, nil
}

func ValidateJWTToken(tokenString string, secret string) (*WorkspaceClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &WorkspaceClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*WorkspaceClaims)
	if !ok || claims.Scope != JWT.SCOPE || claims.WorkspaceID == "" {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
