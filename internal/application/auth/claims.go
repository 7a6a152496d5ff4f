package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrUserIDRequired ユーザーIDが無い
	ErrUserIDRequired = errors.New("user_id is required")
	// ErrInvalidToken トークンが不正または期限切れ
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims サービストークンのクレーム
type Claims struct {
	UserID    string `json:"user_id"`
	ProjectID string `json:"project_id,omitempty"`
	jwt.RegisteredClaims
}

// ParseToken HS256で署名されたトークンを検証してクレームを返す
func ParseToken(tokenString, secret, issuer string) (*Claims, error) {
	// 空の鍵では誰でも署名できる
	if secret == "" {
		return nil, fmt.Errorf("%w: signing secret is not configured", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
