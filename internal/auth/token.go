package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GameClaims ties a bearer token to exactly one game session.
type GameClaims struct {
	jwt.RegisteredClaims
	GameID string `json:"game_id"`
}

func GenerateGameToken(gameID string, secret []byte, ttl time.Duration) (string, error) {
	claims := GameClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		GameID: gameID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func VerifyGameToken(tokenStr string, secret []byte) (*GameClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &GameClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected token signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*GameClaims)
	if !ok || claims.GameID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
