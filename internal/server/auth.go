package server

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// roomClaims binds a token to one player in one room. The websocket endpoint
// trusts nothing else about the caller.
type roomClaims struct {
	RoomID   string `json:"roomId"`
	Nickname string `json:"nickname"`
	jwt.RegisteredClaims
}

// mintToken issues a signed HS256 token admitting playerID to roomID.
func mintToken(secret string, roomID, playerID uuid.UUID, nickname string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := roomClaims{
		RoomID:   roomID.String(),
		Nickname: nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// verifyToken parses and validates a room token, returning the identities it
// carries. Any tampering, expiry, or wrong algorithm fails here.
func verifyToken(secret, raw string) (roomID, playerID uuid.UUID, nickname string, err error) {
	var claims roomClaims
	_, err = jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return uuid.Nil, uuid.Nil, "", err
	}

	roomID, err = uuid.Parse(claims.RoomID)
	if err != nil {
		return uuid.Nil, uuid.Nil, "", fmt.Errorf("bad room id in token: %w", err)
	}
	playerID, err = uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, uuid.Nil, "", fmt.Errorf("bad player id in token: %w", err)
	}
	return roomID, playerID, claims.Nickname, nil
}
