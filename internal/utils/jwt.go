package utils

import (
	"errors"
	"strconv"
	"time"

	"fwp/internal/config"
	"fwp/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "fwp-api"

// GenerateTokens issues an access and refresh token pair for the given user
// claims. Lifetimes default to 15m and 168h; JWT_ACCESS_TTL and
// JWT_REFRESH_TTL override them.
func GenerateTokens(claims *models.UserClaims) (accessToken string, refreshToken string, err error) {
	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		return "", "", errors.New("JWT_SECRET not configured")
	}

	now := time.Now()
	accessTTL := config.GetDurationEnv("JWT_ACCESS_TTL", 15*time.Minute)
	refreshTTL := config.GetDurationEnv("JWT_REFRESH_TTL", 7*24*time.Hour)

	accessToken, err = signToken(claims, secret, now, accessTTL, true)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = signToken(claims, secret, now, refreshTTL, false)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// The refresh token omits the permission list; it is only good for minting a
// new pair.
func signToken(claims *models.UserClaims, secret string, now time.Time, ttl time.Duration, withPermissions bool) (string, error) {
	out := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
		},
		UserID:       claims.UserID,
		Email:        claims.Email,
		Role:         claims.Role,
		TokenVersion: claims.TokenVersion,
	}
	if withPermissions {
		out.Permissions = claims.Permissions
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, out).SignedString([]byte(secret))
}

// ParseToken validates a signed token string and returns the parsed token
// with its claims.
func ParseToken(tokenStr string) (*jwt.Token, *models.UserClaims, error) {
	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, nil, errors.New("JWT_SECRET not configured")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, nil, err
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, nil, errors.New("invalid token claims")
	}
	return token, claims, nil
}
