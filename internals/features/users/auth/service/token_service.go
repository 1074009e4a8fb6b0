package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"campusevents_backend/internals/configs"
	userModel "campusevents_backend/internals/features/users/user/model"
)

const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// GenerateAccessToken embeds the principal (id, role, college scope) so the
// middleware can gate routes without a DB round trip.
func GenerateAccessToken(user *userModel.UserModel) (string, error) {
	if configs.JWTSecret == "" {
		return "", errors.New("JWT_SECRET is not configured")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    user.UserID.String(),
		"user_name":  user.UserName,
		"role":       user.UserRole,
		"college_id": user.UserCollegeID.String(),
		"iat":        now.Unix(),
		"exp":        now.Add(AccessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

func GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error) {
	if configs.JWTRefreshSecret == "" {
		return "", time.Time{}, errors.New("JWT_REFRESH_SECRET is not configured")
	}
	now := time.Now()
	expiresAt := now.Add(RefreshTokenTTL)
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseRefreshToken verifies the signature and expiry and returns the user id.
func ParseRefreshToken(tokenString string) (uuid.UUID, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing user_id claim")
	}
	return uuid.Parse(raw)
}

// TokenExpiry reads exp from an already-issued access token (used when
// blacklisting on logout; the blacklist row can be purged after expiry).
func TokenExpiry(tokenString string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return time.Now().Add(AccessTokenTTL)
	}
	if expFloat, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(expFloat), 0)
	}
	return time.Now().Add(AccessTokenTTL)
}
