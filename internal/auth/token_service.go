package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the signed token payload. TokenType keeps access and
// refresh tokens from being swapped for one another: the tag lives
// inside the signature, so a leaked refresh token cannot pass as an
// access token.
type Claims struct {
	UserID    int64  `json:"user_id"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

var (
	ErrInvalidAccessToken  = errors.New("invalid access token")
	ErrExpiredAccessToken  = errors.New("expired access token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrExpiredRefreshToken = errors.New("expired refresh token")
)

// TokenPair is the response shape for every token-minting endpoint.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type TokenService interface {
	GeneratePair(username string, userID int64) (*TokenPair, error)
	ParseAccessToken(tokenStr string) (*Claims, error)
	ParseRefreshToken(tokenStr string) (*Claims, error)
	RefreshPair(refreshToken string) (*TokenPair, error)
}

type tokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) TokenService {
	return &tokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *tokenService) GeneratePair(username string, userID int64) (*TokenPair, error) {
	now := time.Now()

	accessClaims := &Claims{
		UserID:    userID,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	refreshClaims := &Claims{
		UserID:    userID,
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

func (s *tokenService) parse(tokenStr, wantType string, errInvalid, errExpired error) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errExpired
		}
		return nil, errInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errInvalid
	}

	// Kind-tag check: a valid token of the other kind is rejected the
	// same way as a forged one.
	if claims.TokenType != wantType {
		return nil, errInvalid
	}

	if claims.Subject == "" {
		return nil, errInvalid
	}

	return claims, nil
}

func (s *tokenService) ParseAccessToken(tokenStr string) (*Claims, error) {
	return s.parse(tokenStr, TokenTypeAccess, ErrInvalidAccessToken, ErrExpiredAccessToken)
}

func (s *tokenService) ParseRefreshToken(tokenStr string) (*Claims, error) {
	return s.parse(tokenStr, TokenTypeRefresh, ErrInvalidRefreshToken, ErrExpiredRefreshToken)
}

// RefreshPair exchanges a valid refresh token for a brand-new pair.
// The new tokens are minted from the claims embedded in the presented
// token; the credential store is not consulted again.
func (s *tokenService) RefreshPair(refreshToken string) (*TokenPair, error) {
	claims, err := s.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	return s.GeneratePair(claims.Subject, claims.UserID)
}
