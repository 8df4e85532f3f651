package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"phonebook-server/models"
	"phonebook-server/storage"
	apierrors "phonebook-server/utils/errors"
)

const bearerPrefix = "bearer "

// TokenClaims is the identity claim carried by an auth token.
type TokenClaims struct {
	Username string
	UserID   primitive.ObjectID
}

// TokenCodec signs and verifies HS256 tokens carrying a user identity claim.
// Tokens have no expiry; holders stay logged in until the secret rotates.
type TokenCodec struct {
	secret []byte
}

func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Issue signs a token for the given user.
func (c *TokenCodec) Issue(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"id":       user.ID.Hex(),
		"jti":      uuid.NewString(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks the signature and claim shape. Any failure comes back as
// the single INVALID_TOKEN error; callers never learn why a token was bad.
func (c *TokenCodec) Verify(tokenString string) (TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return TokenClaims{}, apierrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, apierrors.ErrInvalidToken
	}
	username, ok := claims["username"].(string)
	if !ok {
		return TokenClaims{}, apierrors.ErrInvalidToken
	}
	idHex, ok := claims["id"].(string)
	if !ok {
		return TokenClaims{}, apierrors.ErrInvalidToken
	}
	userID, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return TokenClaims{}, apierrors.ErrInvalidToken
	}

	return TokenClaims{Username: username, UserID: userID}, nil
}

// AuthService resolves the request-scoped current user from the raw
// Authorization header value.
type AuthService struct {
	codec *TokenCodec
	users *UserService
}

func NewAuthService(codec *TokenCodec, users *UserService) *AuthService {
	return &AuthService{codec: codec, users: users}
}

// CurrentUser returns (nil, nil) when no bearer token is presented, the
// resolved user for a valid token, and ErrInvalidToken otherwise. A token
// referencing a missing user is treated as invalid rather than anonymous.
func (s *AuthService) CurrentUser(ctx context.Context, header string) (*ResolvedUser, error) {
	if header == "" || !strings.HasPrefix(strings.ToLower(header), bearerPrefix) {
		return nil, nil
	}

	claims, err := s.codec.Verify(header[len(bearerPrefix):])
	if err != nil {
		return nil, err
	}

	resolved, err := s.users.Load(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apierrors.ErrInvalidToken
		}
		return nil, err
	}
	return &resolved, nil
}
