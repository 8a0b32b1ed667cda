package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/listing"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type for this endpoint")
)

type TokenType string

const TokenTypeAccess TokenType = "access"

// UserClaims are the claims carried by access tokens. Subject is the hex id
// of the calling account; CompanyID is set for agents and may be omitted for
// company accounts, whose own id is the company id.
type UserClaims struct {
	Role      domain.Role `json:"role"`
	CompanyID string      `json:"companyId,omitempty"`
	Type      TokenType   `json:"type"`
	jwt.RegisteredClaims
}

// TokenManager verifies access tokens. Issuing lives in the auth service;
// GenerateAccessToken exists for tooling and tests.
type TokenManager interface {
	GenerateAccessToken(subject primitive.ObjectID, role domain.Role, companyID *primitive.ObjectID, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*UserClaims, error)
}

type tokenManager struct {
	secret []byte
	issuer string
}

func NewTokenManager(secret, issuer string) TokenManager {
	return &tokenManager{
		secret: []byte(secret),
		issuer: issuer,
	}
}

func (m *tokenManager) GenerateAccessToken(subject primitive.ObjectID, role domain.Role, companyID *primitive.ObjectID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := UserClaims{
		Role: role,
		Type: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.Hex(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			ID:        generateJTI(),
		},
	}
	if companyID != nil {
		claims.CompanyID = companyID.Hex()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*UserClaims, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != TokenTypeAccess {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// Scope converts verified claims into the caller scope used by the services.
func (c *UserClaims) Scope() (listing.Scope, error) {
	if !c.Role.Valid() {
		return listing.Scope{}, ErrInvalidToken
	}
	subject, err := primitive.ObjectIDFromHex(c.Subject)
	if err != nil {
		return listing.Scope{}, ErrInvalidToken
	}
	scope := listing.Scope{Role: c.Role, SubjectID: subject}

	switch {
	case c.CompanyID != "":
		if scope.CompanyID, err = primitive.ObjectIDFromHex(c.CompanyID); err != nil {
			return listing.Scope{}, ErrInvalidToken
		}
	case c.Role == domain.RoleCompany:
		scope.CompanyID = subject
	case c.Role == domain.RoleAgent:
		return listing.Scope{}, ErrInvalidToken
	}
	return scope, nil
}

// Simple unique ID generator
func generateJTI() string {
	return strconv.FormatInt(time.Now().UnixNano(), 16)
}
