package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	userDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/user"
)

// ServiceAPI is the surface the HTTP layer depends on.
type ServiceAPI interface {
	Login(dto LoginDTO) (*LoginResult, error)
	ForgotPassword(dto ForgotPasswordDTO) (*MessageResult, error)
	ValidateResetToken(token string) (*TokenValidity, error)
	ResetPassword(dto ResetPasswordDTO) (*MessageResult, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetActiveUser(userID string) (*userDatamodel.User, error)
}

// UserRepository is the persistence surface auth needs. Lookups return
// (nil, nil) when no row matches so the login fallback from email to
// username stays a plain sequence of calls.
type UserRepository interface {
	GetByEmail(email string) (*userDatamodel.User, error)
	GetByUsername(username string) (*userDatamodel.User, error)
	GetByID(id string) (*userDatamodel.User, error)
	GetByResetToken(token string) (*userDatamodel.User, error)
	UpdateLastLogin(id string, at time.Time) error
	SetResetToken(id, token string, expires time.Time) error
	ConsumeResetToken(id, passwordHash string) error
}

// Claims carried by the bearer token: subject is the user ID, plus the
// username and role name at issuance time. Role is re-checked per request.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type TokenGenerator interface {
	GenerateAccessToken(userID, username, roleName string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// JWTTokenGenerator signs access tokens with a fixed symmetric secret.
// There is no rotation or revocation list; a token stays valid until expiry.
type JWTTokenGenerator struct {
	Secret         []byte
	AccessTokenTTL time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:         []byte(secret),
		AccessTokenTTL: ttl,
	}
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID, username, roleName string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		Role:     roleName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateRandomToken returns a cryptographically secure random token,
// hex-encoded. Used for activation and password-reset tokens.
func GenerateRandomToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
