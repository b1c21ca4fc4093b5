package services

import (
	"errors"
	"fmt"
	"time"

	"journal/internal/models"
	"journal/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// tokenDuration is how long an issued token stays valid. Expiry is the only
// invalidation path; there is no revocation.
const tokenDuration = 7 * 24 * time.Hour

// AuthService handles password hashing, credential checks and bearer tokens.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
}

// NewAuthService creates a new AuthService. The signing secret is fixed for
// the lifetime of the process.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
	}
}

// HashPassword hashes a plaintext password with bcrypt.
func (s *AuthService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword verifies a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// Login verifies a username/password pair and returns the user together with
// a freshly issued token. Unknown usernames and wrong passwords both fail
// with ErrInvalidCredentials.
func (s *AuthService) Login(username, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByUserName(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := s.CheckPassword(password, user.Password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken mints a signed HS256 token with the username as subject,
// expiring after tokenDuration.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   user.UserName,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(tokenDuration).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a token, returning its claims if the
// signature checks out and the token has not expired.
func (s *AuthService) ValidateToken(tokenString string) (*jwt.StandardClaims, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Authenticate resolves a bearer token to the full user record so handlers
// can run ownership checks against it.
func (s *AuthService) Authenticate(tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUserName(claims.Subject)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Token subject no longer exists, e.g. the account was
			// deleted after issuance.
			return nil, fmt.Errorf("%w: unknown subject", ErrTokenInvalid)
		}
		return nil, err
	}
	return user, nil
}
