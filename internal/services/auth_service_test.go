package services_test

import (
	"log"
	"os"
	"testing"
	"time"

	"journal/internal/models"
	"journal/internal/repositories"
	"journal/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUserName(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

const testJWTSecret = "test_jwt_secret"

func testUser() *models.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	return &models.User{
		ID:        "user-123",
		FirstName: "Alice",
		LastName:  "Liddell",
		UserName:  "alice1",
		Email:     "alice@example.com",
		Password:  string(hashed),
	}
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)
	user := testUser()

	// Successful login
	mockRepo.On("GetByUserName", user.UserName).Return(user, nil).Once()
	loggedIn, token, err := authService.Login("alice1", "password123")
	assert.NoError(t, err)
	assert.Equal(t, user.UserName, loggedIn.UserName)
	assert.NotEmpty(t, token)

	// The minted token carries the username as subject and expires in 7 days
	claims := &jwt.StandardClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "alice1", claims.Subject)
	expectedExpiry := time.Now().Add(7 * 24 * time.Hour).Unix()
	assert.InDelta(t, expectedExpiry, claims.ExpiresAt, 60)
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByUserName", user.UserName).Return(user, nil).Once()
	_, _, err = authService.Login("alice1", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Unknown username fails with the exact same error as a wrong password
	mockRepo.On("GetByUserName", "nobody1").Return(nil, repositories.ErrNotFound).Once()
	_, _, err = authService.Login("nobody1", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Valid token
	validTokenString, err := authService.IssueToken(testUser())
	assert.NoError(t, err)
	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "alice1", claims.Subject)

	// Garbage token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrTokenInvalid)

	// Token signed with a different secret
	foreignToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   "alice1",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	foreignTokenString, _ := foreignToken.SignedString([]byte("some_other_secret"))
	_, err = authService.ValidateToken(foreignTokenString)
	assert.ErrorIs(t, err, services.ErrTokenInvalid)

	// Expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   "alice1",
		IssuedAt:  time.Now().Add(-8 * 24 * time.Hour).Unix(),
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.ErrorIs(t, err, services.ErrTokenExpired)

	// Token using the "none" algorithm must be rejected
	noneToken := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.StandardClaims{
		Subject:   "alice1",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	noneTokenString, _ := noneToken.SignedString(jwt.UnsafeAllowNoneSignatureType)
	_, err = authService.ValidateToken(noneTokenString)
	assert.ErrorIs(t, err, services.ErrTokenInvalid)
}

func TestAuthService_Authenticate(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)
	user := testUser()

	tokenString, err := authService.IssueToken(user)
	assert.NoError(t, err)

	// Valid token resolves to the full user record
	mockRepo.On("GetByUserName", user.UserName).Return(user, nil).Once()
	resolved, err := authService.Authenticate(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	mockRepo.AssertExpectations(t)

	// Token whose subject no longer exists is invalid
	mockRepo.On("GetByUserName", user.UserName).Return(nil, repositories.ErrNotFound).Once()
	_, err = authService.Authenticate(tokenString)
	assert.ErrorIs(t, err, services.ErrTokenInvalid)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_PasswordHashing(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hash, err := authService.HashPassword("secretpw")
	assert.NoError(t, err)
	assert.NotEqual(t, "secretpw", hash)

	assert.NoError(t, authService.CheckPassword("secretpw", hash))
	assert.Error(t, authService.CheckPassword("wrongpw1", hash))
}
