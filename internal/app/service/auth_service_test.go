package service

import (
	"testing"
	"time"

	"github.com/patriotthanks/patriotthanks-backend/config"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/model"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/repository"
	"github.com/patriotthanks/patriotthanks-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (AuthService, SchoolService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	schoolService := NewSchoolService(repository.NewSchoolRepository(testDB))

	jwtConfig := &config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}

	return NewAuthService(userRepo, schoolService, jwtConfig), schoolService, testDB
}

func TestAuthService_Register_ResolvesSchool(t *testing.T) {
	authService, schoolService, _ := setupAuthServiceTest(t)

	school, err := schoolService.CreateSchool(&model.School{
		Name:   "Kirkwood Community College",
		Domain: "kirkwood.edu",
	})
	require.NoError(t, err)

	result, err := authService.Register("jordan@student.kirkwood.edu", "password123", "Jordan")
	require.NoError(t, err)

	require.NotNil(t, result.School)
	assert.Equal(t, school.ID, result.School.ID)
	require.NotNil(t, result.User.SchoolID)
	assert.Equal(t, school.ID, *result.User.SchoolID)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
}

func TestAuthService_Register_NoSchoolMatch(t *testing.T) {
	authService, _, _ := setupAuthServiceTest(t)

	result, err := authService.Register("jordan@gmail.com", "password123", "Jordan")
	require.NoError(t, err)

	assert.Nil(t, result.School)
	assert.Nil(t, result.User.SchoolID)
}

func TestAuthService_Register_InvalidEmail(t *testing.T) {
	authService, _, _ := setupAuthServiceTest(t)

	_, err := authService.Register("not-an-email", "password123", "Jordan")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService, _, _ := setupAuthServiceTest(t)

	_, err := authService.Register("jordan@gmail.com", "password123", "Jordan")
	require.NoError(t, err)

	_, err = authService.Register("jordan@gmail.com", "password456", "Jordan Again")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Register_Validation(t *testing.T) {
	authService, _, _ := setupAuthServiceTest(t)

	_, err := authService.Register("", "", "")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "email")
	assert.Contains(t, validationErr.Fields, "password")
	assert.Contains(t, validationErr.Fields, "name")
}

func TestAuthService_Login(t *testing.T) {
	authService, _, _ := setupAuthServiceTest(t)

	_, err := authService.Register("jordan@gmail.com", "password123", "Jordan")
	require.NoError(t, err)

	user, tokens, err := authService.Login("jordan@gmail.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "jordan@gmail.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService, _, _ := setupAuthServiceTest(t)

	_, err := authService.Register("jordan@gmail.com", "password123", "Jordan")
	require.NoError(t, err)

	_, _, err = authService.Login("jordan@gmail.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	authService, _, _ := setupAuthServiceTest(t)

	_, _, err := authService.Login("nobody@gmail.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RefreshTokens(t *testing.T) {
	authService, _, _ := setupAuthServiceTest(t)

	result, err := authService.Register("jordan@gmail.com", "password123", "Jordan")
	require.NoError(t, err)

	tokens, err := authService.RefreshTokens(result.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestAuthService_RefreshTokens_Invalid(t *testing.T) {
	authService, _, _ := setupAuthServiceTest(t)

	_, err := authService.RefreshTokens("garbage-token")
	assert.Error(t, err)
}
