package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"taskboard/internal/handler"
	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func setupUserRouter() (*gin.Engine, *MockUserStore) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	mockRepo := new(MockUserStore)
	userHandler := handler.NewUserHandler(mockRepo, "test-secret", 24*time.Hour)

	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)

	return r, mockRepo
}

func TestRegister_Success(t *testing.T) {
	// Arrange
	router, mockRepo := setupUserRouter()

	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	// Act
	resp := postJSON(router, "/register", handler.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
		Role:     model.RoleWorker,
	})

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)

	var response handler.AuthResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, "Test User", response.User.Name)
	assert.Equal(t, model.RoleWorker, response.User.Role)

	mockRepo.AssertExpectations(t)
}

func TestRegister_InvalidRole(t *testing.T) {
	// Arrange
	router, mockRepo := setupUserRouter()

	// Act
	resp := postJSON(router, "/register", handler.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
		Role:     "admin",
	})

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_UserAlreadyExists(t *testing.T) {
	// Arrange
	router, mockRepo := setupUserRouter()

	existingUser := &model.User{
		ID:             uuid.New(),
		Email:          "existing@example.com",
		HashedPassword: "hashed_password",
		Name:           "Existing User",
		Role:           model.RoleWorker,
	}
	mockRepo.On("FindByEmail", mock.Anything, "existing@example.com").Return(existingUser, nil)

	// Act
	resp := postJSON(router, "/register", handler.RegisterRequest{
		Name:     "Test User",
		Email:    "existing@example.com",
		Password: "password123",
		Role:     model.RoleWorker,
	})

	// Assert
	assert.Equal(t, http.StatusConflict, resp.Code)

	var response map[string]string
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "User with this email already exists", response["error"])

	mockRepo.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	// Arrange
	router, mockRepo := setupUserRouter()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	testUser := &model.User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: string(hashedPassword),
		Name:           "Test User",
		Role:           model.RoleDirector,
	}
	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(testUser, nil)

	// Act
	resp := postJSON(router, "/login", handler.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.AuthResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, testUser.ID.String(), response.User.ID)
	assert.Equal(t, model.RoleDirector, response.User.Role)

	mockRepo.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	// Arrange
	router, mockRepo := setupUserRouter()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	testUser := &model.User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: string(hashedPassword),
		Name:           "Test User",
		Role:           model.RoleWorker,
	}
	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(testUser, nil)

	// Act
	resp := postJSON(router, "/login", handler.LoginRequest{
		Email:    "test@example.com",
		Password: "wrong-password",
	})

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	// Arrange
	router, mockRepo := setupUserRouter()
	mockRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	// Act
	resp := postJSON(router, "/login", handler.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
