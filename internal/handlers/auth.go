package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskflow/internal/apperror"
	"taskflow/internal/config"
	"taskflow/internal/dto"
	"taskflow/internal/middleware"
	"taskflow/internal/models"
	"taskflow/internal/store"
	"taskflow/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	store store.Store
	jwt   *config.JWTConfig
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(s store.Store, jwtCfg *config.JWTConfig) *AuthHandler {
	return &AuthHandler{store: s, jwt: jwtCfg}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user account with username, email, and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.AuthResponse "User created successfully"
// @Failure 400 {object} apperror.ErrorResponse "Invalid request or user already exists"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		utils.WriteError(w, r, apperror.NewValidationError("Username, email, and password are required", nil))
		return
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteError(w, r, apperror.NewInternalError("Failed to hash password", err))
		return
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.store.InsertUser(r.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			utils.WriteError(w, r, apperror.NewConflictError("User already exists", nil))
			return
		}
		utils.WriteError(w, r, apperror.NewDatabaseError("Failed to create user", err))
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, h.jwt)
	if err != nil {
		utils.WriteError(w, r, apperror.NewInternalError("Failed to generate token", err))
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.AuthResponse{
		Message: "User created successfully",
		Token:   token,
		User: dto.UserResponse{
			ID:       user.ID.String(),
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} apperror.ErrorResponse "Invalid credentials"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		utils.WriteError(w, r, apperror.NewValidationError("Email and password are required", nil))
		return
	}

	// Unknown email and wrong password return the same generic error so the
	// response does not reveal which check failed.
	user, err := h.store.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, r, apperror.NewInvalidCredentialsError("Invalid credentials", nil))
			return
		}
		utils.WriteError(w, r, apperror.NewDatabaseError("Failed to get user", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.WriteError(w, r, apperror.NewInvalidCredentialsError("Invalid credentials", nil))
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, h.jwt)
	if err != nil {
		utils.WriteError(w, r, apperror.NewInternalError("Failed to generate token", err))
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User: dto.UserResponse{
			ID:       user.ID.String(),
			Username: user.Username,
			Email:    user.Email,
		},
	})
}
