package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/servicedesk/internal/application/auth/usecases"
	"github.com/orris-inc/servicedesk/internal/application/user/dto"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

const tokenTypeBearer = "Bearer"

type AuthHandler struct {
	loginUseCase          loginUseCase
	registerUseCase       registerUseCase
	refreshTokenUseCase   refreshTokenUseCase
	changePasswordUseCase changePasswordUseCase
	getCurrentUserUseCase getCurrentUserUseCase
	logger                logger.Interface
}

func NewAuthHandler(
	loginUC loginUseCase,
	registerUC registerUseCase,
	refreshTokenUC refreshTokenUseCase,
	changePasswordUC changePasswordUseCase,
	getCurrentUserUC getCurrentUserUseCase,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		loginUseCase:          loginUC,
		registerUseCase:       registerUC,
		refreshTokenUseCase:   refreshTokenUC,
		changePasswordUseCase: changePasswordUC,
		getCurrentUserUseCase: getCurrentUserUC,
		logger:                logger,
	}
}

// LoginRequest is checked by the use case so malformed credentials get the
// same 401 as wrong ones.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8,max=72"`
	Name       string `json:"name" binding:"required,min=1,max=100"`
	TenantCode string `json:"tenant_code" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// TokenResponse is returned by login, register and refresh.
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
	User         *dto.UserDTO `json:"user"`
}

func toTokenResponse(result *usecases.AuthResult) *TokenResponse {
	return &TokenResponse{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    result.Tokens.ExpiresIn,
		User:         result.User,
	}
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse{data=TokenResponse}
// @Failure 401 {object} utils.APIResponse "Invalid email or password"
// @Failure 403 {object} utils.APIResponse "Account is not active"
// @Failure 429 {object} utils.APIResponse "Too many attempts"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for login", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", toTokenResponse(result))
}

// Register godoc
// @Summary Register an end user in a tenant
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration"
// @Success 201 {object} utils.APIResponse{data=TokenResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), usecases.RegisterCommand{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		TenantCode: req.TenantCode,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toTokenResponse(result), "Registration successful")
}

// RefreshToken godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} utils.APIResponse{data=TokenResponse}
// @Failure 401 {object} utils.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.refreshTokenUseCase.Execute(c.Request.Context(), usecases.RefreshTokenCommand{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token refreshed", toTokenResponse(result))
}

// GetCurrentUser godoc
// @Summary Current user with roles and tenant
// @Security Bearer
// @Tags auth
// @Produce json
// @Success 200 {object} utils.APIResponse{data=usecases.CurrentUserResult}
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	actor, err := utils.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getCurrentUserUseCase.Execute(c.Request.Context(), actor.UserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	actor, err := utils.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	if err := h.changePasswordUseCase.Execute(c.Request.Context(), usecases.ChangePasswordCommand{
		UserID:          actor.UserID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password changed successfully", nil)
}

// Logout is stateless: tokens are not tracked server side, the client drops them.
func (h *AuthHandler) Logout(c *gin.Context) {
	if actor, err := utils.CurrentActor(c); err == nil {
		h.logger.Infow("user logged out", "user_id", actor.UserID)
	}
	utils.NoContentResponse(c)
}
