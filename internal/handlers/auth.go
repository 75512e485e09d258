package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	iauth "github.com/ivoicehq/ivoice-server/internal/auth"
	"github.com/ivoicehq/ivoice-server/internal/middleware"
	"github.com/ivoicehq/ivoice-server/internal/services"
	appErrors "github.com/ivoicehq/ivoice-server/pkg/errors"
	"github.com/ivoicehq/ivoice-server/pkg/metrics"
	"github.com/ivoicehq/ivoice-server/pkg/response"
)

// AuthHandler manages the signup, OTP verification, login, logout, and user
// directory flows.
type AuthHandler struct {
	auth *services.AuthService
	jwt  *iauth.JWTService
}

func NewAuthHandler(auth *services.AuthService, jwt *iauth.JWTService) *AuthHandler {
	return &AuthHandler{auth: auth, jwt: jwt}
}

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Avatar   string `json:"avatar"`
}

// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if !bindAndValidate(c, &req) {
		return
	}

	email, err := h.auth.Signup(c.Request.Context(), services.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if err != nil {
		if appErrors.FromError(err) == appErrors.ErrEmailTaken {
			metrics.Signups.WithLabelValues("conflict").Inc()
		} else {
			metrics.Signups.WithLabelValues("error").Inc()
		}
		response.Error(c, err)
		return
	}

	metrics.Signups.WithLabelValues("created").Inc()
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered. Please check your email for OTP.",
		"email":   email,
	})
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.auth.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		metrics.OTPVerifications.WithLabelValues("rejected").Inc()
		response.Error(c, err)
		return
	}

	metrics.OTPVerifications.WithLabelValues("verified").Inc()
	response.Message(c, http.StatusOK, "Email verified successfully. You can now login.")
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		response.Error(c, err)
		return
	}

	token, err := h.jwt.GenerateSessionToken(user.ID)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		response.Error(c, appErrors.ErrInternalServer.WithInternal(err))
		return
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()

	// HttpOnly + Secure + SameSite=None: the token travels only in the
	// cookie, never in the JSON body.
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.SessionCookieName, token, int(h.jwt.TTL().Seconds()), "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user.Profile(),
	})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	// Stateless tokens: the cookie is overwritten with an already-expired
	// value and no server-side revocation happens.
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", true, true)

	response.Message(c, http.StatusOK, "Logged out successfully")
}

// GET /api/auth/users
func (h *AuthHandler) ListUsers(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	profiles, err := h.auth.ListUsers(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}
