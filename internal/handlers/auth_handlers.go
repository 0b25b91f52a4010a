package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/devcampdir/api/internal/auth"
	"github.com/devcampdir/api/internal/config"
	"github.com/devcampdir/api/internal/constants"
	"github.com/devcampdir/api/internal/models"
	"github.com/devcampdir/api/internal/utils"
)

// AuthHandler handles authentication-related routes
type AuthHandler struct {
	authService AuthServiceInterface
	appCfg      *config.AppSettings
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AuthServiceInterface, appCfg *config.AppSettings) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{
		authService: authService,
		appCfg:      appCfg,
	}
}

// sendTokenAndCookie issues a session token for the user, sets it as the
// session cookie, and writes {success, token}. The Secure flag is only set
// in production so local development over plain HTTP still works.
func (h *AuthHandler) sendTokenAndCookie(w http.ResponseWriter, status int, user *models.User) {
	token, expiresAt, err := h.authService.IssueToken(user)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     constants.AuthTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.appCfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
	})

	utils.TokenJSON(w, status, token)
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg models.RegisterRequest
	if err := utils.DecodeAndValidate(r, &reg); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.authService.Register(r.Context(), &reg)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	h.sendTokenAndCookie(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.LoginRequest
	if err := utils.DecodeAndValidate(r, &creds); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.authService.Login(r.Context(), &creds)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	h.sendTokenAndCookie(w, http.StatusOK, user)
}

// Logout neutralizes the session cookie. The replacement cookie holds the
// literal value "none" and expires within seconds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.AuthTokenCookie,
		Value:    "none",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.appCfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(constants.LogoutCookieTTL),
	})

	utils.JSON(w, http.StatusOK, struct{}{})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Error(w, constants.StatusUnauthorized, constants.MsgAuthRequired)
		return
	}

	user, err := h.authService.GetUser(r.Context(), userID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, user)
}

// ForgotPassword starts the password reset flow. The reset URL in the email
// points back at this server, derived from the incoming request.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	scheme := "http"
	if r.TLS != nil || h.appCfg.IsProduction() {
		scheme = "https"
	}
	urlBase := fmt.Sprintf("%s://%s", scheme, r.Host)

	if err := h.authService.ForgotPassword(r.Context(), req.Email, urlBase); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.MessageJSON(w, http.StatusOK, constants.MsgResetEmailSent)
}

// ResetPassword consumes a reset token from the URL and sets a new password.
// On success the user is logged in immediately.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	plainToken := chi.URLParam(r, constants.ParamResetToken)
	if plainToken == "" {
		utils.Error(w, constants.StatusBadRequest, constants.MsgInvalidResetToken)
		return
	}

	var req models.ResetPasswordRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.authService.ResetPassword(r.Context(), plainToken, &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	h.sendTokenAndCookie(w, http.StatusOK, user)
}

// UpdateMe updates the authenticated user's name/email. Requests carrying
// password fields are rejected with a pointer to the password route.
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Error(w, constants.StatusUnauthorized, constants.MsgAuthRequired)
		return
	}

	var update models.ProfileUpdate
	if err := utils.DecodeAndValidate(r, &update); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.authService.UpdateProfile(r.Context(), userID, &update)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, user)
}

// UpdatePassword changes the authenticated user's password, re-issuing the
// session token on success.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Error(w, constants.StatusUnauthorized, constants.MsgAuthRequired)
		return
	}

	var req models.PasswordUpdateRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.authService.UpdatePassword(r.Context(), userID, &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	h.sendTokenAndCookie(w, http.StatusOK, user)
}
