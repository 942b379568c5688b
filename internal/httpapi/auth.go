package httpapi

import (
	"errors"
	"net/http"
	"time"

	"bakery-platform/internal/auth"
	"bakery-platform/internal/otp"
	"bakery-platform/internal/users"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login validates credentials and issues a token pair.
func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Username == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "username and password required")
		return
	}

	u, err := h.Users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrBadCredentials) {
			fail(c, http.StatusUnauthorized, "invalid username or password")
			return
		}
		fail(c, http.StatusInternalServerError, "login failed")
		return
	}

	pair, err := h.Auth.IssuePair(time.Now(), u.ID, u.BranchID, u.Role)
	if err != nil {
		fail(c, http.StatusInternalServerError, "token issuance failed")
		return
	}

	respond(c, http.StatusOK, "Login successful", gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"user":          u.Profile(),
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh trades a valid refresh token for a new pair.
func (h Handlers) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		fail(c, http.StatusBadRequest, "refresh_token required")
		return
	}

	claims, err := h.Auth.Verify(req.RefreshToken, auth.TokenTypeRefresh, time.Now())
	if err != nil {
		fail(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	// Role is reloaded from storage; refresh tokens do not carry it.
	u, err := h.Users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		fail(c, http.StatusUnauthorized, "user no longer exists")
		return
	}

	pair, err := h.Auth.IssuePair(time.Now(), u.ID, u.BranchID, u.Role)
	if err != nil {
		fail(c, http.StatusInternalServerError, "token issuance failed")
		return
	}
	respond(c, http.StatusOK, "Token refreshed", gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// Profile returns the authenticated user.
func (h Handlers) Profile(c *gin.Context) {
	uid, err := auth.UserID(c.Request.Context())
	if err != nil {
		fail(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	u, err := h.Users.GetByID(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusNotFound, "user not found")
		return
	}
	respond(c, http.StatusOK, "Profile fetched", u.Profile())
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword lets an authenticated user rotate their own password.
func (h Handlers) ChangePassword(c *gin.Context) {
	uid, err := auth.UserID(c.Request.Context())
	if err != nil {
		fail(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		fail(c, http.StatusBadRequest, "current_password and new_password required")
		return
	}
	if len(req.NewPassword) < 8 {
		fail(c, http.StatusUnprocessableEntity, "new password must be at least 8 characters")
		return
	}
	if req.NewPassword == req.CurrentPassword {
		fail(c, http.StatusBadRequest, "new password must be different from current password")
		return
	}

	u, err := h.Users.GetByID(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusNotFound, "user not found")
		return
	}
	if _, err := h.Users.Authenticate(c.Request.Context(), u.Username, req.CurrentPassword); err != nil {
		fail(c, http.StatusBadRequest, "current password is incorrect")
		return
	}

	if err := h.Users.UpdatePassword(c.Request.Context(), uid, req.NewPassword); err != nil {
		fail(c, http.StatusInternalServerError, "password update failed")
		return
	}
	respond(c, http.StatusOK, "Password updated successfully. Please log in again.", nil)
}

type forgotPasswordRequest struct {
	Username string `json:"username"`
}

// ForgotPassword issues an OTP for the account and emits a reset event for
// the downstream mail/WhatsApp consumers. The response does not reveal
// whether the username exists.
func (h Handlers) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
		fail(c, http.StatusBadRequest, "username required")
		return
	}

	if h.AllowReset != nil {
		ok, err := h.AllowReset(c.Request.Context(), req.Username)
		if err != nil {
			fail(c, http.StatusInternalServerError, "reset request failed")
			return
		}
		if !ok {
			fail(c, http.StatusTooManyRequests, "too many reset requests, try again later")
			return
		}
	}

	const accepted = "If the account exists, a reset code has been sent"

	u, err := h.Users.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		respond(c, http.StatusOK, accepted, nil)
		return
	}

	if _, err := h.OTP.Issue(c.Request.Context(), u.ID); err != nil {
		fail(c, http.StatusInternalServerError, "reset request failed")
		return
	}
	if err := h.Notify.PasswordReset(c.Request.Context(), u.ID); err != nil {
		fail(c, http.StatusInternalServerError, "reset request failed")
		return
	}
	respond(c, http.StatusOK, accepted, nil)
}

type resetPasswordRequest struct {
	Username    string `json:"username"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// ResetPassword completes the OTP flow by setting a new password.
func (h Handlers) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Username == "" || req.Code == "" || req.NewPassword == "" {
		fail(c, http.StatusBadRequest, "username, code and new_password required")
		return
	}
	if len(req.NewPassword) < 8 {
		fail(c, http.StatusUnprocessableEntity, "new password must be at least 8 characters")
		return
	}

	u, err := h.Users.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid reset code")
		return
	}

	if err := h.OTP.Validate(c.Request.Context(), u.ID, req.Code); err != nil {
		if errors.Is(err, otp.ErrMismatch) || errors.Is(err, otp.ErrExpired) {
			fail(c, http.StatusBadRequest, "invalid reset code")
			return
		}
		fail(c, http.StatusInternalServerError, "reset failed")
		return
	}

	if err := h.Users.UpdatePassword(c.Request.Context(), u.ID, req.NewPassword); err != nil {
		fail(c, http.StatusInternalServerError, "reset failed")
		return
	}
	respond(c, http.StatusOK, "Password updated successfully. Please log in again.", nil)
}
