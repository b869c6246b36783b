package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/haisanviet/backoffice-go/internal/domain/auth"
	"github.com/haisanviet/backoffice-go/internal/handler/http/response"
	"github.com/haisanviet/backoffice-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.Service
}

func NewAuthHandler(jwtService jwt.Service, authService auth.Service) AuthHandler {
	return &AuthHandlerImpl{jwtService: jwtService, authService: authService}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	refreshTokenCookie := a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.ExpiresAt)
	http.SetCookie(w, refreshTokenCookie)
	response.Created(w, "User logged in successfully", tokenResponse)
}

// RefreshToken implements AuthHandler.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshToken := refreshTokenFromRequest(r)
	if refreshToken == "" {
		response.HandleError(w, auth.ErrRefreshTokenInvalid)
		return
	}

	tokenResponse, err := a.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		slog.Error("RefreshToken service error", "error", err)
		response.HandleError(w, err)
		return
	}

	refreshTokenCookie := a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.ExpiresAt)
	http.SetCookie(w, refreshTokenCookie)
	response.Success(w, tokenResponse)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken := refreshTokenFromRequest(r)
	if refreshToken != "" {
		if err := a.authService.Logout(r.Context(), refreshToken); err != nil {
			slog.Error("Logout service error", "error", err)
		}
	}

	// Expire the cookie regardless of token state
	cookie := a.jwtService.RefreshTokenCookie("", 0)
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// refreshTokenFromRequest prefers the cookie, then the JSON body.
func refreshTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var req auth.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}
