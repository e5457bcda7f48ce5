package auth

import (
	"net/http"
	"strings"

	"github.com/krushit1307/HRMS/internal/middleware"
	"github.com/krushit1307/HRMS/internal/shared/apperror"
	"github.com/krushit1307/HRMS/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

type Handler struct {
	service       Service
	secureCookies bool
	accessMaxAge  int
	refreshMaxAge int
}

type HandlerOption func(*Handler)

// WithSecureCookies marks session cookies Secure. Turn it on in production.
func WithSecureCookies(secure bool) HandlerOption {
	return func(h *Handler) { h.secureCookies = secure }
}

// WithCookieMaxAge sets the cookie lifetimes in seconds.
func WithCookieMaxAge(access, refresh int) HandlerOption {
	return func(h *Handler) {
		if access > 0 {
			h.accessMaxAge = access
		}
		if refresh > 0 {
			h.refreshMaxAge = refresh
		}
	}
}

func NewHandler(s Service, opts ...HandlerOption) *Handler {
	h := &Handler{
		service:       s,
		accessMaxAge:  15 * 60,
		refreshMaxAge: 7 * 24 * 3600,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// isWebClient reports whether tokens should also be set as cookies. An explicit
// X-Client-Type wins over the User-Agent.
func isWebClient(c *gin.Context) bool {
	if ct := strings.TrimSpace(c.GetHeader("X-Client-Type")); ct != "" {
		return strings.EqualFold(ct, "web")
	}
	return strings.Contains(c.GetHeader("User-Agent"), "Mozilla")
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) setSessionCookies(c *gin.Context, access, refresh string, maxAgeAccess, maxAgeRefresh int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     accessCookie,
		Value:    access,
		Path:     "/",
		MaxAge:   maxAgeAccess,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     refreshCookie,
		Value:    refresh,
		Path:     "/",
		MaxAge:   maxAgeRefresh,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	access, refresh, user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if isWebClient(c) {
		h.setSessionCookies(c, access, refresh, h.accessMaxAge, h.refreshMaxAge)
	}
	response.Success(c, http.StatusOK, gin.H{
		"user":          user,
		"access_token":  access,
		"refresh_token": refresh,
	}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	user, err := h.service.GetMe(c.Request.Context(), actor.UserID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	h.setSessionCookies(c, "", "", -1, -1)
	response.Success(c, http.StatusOK, "Logout success.", nil)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, user, nil)
}

// RefreshToken reads the refresh token from the cookie for web clients and from
// the JSON body otherwise.
func (h *Handler) RefreshToken(c *gin.Context) {
	web := isWebClient(c)

	var refreshToken string
	if web {
		cookie, err := c.Cookie(refreshCookie)
		if err != nil || cookie == "" {
			response.Error(c, http.StatusUnauthorized, "NO_REFRESH_TOKEN", "Missing refresh token", nil)
			return
		}
		refreshToken = cookie
	} else {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Refresh token is required", nil)
			return
		}
		refreshToken = req.RefreshToken
	}

	access, refresh, user, err := h.service.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if web {
		h.setSessionCookies(c, access, refresh, h.accessMaxAge, h.refreshMaxAge)
	}
	response.Success(c, http.StatusOK, gin.H{
		"user":          user,
		"access_token":  access,
		"refresh_token": refresh,
	}, nil)
}
