package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/healthtrack/internal/apperror"
	"github.com/sakif/healthtrack/internal/auth"
	"github.com/sakif/healthtrack/internal/model"
	"github.com/sakif/healthtrack/internal/service"
)

// AuthHandler handles registration, login and logout.
//
//   - HandleRegister → create an account
//   - HandleLogin    → check credentials, issue a JWT (body + HttpOnly cookie)
//   - HandleLogout   → clear the cookie
type AuthHandler struct {
	auth         *service.AuthService
	tokenTTL     time.Duration
	cookieSecure bool
	logger       *slog.Logger
}

// NewAuthHandler creates an AuthHandler. cookieSecure should be true
// whenever the API is served over HTTPS.
func NewAuthHandler(authService *service.AuthService, tokenTTL time.Duration, cookieSecure bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:         authService,
		tokenTTL:     tokenTTL,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    *model.User `json:"user"`
}

// HandleRegister creates a user account.
//
// HTTP: POST /api/auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(w, r)
	if err != nil {
		h.logger.Warn("invalid request body", slog.String("path", r.URL.Path))
		writeError(w, err)
		return
	}

	contact := b.object("contactInfo")
	user, err := h.auth.Register(r.Context(), service.RegisterInput{
		Name:            b.str("name"),
		Email:           b.str("email"),
		Password:        b.str("password"),
		Age:             b.integer("age"),
		Gender:          b.str("gender"),
		Height:          b.number("height"),
		Weight:          b.number("weight"),
		MedicalHistory:  b.list("medicalHistory"),
		FitnessGoals:    b.list("fitnessGoals"),
		PregnancyStatus: b.flag("pregnancyStatus"),
		ContactInfo: model.ContactInfo{
			Phone:            contact.str("phone"),
			Address:          contact.str("address"),
			EmergencyContact: contact.str("emergencyContact"),
		},
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "User registered successfully.", user.ID)
}

// HandleLogin checks credentials and issues an access token.
//
// HTTP: POST /api/auth/login
//
// The token goes into the response body for API clients and into an
// HttpOnly cookie for the browser, where JavaScript cannot read it.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(w, r)
	if err != nil {
		h.logger.Warn("invalid request body", slog.String("path", r.URL.Path))
		writeError(w, err)
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Email:    b.str("email"),
		Password: b.str("password"),
	})
	if err != nil {
		if errors.Is(err, apperror.ErrUnauthorized) {
			h.logger.Info("login rejected", slog.String("remoteAddr", r.RemoteAddr))
		}
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful.",
		Token:   result.Token,
		User:    result.User,
	})
}

// HandleLogout clears the session cookie. Tokens are stateless, so a token
// copied elsewhere stays valid until it expires.
//
// HTTP: POST /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // delete now
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	writeMessage(w, http.StatusOK, "Logged out successfully.", "")
}
