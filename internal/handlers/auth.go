package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Pranshu-J/Open-Hedge/internal/common"
	"github.com/Pranshu-J/Open-Hedge/internal/portfolio"
)

// SessionCookie is the cookie holding the backend-issued session JWT.
const SessionCookie = "openhedge_session"

// JWTClaims holds the decoded JWT payload claims.
type JWTClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Iss   string `json:"iss"`
	Iat   int64  `json:"iat"`
	Exp   int64  `json:"exp"`
}

// ValidateJWT validates a JWT token string.
// If secret is non-empty, it verifies the HMAC-SHA256 signature.
// If secret is empty, signature verification is skipped (dev mode).
// Always checks expiry.
func ValidateJWT(token string, secret []byte) (*JWTClaims, error) {
	parts := strings.SplitN(token, ".", 4)
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid JWT format: expected 3 parts, got %d", len(parts))
	}

	if len(secret) > 0 {
		sigInput := parts[0] + "." + parts[1]
		mac := hmac.New(sha256.New, secret)
		mac.Write([]byte(sigInput))
		expectedSig := mac.Sum(nil)

		actualSig, err := base64.RawURLEncoding.DecodeString(parts[2])
		if err != nil {
			return nil, fmt.Errorf("invalid JWT signature encoding: %w", err)
		}

		if !hmac.Equal(expectedSig, actualSig) {
			return nil, fmt.Errorf("invalid JWT signature")
		}
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid JWT payload encoding: %w", err)
	}

	var claims JWTClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("invalid JWT payload JSON: %w", err)
	}

	if claims.Exp == 0 {
		return nil, fmt.Errorf("JWT missing exp claim")
	}
	if claims.Exp < time.Now().Unix() {
		return nil, fmt.Errorf("JWT expired")
	}

	return &claims, nil
}

// IsLoggedIn checks the session cookie and validates the JWT.
// Returns (true, claims) if valid, (false, nil) otherwise.
func IsLoggedIn(r *http.Request, secret []byte) (bool, *JWTClaims) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return false, nil
	}

	claims, err := ValidateJWT(cookie.Value, secret)
	if err != nil {
		return false, nil
	}

	return true, claims
}

// AuthHandler handles login, OAuth callback, and logout. Sign-in itself is
// owned by the backend's OAuth provider; this handler only forwards to it
// and turns the returned token into a session cookie.
type AuthHandler struct {
	logger      *common.Logger
	backendURL  string
	callbackURL string
	jwtSecret   []byte
	profiles    *portfolio.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(logger *common.Logger, backendURL, callbackURL string, jwtSecret []byte, profiles *portfolio.Service) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		backendURL:  backendURL,
		callbackURL: callbackURL,
		jwtSecret:   jwtSecret,
		profiles:    profiles,
	}
}

// HandleLogin redirects to the backend's OAuth authorize endpoint.
// GET /login -> 302 to {backend}/auth/v1/authorize?redirect_to={callbackURL}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	redirectURL := h.backendURL + "/auth/v1/authorize?redirect_to=" + url.QueryEscape(h.callbackURL)
	http.Redirect(w, r, redirectURL, http.StatusFound)
}

// HandleCallback handles the OAuth callback from the backend.
// GET /auth/callback?token=<jwt> -> validates the token, bootstraps the
// profile document on first login, sets the session cookie, redirects to /.
func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Redirect(w, r, "/?error=auth_failed", http.StatusFound)
		return
	}

	claims, err := ValidateJWT(token, h.jwtSecret)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Rejected callback token")
		http.Redirect(w, r, "/?error=auth_failed", http.StatusFound)
		return
	}

	if h.profiles != nil {
		if _, err := h.profiles.EnsureProfile(r.Context(), claims.Sub, claims.Email); err != nil {
			// Login still succeeds; the portfolio view retries the bootstrap.
			h.logger.Warn().Err(err).Str("user_id", claims.Sub).Msg("Profile bootstrap failed during login")
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusFound)
}

// HandleLogout clears the session cookie.
// POST /api/auth/logout -> {"status":"ok"}
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
