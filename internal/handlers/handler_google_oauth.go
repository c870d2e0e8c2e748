package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fintrack/fintrack_app/internal/core/ports/services"
	"github.com/fintrack/fintrack_app/internal/dto"
	"github.com/fintrack/fintrack_app/internal/middleware"
	"github.com/fintrack/fintrack_app/internal/platform/config"
	"github.com/fintrack/fintrack_app/internal/utils"
	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauth_state"

// GoogleOAuthHandler handles the Google sign-in flows.
type GoogleOAuthHandler struct {
	auth *AuthHandler

	userService   portssvc.UserSvcFacade
	googleService portssvc.GoogleAuthSvcFacade
}

// NewGoogleOAuthHandler creates a new GoogleOAuthHandler.
func NewGoogleOAuthHandler(services *portssvc.ServiceContainer) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		auth:          NewAuthHandler(services.User, services.Token),
		userService:   services.User,
		googleService: services.GoogleAuth,
	}
}

// registerGoogleOAuthRoutes sets up the Google sign-in routes.
func registerGoogleOAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services)

	google := rg.Group("/api/v1/auth/google")
	{
		google.GET("/login", h.Login)
		google.GET("/callback", h.Callback)
		google.POST("", h.SignInWithIDToken)
	}
}

// Login godoc
// @Summary Begin Google sign-in
// @Description Redirects the browser to the Google consent page.
// @Tags auth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) Login(c *gin.Context) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		respondServiceError(c, err, "Failed to start Google sign-in")
		return
	}

	// State round-trips through a short-lived cookie to block CSRF on the
	// callback.
	c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleService.AuthCodeURL(state))
}

// Callback godoc
// @Summary Complete Google sign-in
// @Description Exchanges the authorization code, provisioning a user on first sign-in, and returns a token pair.
// @Tags auth
// @Produce json
// @Param state query string true "Anti-forgery state"
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) Callback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("Google OAuth state mismatch")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	email, name, err := h.googleService.ExchangeAndVerify(c.Request.Context(), c.Query("code"))
	if err != nil {
		respondServiceError(c, err, "Failed to verify Google sign-in")
		return
	}

	h.signIn(c, email, name)
}

// SignInWithIDToken godoc
// @Summary Google sign-in with an ID token
// @Description Verifies a client-obtained Google ID token and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param signin body dto.GoogleSignInRequest true "Google ID Token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [post]
func (h *GoogleOAuthHandler) SignInWithIDToken(c *gin.Context) {
	var req dto.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	email, name, err := h.googleService.VerifyIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		respondServiceError(c, err, "Failed to verify Google sign-in")
		return
	}

	h.signIn(c, email, name)
}

func (h *GoogleOAuthHandler) signIn(c *gin.Context, email string, name string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	user, err := h.userService.FindOrCreateGoogleUser(c.Request.Context(), email, name)
	if err != nil {
		respondServiceError(c, err, "Failed to resolve Google user")
		return
	}

	resp, err := h.auth.issueTokenPair(c, user)
	if err != nil {
		respondServiceError(c, err, "Failed to generate tokens")
		return
	}

	logger.Info("Google sign-in completed", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, resp)
}
