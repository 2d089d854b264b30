package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/financebook/financebook/internal/core/domain"
	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/dto"
	"github.com/financebook/financebook/internal/middleware"
	"github.com/financebook/financebook/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService   portssvc.UserSvcFacade
	tokenService  portssvc.TokenSvcFacade
	googleService portssvc.GoogleAuthSvcFacade
	cfg           *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config, services *portssvc.ServiceContainer) *AuthHandler {
	return &AuthHandler{
		userService:   services.User,
		tokenService:  services.Token,
		googleService: services.GoogleAuth,
		cfg:           cfg,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(cfg, services)

	// 5 attempts per minute per IP on the credential endpoints.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/google", limitMiddleware, h.GoogleLogin)
		auth.POST("/google/exchange-code", limitMiddleware, h.GoogleExchangeCode)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}
}

// issueTokens generates the access token response and rotates the refresh
// token cookie.
func (h *AuthHandler) issueTokens(c *gin.Context, user *domain.User) (*dto.LoginResponse, error) {
	ctx := c.Request.Context()

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	// The cookie carries "userID:token" so the refresh endpoint can locate
	// the stored hash without a session table.
	cookieValue := fmt.Sprintf("%s:%s", user.UserID, refreshToken)
	maxAge := int(time.Until(refreshExpiry).Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, cookieValue, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)

	return &dto.LoginResponse{
		Token:     accessToken,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

// Register godoc
// @Summary Register new account
// @Description Creates a local account; the registering user becomes the business Owner.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		respondError(c, err, "Failed to generate tokens")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Sign in
// @Description Authenticates email and password, returning an access token. The refresh token travels in an HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse "Too many attempts"
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		respondError(c, err, "Failed to generate tokens")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GoogleLogin godoc
// @Summary Sign in with Google
// @Description Verifies a Google ID token obtained by the client and signs the user in, creating an account on first use.
// @Tags auth
// @Accept json
// @Produce json
// @Param google body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [post]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	identity, err := h.googleService.VerifyIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err, "Failed to verify Google token")
		return
	}

	user, err := h.userService.GetOrCreateGoogleUser(c.Request.Context(), identity.ProviderUserID, identity.Email, identity.Name)
	if err != nil {
		respondError(c, err, "Failed to sign in with Google")
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		respondError(c, err, "Failed to generate tokens")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GoogleExchangeCode godoc
// @Summary Sign in with Google (web flow)
// @Description Redeems an OAuth authorization code with Google and signs the user in, creating an account on first use.
// @Tags auth
// @Accept json
// @Produce json
// @Param exchange body dto.GoogleExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Google unreachable"
// @Router /auth/google/exchange-code [post]
func (h *AuthHandler) GoogleExchangeCode(c *gin.Context) {
	var req dto.GoogleExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	identity, err := h.googleService.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err, "Failed to exchange authorization code")
		return
	}

	user, err := h.userService.GetOrCreateGoogleUser(c.Request.Context(), identity.ProviderUserID, identity.Email, identity.Name)
	if err != nil {
		respondError(c, err, "Failed to sign in with Google")
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		respondError(c, err, "Failed to generate tokens")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Refresh the access token
// @Description Rotates the refresh token cookie and returns a fresh access token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	cookie, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token missing"})
		return
	}
	userID, rawToken, found := strings.Cut(cookie, ":")
	if !found || userID == "" || rawToken == "" {
		h.clearRefreshCookie(c)
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token malformed"})
		return
	}

	user, err := h.tokenService.ValidateRefreshToken(c.Request.Context(), userID, rawToken)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Refresh token rejected",
			slog.String("user_id", userID), slog.String("error", err.Error()))
		h.clearRefreshCookie(c)
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		respondError(c, err, "Failed to generate tokens")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Sign out
// @Description Invalidates the stored refresh token and clears the cookie.
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(h.cfg.RefreshTokenCookieName); err == nil {
		if userID, rawToken, found := strings.Cut(cookie, ":"); found && userID != "" && rawToken != "" {
			ctx := c.Request.Context()
			// Only the holder of the live refresh token may invalidate the
			// stored session; a forged cookie must not log someone else out.
			if _, err := h.tokenService.ValidateRefreshToken(ctx, userID, rawToken); err != nil {
				middleware.GetLoggerFromCtx(ctx).Warn("Logout with unverifiable refresh token",
					slog.String("user_id", userID), slog.String("error", err.Error()))
			} else if err := h.userService.ClearRefreshToken(ctx, userID); err != nil {
				// Best effort past this point: the cookie is cleared regardless.
				middleware.GetLoggerFromCtx(ctx).Warn("Failed to clear refresh token",
					slog.String("user_id", userID), slog.String("error", err.Error()))
			}
		}
	}
	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}
