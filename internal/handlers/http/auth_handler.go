package http

import (
	errs "errors"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-admin/internal/domain/errors"
	"github.com/rafabene/avantpro-admin/internal/handlers/dto"
	"github.com/rafabene/avantpro-admin/internal/handlers/inertia"
	"github.com/rafabene/avantpro-admin/internal/handlers/middleware"
	"github.com/rafabene/avantpro-admin/internal/services"
)

// AuthHandler lida com login e logout
type AuthHandler struct {
	authService  *services.AuthService
	authz        *services.AuthorizationService
	sessions     *scs.SessionManager
	pages        *inertia.Renderer
	secureCookie bool
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(
	authService *services.AuthService,
	authz *services.AuthorizationService,
	sessions *scs.SessionManager,
	pages *inertia.Renderer,
	secureCookie bool,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		authz:        authz,
		sessions:     sessions,
		pages:        pages,
		secureCookie: secureCookie,
	}
}

// Login autentica e grava o token em cookie HttpOnly
//
//	@Summary	Autentica um usuário
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		credentials	body		dto.LoginRequest	true	"Credenciais"
//	@Success	200			{object}	dto.LoginResponse
//	@Failure	401			{object}	dto.ErrorResponse
//	@Failure	422			{object}	dto.ErrorResponse
//	@Router		/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		dto.ValidationErrorResponseI18n(c, dto.ValidationErrors(c, err)).Respond(c)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		if errs.Is(err, errors.ErrInvalidCredentials) || errs.Is(err, errors.ErrInactiveUser) {
			dto.UnauthorizedErrorResponseI18n(c, err.Error()).Respond(c)
			return
		}
		internalError(c, err)
		return
	}

	if err := h.sessions.RenewToken(c.Request.Context()); err != nil {
		internalError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookieName, result.Token, int(time.Until(result.ExpiresAt).Seconds()), "/", "", h.secureCookie, true)

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      dto.ToUserResponse(result.User, nil),
	})
}

// Logout apaga o cookie do token e renova a sessão
//
//	@Summary	Encerra a sessão
//	@Tags		auth
//	@Success	302
//	@Router		/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.RenewToken(c.Request.Context()); err != nil {
		internalError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookieName, "", -1, "/", "", h.secureCookie, true)

	h.pages.Flash(c, inertia.FlashSuccess, dto.T(c, "flash.logged_out"))
	h.pages.Redirect(c, middleware.LoginPath)
}

// SharedAuth calcula a prop "auth" das páginas: o usuário autenticado e
// suas habilidades, usadas pelo frontend para esconder ações negadas
func (h *AuthHandler) SharedAuth(c *gin.Context) any {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return dto.AuthProps{Permissions: []string{}}
	}

	abilities, err := h.authz.Abilities(c.Request.Context(), identity.UserID)
	if err != nil {
		_ = c.Error(err)
		abilities = nil
	}

	return dto.AuthProps{
		User:        &dto.AuthUser{ID: identity.UserID, Name: identity.Name, Email: identity.Email},
		Permissions: dto.NonNil(abilities),
	}
}
