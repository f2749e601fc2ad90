package http

import (
	errs "errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-admin/internal/domain/errors"
	"github.com/rafabene/avantpro-admin/internal/handlers/dto"
	"github.com/rafabene/avantpro-admin/internal/handlers/inertia"
	"github.com/rafabene/avantpro-admin/internal/services"
)

const usersPath = "/users"

// UserHandler lida com requisições HTTP relacionadas a usuários
type UserHandler struct {
	userService *services.UserService
	pages       *inertia.Renderer
	limits      ListLimits
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService, pages *inertia.Renderer, limits ListLimits) *UserHandler {
	return &UserHandler{
		userService: userService,
		pages:       pages,
		limits:      limits,
	}
}

// Index lista usuários
//
//	@Summary	Lista usuários
//	@Tags		users
//	@Produce	json
//	@Param		search	query		string	false	"Busca por nome ou email"
//	@Param		limit	query		int		false	"Itens por página"	default(10)
//	@Param		page	query		int		false	"Página"			default(1)
//	@Success	200		{object}	inertia.Page
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/users [get]
func (h *UserHandler) Index(c *gin.Context) {
	query := dto.ListQueryFromRequest(c, h.limits.Default, h.limits.Max)

	listing, err := h.userService.ListUsers(c.Request.Context(), query)
	if err != nil {
		internalError(c, err)
		return
	}

	h.pages.Render(c, "User/List", gin.H{
		"users":     dto.NewPaginated(c, listing.Page, dto.ToUserListItems(listing.Page.Items)),
		"userCount": listing.Total,
		"filters":   gin.H{"search": query.Search, "limit": query.Limit},
	})
}

// Create mostra o formulário de criação
func (h *UserHandler) Create(c *gin.Context) {
	roles, err := h.userService.AssignableRoles(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	h.pages.Render(c, "User/Create", gin.H{
		"roles": dto.NonNil(dto.ToRoleResponses(roles)),
	})
}

// Store cria um usuário
//
//	@Summary	Cria um usuário com senha provisória e um role
//	@Tags		users
//	@Accept		json
//	@Param		user	body	dto.UserRequest	true	"Usuário"
//	@Success	302
//	@Failure	403	{object}	dto.ErrorResponse
//	@Router		/users [post]
func (h *UserHandler) Store(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidForm(c, h.pages, err, usersPath+"/create")
		return
	}

	if _, err := h.userService.CreateUser(c.Request.Context(), actor(c), req.ToInput()); err != nil {
		mutationFailed(c, h.pages, err, usersPath+"/create")
		return
	}

	h.pages.Flash(c, inertia.FlashSuccess, dto.T(c, "flash.user_created"))
	h.pages.Redirect(c, usersPath)
}

// Show mostra o usuário com roles e últimos logins
//
//	@Summary	Detalha um usuário
//	@Tags		users
//	@Produce	json
//	@Param		id	path		int	true	"ID do usuário"
//	@Success	200	{object}	inertia.Page
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/users/{id} [get]
func (h *UserHandler) Show(c *gin.Context) {
	id, ok := pathID(c, "User")
	if !ok {
		return
	}

	details, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		h.readFailed(c, err)
		return
	}

	logins, err := h.userService.RecentLogins(c.Request.Context(), id)
	if err != nil {
		internalError(c, err)
		return
	}

	h.pages.Render(c, "User/Show", gin.H{
		"user": dto.ToUserDetailResponse(details, logins),
	})
}

// Edit mostra o formulário de edição com os roles atuais
func (h *UserHandler) Edit(c *gin.Context) {
	id, ok := pathID(c, "User")
	if !ok {
		return
	}

	details, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		h.readFailed(c, err)
		return
	}

	roles, err := h.userService.AssignableRoles(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	h.pages.Render(c, "User/Edit", gin.H{
		"user":  dto.ToUserResponse(details.User, details.Roles),
		"roles": dto.NonNil(dto.ToRoleResponses(roles)),
	})
}

// Update atualiza o usuário e substitui seus roles
//
//	@Summary	Atualiza um usuário
//	@Tags		users
//	@Accept		json
//	@Param		id		path	int				true	"ID do usuário"
//	@Param		user	body	dto.UserRequest	true	"Usuário"
//	@Success	303
//	@Failure	403	{object}	dto.ErrorResponse
//	@Router		/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "User")
	if !ok {
		return
	}
	editPath := fmt.Sprintf("%s/%d/edit", usersPath, id)

	var req dto.UserRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidForm(c, h.pages, err, editPath)
		return
	}

	if _, err := h.userService.UpdateUser(c.Request.Context(), actor(c), id, req.ToInput()); err != nil {
		mutationFailed(c, h.pages, err, editPath)
		return
	}

	h.pages.Flash(c, inertia.FlashSuccess, dto.T(c, "flash.user_updated"))
	h.pages.Back(c, editPath)
}

// Destroy remove o usuário. O usuário raiz e o próprio usuário são recusados.
//
//	@Summary	Remove um usuário
//	@Tags		users
//	@Param		id	path	int	true	"ID do usuário"
//	@Success	303
//	@Failure	403	{object}	dto.ErrorResponse
//	@Router		/users/{id} [delete]
func (h *UserHandler) Destroy(c *gin.Context) {
	id, ok := pathID(c, "User")
	if !ok {
		return
	}

	err := h.userService.DeleteUser(c.Request.Context(), actor(c), id)
	switch {
	case err == nil:
		h.pages.Flash(c, inertia.FlashSuccess, dto.T(c, "flash.user_deleted"))
	case errs.Is(err, errors.ErrProtectedEntity):
		h.pages.Flash(c, inertia.FlashDanger, dto.T(c, "flash.user_protected"))
	default:
		_ = c.Error(err)
		h.pages.Flash(c, inertia.FlashDanger, dto.FailureMessage(c, err))
	}

	h.pages.Back(c, usersPath)
}

func (h *UserHandler) readFailed(c *gin.Context, err error) {
	if errs.Is(err, errors.ErrUserNotFound) {
		dto.NotFoundErrorResponseI18n(c, "User").Respond(c)
		return
	}
	internalError(c, err)
}
