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

const rolesPath = "/roles"

// RoleHandler lida com requisições HTTP relacionadas a roles
type RoleHandler struct {
	roleService *services.RoleService
	pages       *inertia.Renderer
	limits      ListLimits
}

// NewRoleHandler cria um novo RoleHandler
func NewRoleHandler(roleService *services.RoleService, pages *inertia.Renderer, limits ListLimits) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
		pages:       pages,
		limits:      limits,
	}
}

// Index lista roles (o role raiz nunca aparece)
//
//	@Summary	Lista roles
//	@Tags		roles
//	@Produce	json
//	@Param		search	query		string	false	"Busca por nome"
//	@Param		limit	query		int		false	"Itens por página"	default(10)
//	@Param		page	query		int		false	"Página"			default(1)
//	@Success	200		{object}	inertia.Page
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/roles [get]
func (h *RoleHandler) Index(c *gin.Context) {
	query := dto.ListQueryFromRequest(c, h.limits.Default, h.limits.Max)

	listing, err := h.roleService.ListRoles(c.Request.Context(), query)
	if err != nil {
		internalError(c, err)
		return
	}

	h.pages.Render(c, "RoleManagement/List", gin.H{
		"roles":     dto.NewPaginated(c, listing.Page, dto.ToRoleListItems(listing.Page.Items)),
		"roleCount": listing.Total,
		"filters":   gin.H{"search": query.Search, "limit": query.Limit},
	})
}

// Create mostra o formulário com o catálogo de permissões
func (h *RoleHandler) Create(c *gin.Context) {
	groups, err := h.roleService.PermissionGroups(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	h.pages.Render(c, "RoleManagement/Create", gin.H{
		"permissionGroup": dto.ToPermissionGroupResponses(groups),
	})
}

// Store cria um role com suas permissões
//
//	@Summary	Cria um role
//	@Tags		roles
//	@Accept		json
//	@Param		role	body	dto.RoleRequest	true	"Role"
//	@Success	302
//	@Failure	403	{object}	dto.ErrorResponse
//	@Router		/roles [post]
func (h *RoleHandler) Store(c *gin.Context) {
	var req dto.RoleRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidForm(c, h.pages, err, rolesPath+"/create")
		return
	}

	if _, err := h.roleService.CreateRole(c.Request.Context(), actor(c), req.ToInput()); err != nil {
		mutationFailed(c, h.pages, err, rolesPath+"/create")
		return
	}

	h.pages.Flash(c, inertia.FlashSuccess, dto.T(c, "flash.role_created"))
	h.pages.Redirect(c, rolesPath)
}

// Show mostra o role com permissões e usuários
//
//	@Summary	Detalha um role
//	@Tags		roles
//	@Produce	json
//	@Param		id	path		int	true	"ID do role"
//	@Success	200	{object}	inertia.Page
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/roles/{id} [get]
func (h *RoleHandler) Show(c *gin.Context) {
	id, ok := pathID(c, "Role")
	if !ok {
		return
	}

	details, err := h.roleService.GetRole(c.Request.Context(), id)
	if err != nil {
		h.readFailed(c, err)
		return
	}

	groups, err := h.roleService.PermissionGroups(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	h.pages.Render(c, "RoleManagement/Show", gin.H{
		"role": dto.RoleDetailResponse{
			Resource:        dto.ToRoleResponse(details.Role),
			PermissionGroup: dto.ToPermissionGroupResponses(groups),
			RolePermissions: dto.NonNil(details.Permissions),
			AssignUser:      dto.ToUserResponses(details.Users),
		},
	})
}

// Edit mostra o formulário com as permissões atuais marcadas
func (h *RoleHandler) Edit(c *gin.Context) {
	id, ok := pathID(c, "Role")
	if !ok {
		return
	}

	details, err := h.roleService.GetRole(c.Request.Context(), id)
	if err != nil {
		h.readFailed(c, err)
		return
	}

	groups, err := h.roleService.PermissionGroups(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	h.pages.Render(c, "RoleManagement/Edit", gin.H{
		"permissionGroup": dto.ToPermissionGroupResponses(groups),
		"role":            dto.ToRoleResponse(details.Role),
		"rolePermissions": dto.NonNil(details.Permissions),
	})
}

// Update renomeia o role e substitui suas permissões
//
//	@Summary	Atualiza um role
//	@Tags		roles
//	@Accept		json
//	@Param		id		path	int				true	"ID do role"
//	@Param		role	body	dto.RoleRequest	true	"Role"
//	@Success	303
//	@Failure	403	{object}	dto.ErrorResponse
//	@Router		/roles/{id} [put]
func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "Role")
	if !ok {
		return
	}
	editPath := fmt.Sprintf("%s/%d/edit", rolesPath, id)

	var req dto.RoleRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidForm(c, h.pages, err, editPath)
		return
	}

	if _, err := h.roleService.UpdateRole(c.Request.Context(), actor(c), id, req.ToInput()); err != nil {
		mutationFailed(c, h.pages, err, editPath)
		return
	}

	h.pages.Flash(c, inertia.FlashSuccess, dto.T(c, "flash.role_updated"))
	h.pages.Back(c, editPath)
}

// Destroy remove o role. Os roles 1 e 2 são recusados.
//
//	@Summary	Remove um role
//	@Tags		roles
//	@Param		id	path	int	true	"ID do role"
//	@Success	303
//	@Failure	403	{object}	dto.ErrorResponse
//	@Router		/roles/{id} [delete]
func (h *RoleHandler) Destroy(c *gin.Context) {
	id, ok := pathID(c, "Role")
	if !ok {
		return
	}

	err := h.roleService.DeleteRole(c.Request.Context(), actor(c), id)
	switch {
	case err == nil:
		h.pages.Flash(c, inertia.FlashSuccess, dto.T(c, "flash.role_deleted"))
	case errs.Is(err, errors.ErrProtectedEntity):
		h.pages.Flash(c, inertia.FlashDanger, dto.T(c, "flash.role_protected"))
	default:
		_ = c.Error(err)
		h.pages.Flash(c, inertia.FlashDanger, dto.FailureMessage(c, err))
	}

	h.pages.Back(c, rolesPath)
}

func (h *RoleHandler) readFailed(c *gin.Context, err error) {
	if errs.Is(err, errors.ErrRoleNotFound) {
		dto.NotFoundErrorResponseI18n(c, "Role").Respond(c)
		return
	}
	internalError(c, err)
}
