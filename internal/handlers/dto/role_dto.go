package dto

import (
	"time"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	"github.com/rafabene/avantpro-admin/internal/services"
)

// RoleRequest é o formulário de criação e edição de role
type RoleRequest struct {
	Name                string   `json:"name" form:"name" binding:"required,max=255"`
	SelectedPermissions []string `json:"selectedPermissions" form:"selectedPermissions" binding:"omitempty,dive,ability"`
}

// ToInput converte o formulário para a entrada do service
func (r RoleRequest) ToInput() services.RoleInput {
	return services.RoleInput{Name: r.Name, Permissions: r.SelectedPermissions}
}

// RoleResponse representa um role
type RoleResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleListItemResponse é a linha da listagem de roles
type RoleListItemResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Users     int64     `json:"users"`
	CreatedAt time.Time `json:"created_at"`
}

// PermissionResponse é uma permissão do catálogo
type PermissionResponse struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	PermissionGroupID uint   `json:"permission_group_id"`
}

// PermissionGroupResponse é um grupo com suas permissões
type PermissionGroupResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Permissions []PermissionResponse `json:"permissions"`
}

// RoleDetailResponse é o detalhe de um role
type RoleDetailResponse struct {
	Resource        RoleResponse              `json:"resource"`
	PermissionGroup []PermissionGroupResponse `json:"permissionGroup"`
	RolePermissions []string                  `json:"rolePermissions"`
	AssignUser      []UserResponse            `json:"assignUser"`
}

// ToRoleResponse converte uma entidade Role
func ToRoleResponse(role *entities.Role) RoleResponse {
	return RoleResponse{
		ID:        role.ID,
		Name:      role.Name,
		CreatedAt: role.CreatedAt,
		UpdatedAt: role.UpdatedAt,
	}
}

// ToRoleResponses converte uma lista de roles
func ToRoleResponses(roles []*entities.Role) []RoleResponse {
	if roles == nil {
		return nil
	}
	responses := make([]RoleResponse, len(roles))
	for i, role := range roles {
		responses[i] = ToRoleResponse(role)
	}
	return responses
}

// ToRoleListItems converte a projeção da listagem
func ToRoleListItems(items []services.RoleListItem) []RoleListItemResponse {
	responses := make([]RoleListItemResponse, len(items))
	for i, item := range items {
		responses[i] = RoleListItemResponse(item)
	}
	return responses
}

// ToPermissionGroupResponses converte o catálogo de permissões
func ToPermissionGroupResponses(groups []*entities.PermissionGroup) []PermissionGroupResponse {
	responses := make([]PermissionGroupResponse, len(groups))
	for i, group := range groups {
		permissions := make([]PermissionResponse, len(group.Permissions))
		for j, p := range group.Permissions {
			permissions[j] = PermissionResponse{ID: p.ID, Name: p.Name, PermissionGroupID: p.PermissionGroupID}
		}
		responses[i] = PermissionGroupResponse{ID: group.ID, Name: group.Name, Permissions: permissions}
	}
	return responses
}

// NonNil evita null no JSON de listas vazias
func NonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
