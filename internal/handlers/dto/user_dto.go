package dto

import (
	"time"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	"github.com/rafabene/avantpro-admin/internal/services"
)

// UserRequest é o formulário de criação e edição de usuário
type UserRequest struct {
	Name          string `json:"name" form:"name" binding:"required,min=2,max=255"`
	Email         string `json:"email" form:"email" binding:"required,email,max=255"`
	Phone         string `json:"phone" form:"phone" binding:"omitempty,max=50"`
	Address       string `json:"address" form:"address" binding:"omitempty,max=500"`
	City          string `json:"city" form:"city" binding:"omitempty,max=255"`
	State         string `json:"state" form:"state" binding:"omitempty,max=255"`
	Country       string `json:"country" form:"country" binding:"omitempty,max=255"`
	PostalCode    string `json:"postal_code" form:"postal_code" binding:"omitempty,max=50"`
	IsActive      *bool  `json:"is_active" form:"is_active" binding:"required"`
	UserRole      string `json:"user_role" form:"user_role" binding:"required"`
	PasswordReset bool   `json:"password_reset" form:"password_reset"`
}

// ToInput converte o formulário para a entrada do service
func (r UserRequest) ToInput() services.UserInput {
	return services.UserInput{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Address:       r.Address,
		City:          r.City,
		State:         r.State,
		Country:       r.Country,
		PostalCode:    r.PostalCode,
		IsActive:      r.IsActive != nil && *r.IsActive,
		Role:          r.UserRole,
		PasswordReset: r.PasswordReset,
	}
}

// UserResponse representa a resposta de um usuário
type UserResponse struct {
	ID         uint           `json:"id"`
	Email      string         `json:"email"`
	Name       string         `json:"name"`
	Phone      string         `json:"phone"`
	Address    string         `json:"address"`
	City       string         `json:"city"`
	State      string         `json:"state"`
	Country    string         `json:"country"`
	PostalCode string         `json:"postal_code"`
	Avatar     string         `json:"avatar"`
	IsActive   bool           `json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Roles      []RoleResponse `json:"roles,omitempty"`
}

// UserListItemResponse é a linha da listagem de usuários
type UserListItemResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginHistoryResponse é um login do usuário
type LoginHistoryResponse struct {
	ID        uint      `json:"id"`
	LoginTime time.Time `json:"login_time"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
}

// UserDetailResponse é o usuário com roles e últimos logins
type UserDetailResponse struct {
	UserResponse
	LoginHistories []LoginHistoryResponse `json:"login_histories"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User, roles []*entities.Role) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Email:      user.Email.String(),
		Name:       user.Name,
		Phone:      user.Phone,
		Address:    user.Address,
		City:       user.City,
		State:      user.State,
		Country:    user.Country,
		PostalCode: user.PostalCode,
		Avatar:     user.Avatar,
		IsActive:   user.IsActive,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
		Roles:      ToRoleResponses(roles),
	}
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user, nil)
	}
	return responses
}

// ToUserListItems converte a projeção da listagem
func ToUserListItems(items []services.UserListItem) []UserListItemResponse {
	responses := make([]UserListItemResponse, len(items))
	for i, item := range items {
		responses[i] = UserListItemResponse(item)
	}
	return responses
}

// ToUserDetailResponse monta o detalhe do usuário
func ToUserDetailResponse(details *services.UserDetails, logins []*entities.LoginHistory) UserDetailResponse {
	histories := make([]LoginHistoryResponse, len(logins))
	for i, l := range logins {
		histories[i] = LoginHistoryResponse{
			ID:        l.ID,
			LoginTime: l.LoginTime,
			IPAddress: l.IPAddress,
			UserAgent: l.UserAgent,
		}
	}

	return UserDetailResponse{
		UserResponse:   ToUserResponse(details.User, details.Roles),
		LoginHistories: histories,
	}
}
