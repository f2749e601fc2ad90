package dto

import "time"

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,max=72"`
}

// LoginResponse contém o token emitido
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// AuthUser é o usuário autenticado compartilhado com todas as páginas
type AuthUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthProps é a prop "auth" das páginas
type AuthProps struct {
	User        *AuthUser `json:"user"`
	Permissions []string  `json:"permissions"`
}
