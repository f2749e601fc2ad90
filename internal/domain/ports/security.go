package ports

import "time"

// PasswordHasher gera e verifica hashes de senha
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// TokenManager emite e valida tokens de acesso
type TokenManager interface {
	Issue(userID uint) (token string, expiresAt time.Time, err error)
	Parse(token string) (userID uint, err error)
}
