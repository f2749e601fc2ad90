package entities

import "time"

// RecentLoginLimit é a quantidade de logins exibida no detalhe do usuário
const RecentLoginLimit = 10

// LoginHistory registra um login bem sucedido
type LoginHistory struct {
	ID        uint
	UserID    uint
	LoginTime time.Time
	IPAddress string
	UserAgent string
}
