package entities

// Identity é quem está fazendo a requisição. É passada explicitamente
// para os services; nunca é buscada de estado global.
type Identity struct {
	UserID uint
	Name   string
	Email  string
}

// IsZero indica ausência de identidade autenticada
func (i Identity) IsZero() bool {
	return i.UserID == 0
}
