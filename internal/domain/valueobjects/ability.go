package valueobjects

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidAbility = errors.New("invalid ability format")
)

var abilityPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*\.[a-z][a-z0-9_-]*$`)

// Ability é o nome de uma permissão no formato <recurso>.<ação> (ex: "role.edit")
type Ability struct {
	value string
}

// NewAbility cria uma Ability validada
func NewAbility(name string) (Ability, error) {
	name = strings.TrimSpace(name)

	if !IsValidAbility(name) {
		return Ability{}, ErrInvalidAbility
	}

	return Ability{value: name}, nil
}

// MustAbility é como NewAbility mas entra em pânico com nome inválido.
// Uso restrito a constantes de registro de rotas.
func MustAbility(name string) Ability {
	a, err := NewAbility(name)
	if err != nil {
		panic(err.Error() + ": " + name)
	}
	return a
}

// IsValidAbility verifica o formato sem construir o value object
func IsValidAbility(name string) bool {
	return abilityPattern.MatchString(name)
}

func (a Ability) String() string {
	return a.value
}

// Resource retorna a parte antes do ponto
func (a Ability) Resource() string {
	resource, _, _ := strings.Cut(a.value, ".")
	return resource
}

// Action retorna a parte depois do ponto
func (a Ability) Action() string {
	_, action, _ := strings.Cut(a.value, ".")
	return action
}
