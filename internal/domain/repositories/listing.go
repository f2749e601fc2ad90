package repositories

import (
	"math"
	"strings"
)

// ListQuery contém os parâmetros de uma listagem paginada
type ListQuery struct {
	Search string
	Page   int // Página (começa em 1)
	Limit  int // Itens por página
}

// Normalize aplica os limites de paginação. Termo de busca só com espaços
// equivale a nenhum termo; os demais seguem intactos para o LIKE.
func (q ListQuery) Normalize(defaultLimit, maxLimit int) ListQuery {
	if strings.TrimSpace(q.Search) == "" {
		q.Search = ""
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if maxLimit > 0 && q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if q.Page < 1 {
		q.Page = 1
	}
	// Offset precisa caber num int32
	if q.Limit > 0 && q.Page > math.MaxInt32/q.Limit+1 {
		q.Page = math.MaxInt32/q.Limit + 1
	}
	return q
}

// HasSearch indica se há filtro de busca
func (q ListQuery) HasSearch() bool {
	return q.Search != ""
}

// Offset calcula o deslocamento da página
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Page é uma página de resultados. Total conta os registros que passaram
// pelo filtro, não a tabela inteira.
type Page[T any] struct {
	Items       []T
	Total       int64
	CurrentPage int
	PerPage     int
}

// LastPage calcula a última página (no mínimo 1)
func (p Page[T]) LastPage() int {
	if p.PerPage < 1 || p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}
