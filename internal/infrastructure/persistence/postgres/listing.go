package postgres

import (
	"strings"

	"gorm.io/gorm"

	"github.com/rafabene/avantpro-admin/internal/domain/repositories"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchScope aplica busca case-insensitive por substring em columns,
// combinadas num único grupo OR. Termo vazio não filtra nada.
func searchScope(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}

		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		conditions := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, column := range columns {
			conditions[i] = "LOWER(" + column + `) LIKE ? ESCAPE '\'`
			args[i] = pattern
		}

		return db.Where("("+strings.Join(conditions, " OR ")+")", args...)
	}
}

// excludeScope remove ids protegidos da consulta
func excludeScope(ids []uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(ids) == 0 {
			return db
		}
		return db.Where("id NOT IN ?", ids)
	}
}

// paginate conta e busca uma página, mais recentes primeiro.
// A ordem é fixa; id desempata registros criados no mesmo milissegundo.
func paginate[M any](query *gorm.DB, q repositories.ListQuery, dest *[]M) (int64, error) {
	base := query.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, err
	}

	if err := base.
		Order("created_at DESC").
		Order("id DESC").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(dest).Error; err != nil {
		return 0, err
	}

	return total, nil
}
