// Package testutil reúne os bancos e dependências usados pelos testes.
package testutil

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/avantpro-admin/internal/domain/ports"
	"github.com/rafabene/avantpro-admin/internal/infrastructure/logging"
	"github.com/rafabene/avantpro-admin/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/avantpro-admin/internal/infrastructure/security"
)

// Valores do usuário raiz criado por NewSeededDB
const (
	RootName     = "Root"
	RootEmail    = "root@example.com"
	RootPassword = "password"
	Avatar       = "/images/avatar.png"
)

// NewSQLiteDB abre um banco SQLite em memória isolado e aplica as migrações
func NewSQLiteDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), postgres.GormConfig(logger.Discard))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Uma conexão só: o banco em memória vive enquanto ela estiver aberta
	sqlDB.SetMaxOpenConns(1)

	if err := postgres.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// NewSeededDB é NewSQLiteDB com permissões, roles reservados e usuário raiz
func NewSeededDB(ctx context.Context) (*gorm.DB, error) {
	db, err := NewSQLiteDB()
	if err != nil {
		return nil, err
	}

	err = postgres.Seed(ctx, db, Hasher(), postgres.SeedOptions{
		RootName:     RootName,
		RootEmail:    RootEmail,
		RootPassword: RootPassword,
		Avatar:       Avatar,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Hasher retorna um bcrypt de custo mínimo
func Hasher() ports.PasswordHasher {
	return security.NewBcryptHasher(bcrypt.MinCost)
}

// Logger descarta tudo
func Logger() ports.Logger {
	return logging.NewSlogLoggerTo(io.Discard, "error")
}

// Close fecha a conexão do banco
func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// RecordingPublisher guarda os eventos publicados
type RecordingPublisher struct {
	Events []ports.Event
}

func (p *RecordingPublisher) Publish(_ context.Context, event ports.Event) {
	p.Events = append(p.Events, event)
}

// Types retorna os tipos dos eventos na ordem em que foram publicados
func (p *RecordingPublisher) Types() []string {
	types := make([]string, len(p.Events))
	for i, e := range p.Events {
		types[i] = e.Type
	}
	return types
}
