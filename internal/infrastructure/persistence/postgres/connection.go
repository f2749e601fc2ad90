package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/avantpro-admin/internal/domain/ports"
	"github.com/rafabene/avantpro-admin/internal/infrastructure/config"
)

const (
	connectAttempts = 5
	slowQuery       = 200 * time.Millisecond
)

// GormConfig é a configuração comum ao PostgreSQL e ao SQLite dos testes
func GormConfig(gormLogger logger.Interface) *gorm.Config {
	return &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		TranslateError: true,
	}
}

// queryWriter manda as linhas do logger do GORM para ports.Logger
type queryWriter struct {
	log ports.Logger
}

func (w queryWriter) Printf(format string, args ...interface{}) {
	w.log.Debug(fmt.Sprintf(format, args...))
}

// NewGormLogger registra queries lentas e erros. Com logQueries todas as
// queries são registradas (nível debug do logger da aplicação).
func NewGormLogger(log ports.Logger, logQueries bool) logger.Interface {
	level := logger.Warn
	if logQueries {
		level = logger.Info
	}

	return logger.New(queryWriter{log: log.With("component", "gorm")}, logger.Config{
		SlowThreshold:             slowQuery,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// NewDatabaseConnection abre o PostgreSQL, configura o pool e espera o
// banco responder, tentando algumas vezes com espera crescente.
func NewDatabaseConnection(cfg *config.DatabaseConfig, log ports.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), GormConfig(NewGormLogger(log, cfg.LogQueries)))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.MinConns)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.MaxIdleTime) * time.Second)

	wait := time.Second
	for attempt := 1; ; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = Ping(ctx, db)
		cancel()
		if err == nil {
			break
		}
		if attempt == connectAttempts {
			return nil, fmt.Errorf("failed to ping database after %d attempts: %w", attempt, err)
		}

		log.Warn("database not ready, retrying", "attempt", attempt, "wait", wait.String(), "error", err)
		time.Sleep(wait)
		wait *= 2
	}

	log.Info("database connected",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
	)
	return db, nil
}

// Ping verifica se o banco responde (readiness)
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
