package ports

import "context"

// Logger é o log estruturado usado pelos services e handlers.
// args são pares chave/valor: logger.Info("user created", "user_id", id)
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// UnitOfWork executa fn numa transação. Repositórios chamados com o
// contexto recebido por fn participam dela; erro em fn desfaz tudo.
type UnitOfWork interface {
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
