package services

import (
	"context"
	"time"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-admin/internal/domain/errors"
	"github.com/rafabene/avantpro-admin/internal/domain/ports"
	"github.com/rafabene/avantpro-admin/internal/domain/repositories"
	"github.com/rafabene/avantpro-admin/internal/domain/valueobjects"
)

// AuthService autentica usuários e resolve identidades a partir de tokens
type AuthService struct {
	userRepo  repositories.UserRepository
	loginRepo repositories.LoginHistoryRepository
	hasher    ports.PasswordHasher
	tokens    ports.TokenManager
	logger    ports.Logger
	now       func() time.Time
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	loginRepo repositories.LoginHistoryRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenManager,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		loginRepo: loginRepo,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
		now:       time.Now,
	}
}

// LoginInput representa uma tentativa de login
type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

// LoginResult contém o token emitido
type LoginResult struct {
	User      *entities.User
	Token     string
	ExpiresAt time.Time
}

// Login verifica as credenciais, registra o login e emite um token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.logger.Warn("login refused", "user_id", user.ID)
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domainerrors.ErrInactiveUser
	}

	entry := &entities.LoginHistory{
		UserID:    user.ID,
		LoginTime: s.now().UTC(),
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
	}
	if err := s.loginRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Identify resolve o usuário dono do token. Usuários removidos ou
// inativos não são aceitos.
func (s *AuthService) Identify(ctx context.Context, token string) (*entities.User, error) {
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domainerrors.ErrInactiveUser
	}

	return user, nil
}
