package services

import (
	"context"
	"strings"
	"time"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-admin/internal/domain/errors"
	"github.com/rafabene/avantpro-admin/internal/domain/ports"
	"github.com/rafabene/avantpro-admin/internal/domain/repositories"
	"github.com/rafabene/avantpro-admin/internal/domain/valueobjects"
)

// Eventos publicados pelo UserService
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// UserDefaults são os valores atribuídos pelo cadastro administrativo
type UserDefaults struct {
	Avatar              string
	PlaceholderPassword string
}

// UserService contém a lógica de negócio para usuários
type UserService struct {
	userRepo    repositories.UserRepository
	roleRepo    repositories.RoleRepository
	loginRepo   repositories.LoginHistoryRepository
	assignments *AssignmentService
	hasher      ports.PasswordHasher
	uow         ports.UnitOfWork
	events      ports.EventPublisher
	logger      ports.Logger
	defaults    UserDefaults
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	loginRepo repositories.LoginHistoryRepository,
	assignments *AssignmentService,
	hasher ports.PasswordHasher,
	uow ports.UnitOfWork,
	events ports.EventPublisher,
	logger ports.Logger,
	defaults UserDefaults,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		loginRepo:   loginRepo,
		assignments: assignments,
		hasher:      hasher,
		uow:         uow,
		events:      events,
		logger:      logger,
		defaults:    defaults,
	}
}

// UserInput representa os dados do formulário de usuário
type UserInput struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	City       string
	State      string
	Country    string
	PostalCode string
	IsActive   bool
	Role       string
	// PasswordReset regera a senha provisória na edição
	PasswordReset bool
}

// UserListItem é a projeção de um usuário na listagem
type UserListItem struct {
	ID        uint
	Name      string
	Email     string
	Role      string
	IsActive  bool
	CreatedAt time.Time
}

// UserListing é a página da listagem mais o total de usuários
type UserListing struct {
	Page  repositories.Page[UserListItem]
	Total int64
}

// UserDetails reúne o usuário com seus roles
type UserDetails struct {
	User  *entities.User
	Roles []*entities.Role
}

// ListUsers lista usuários por nome ou email, mais recentes primeiro
func (s *UserService) ListUsers(ctx context.Context, query repositories.ListQuery) (*UserListing, error) {
	page, err := s.userRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(page.Items))
	for i, u := range page.Items {
		ids[i] = u.ID
	}

	roleNames, err := s.assignments.assignments.RoleNamesOfUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]UserListItem, len(page.Items))
	for i, u := range page.Items {
		role := entities.NoRoleLabel
		if names := roleNames[u.ID]; len(names) > 0 {
			role = names[0]
		}
		items[i] = UserListItem{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email.String(),
			Role:      role,
			IsActive:  u.IsActive,
			CreatedAt: u.CreatedAt,
		}
	}

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &UserListing{
		Page: repositories.Page[UserListItem]{
			Items:       items,
			Total:       page.Total,
			CurrentPage: page.CurrentPage,
			PerPage:     page.PerPage,
		},
		Total: total,
	}, nil
}

// AssignableRoles retorna os roles oferecidos no formulário (sem o raiz)
func (s *UserService) AssignableRoles(ctx context.Context) ([]*entities.Role, error) {
	return s.roleRepo.All(ctx, entities.RootRoleID)
}

// CreateUser cria o usuário com avatar padrão e senha provisória e
// atribui um role, tudo na mesma transação
func (s *UserService) CreateUser(ctx context.Context, actor entities.Identity, input UserInput) (*entities.User, error) {
	s.logger.Info("creating user", "actor_id", actor.UserID, "email", input.Email)

	user := &entities.User{}
	if err := s.apply(user, input); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(s.defaults.PlaceholderPassword)
	if err != nil {
		return nil, persistenceFailure("create user", err)
	}
	user.PasswordHash = hash

	err = s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureEmailAvailable(ctx, user.Email.String(), 0); err != nil {
			return err
		}

		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}

		return s.assignments.AssignRole(ctx, user.ID, input.Role)
	})
	if err != nil {
		s.logger.Warn("user creation failed", "actor_id", actor.UserID, "error", err)
		return nil, persistenceFailure("create user", err)
	}

	s.publish(ctx, EventUserCreated, user.ID, actor)
	return user, nil
}

// GetUser busca um usuário por ID com seus roles
func (s *UserService) GetUser(ctx context.Context, id uint) (*UserDetails, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	roles, err := s.assignments.RolesOf(ctx, id)
	if err != nil {
		return nil, err
	}

	return &UserDetails{User: user, Roles: roles}, nil
}

// RecentLogins retorna os últimos logins do usuário, mais recentes primeiro
func (s *UserService) RecentLogins(ctx context.Context, id uint) ([]*entities.LoginHistory, error) {
	return s.loginRepo.Recent(ctx, id, entities.RecentLoginLimit)
}

// UpdateUser atualiza os dados do usuário e substitui seus roles na mesma
// transação. A senha só é regerada quando PasswordReset é verdadeiro.
func (s *UserService) UpdateUser(ctx context.Context, actor entities.Identity, id uint, input UserInput) (*entities.User, error) {
	s.logger.Info("updating user", "actor_id", actor.UserID, "user_id", id)

	var user *entities.User
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.find(ctx, id)
		if err != nil {
			return err
		}

		previous := user.Email
		if err := s.apply(user, input); err != nil {
			return err
		}

		if !user.Email.Equal(previous) {
			if err := s.ensureEmailAvailable(ctx, user.Email.String(), user.ID); err != nil {
				return err
			}
		}

		if input.PasswordReset {
			hash, err := s.hasher.Hash(s.defaults.PlaceholderPassword)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}

		if err := s.userRepo.Update(ctx, user); err != nil {
			return err
		}

		return s.assignments.SyncRoles(ctx, user.ID, []string{input.Role})
	})
	if err != nil {
		s.logger.Warn("user update failed", "actor_id", actor.UserID, "user_id", id, "error", err)
		return nil, persistenceFailure("update user", err)
	}

	s.assignments.ForgetUsers(ctx, id)
	s.publish(ctx, EventUserUpdated, id, actor)
	return user, nil
}

// DeleteUser remove o usuário. O usuário raiz e o próprio ator nunca
// são removidos.
func (s *UserService) DeleteUser(ctx context.Context, actor entities.Identity, id uint) error {
	if entities.IsProtectedUser(id, actor.UserID) {
		s.logger.Warn("refused to delete protected user", "actor_id", actor.UserID, "user_id", id)
		return domainerrors.ErrProtectedEntity
	}

	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		return s.userRepo.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Warn("user deletion failed", "actor_id", actor.UserID, "user_id", id, "error", err)
		return persistenceFailure("delete user", err)
	}

	s.assignments.ForgetUsers(ctx, id)
	s.publish(ctx, EventUserDeleted, id, actor)
	s.logger.Info("user deleted", "actor_id", actor.UserID, "user_id", id)
	return nil
}

// apply copia o formulário para a entidade com o avatar padrão
func (s *UserService) apply(user *entities.User, input UserInput) error {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return domainerrors.ErrInvalidEmail
	}

	user.Name = strings.TrimSpace(input.Name)
	user.Email = email
	user.Phone = input.Phone
	user.Address = input.Address
	user.City = input.City
	user.State = input.State
	user.Country = input.Country
	user.PostalCode = input.PostalCode
	user.IsActive = input.IsActive
	user.Avatar = s.defaults.Avatar

	return user.Validate()
}

func (s *UserService) ensureEmailAvailable(ctx context.Context, email string, ownerID uint) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != ownerID {
		return domainerrors.ErrEmailAlreadyExists
	}
	return nil
}

func (s *UserService) find(ctx context.Context, id uint) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) publish(ctx context.Context, eventType string, id uint, actor entities.Identity) {
	s.events.Publish(ctx, ports.Event{
		Type:    eventType,
		ID:      id,
		ActorID: actor.UserID,
		At:      time.Now().UTC(),
	})
}
