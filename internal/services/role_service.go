package services

import (
	"context"
	"strings"
	"time"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-admin/internal/domain/errors"
	"github.com/rafabene/avantpro-admin/internal/domain/ports"
	"github.com/rafabene/avantpro-admin/internal/domain/repositories"
)

// Eventos publicados pelo RoleService
const (
	EventRoleCreated = "role.created"
	EventRoleUpdated = "role.updated"
	EventRoleDeleted = "role.deleted"
)

// RoleService contém a lógica de negócio para roles
type RoleService struct {
	roles       repositories.RoleRepository
	permissions repositories.PermissionRepository
	assignments *AssignmentService
	uow         ports.UnitOfWork
	events      ports.EventPublisher
	logger      ports.Logger
}

// NewRoleService cria um novo RoleService
func NewRoleService(
	roles repositories.RoleRepository,
	permissions repositories.PermissionRepository,
	assignments *AssignmentService,
	uow ports.UnitOfWork,
	events ports.EventPublisher,
	logger ports.Logger,
) *RoleService {
	return &RoleService{
		roles:       roles,
		permissions: permissions,
		assignments: assignments,
		uow:         uow,
		events:      events,
		logger:      logger,
	}
}

// RoleListItem é a projeção de um role na listagem
type RoleListItem struct {
	ID        uint
	Name      string
	Users     int64
	CreatedAt time.Time
}

// RoleListing é a página da listagem mais o total de roles
type RoleListing struct {
	Page  repositories.Page[RoleListItem]
	Total int64
}

// RoleInput representa os dados de criação e edição de um role
type RoleInput struct {
	Name        string
	Permissions []string
}

// RoleDetails reúne o role com suas permissões e usuários
type RoleDetails struct {
	Role        *entities.Role
	Permissions []string
	Users       []*entities.User
}

// ListRoles lista os roles, sem o role raiz, com a contagem de usuários de cada um
func (s *RoleService) ListRoles(ctx context.Context, query repositories.ListQuery) (*RoleListing, error) {
	page, err := s.roles.List(ctx, query, entities.RootRoleID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(page.Items))
	for i, r := range page.Items {
		ids[i] = r.ID
	}

	counts, err := s.assignmentsRepo().CountUsersOfRoles(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]RoleListItem, len(page.Items))
	for i, r := range page.Items {
		items[i] = RoleListItem{
			ID:        r.ID,
			Name:      r.Name,
			Users:     counts[r.ID],
			CreatedAt: r.CreatedAt,
		}
	}

	total, err := s.roles.Count(ctx, entities.RootRoleID)
	if err != nil {
		return nil, err
	}

	return &RoleListing{
		Page: repositories.Page[RoleListItem]{
			Items:       items,
			Total:       page.Total,
			CurrentPage: page.CurrentPage,
			PerPage:     page.PerPage,
		},
		Total: total,
	}, nil
}

// PermissionGroups retorna o catálogo de permissões para os formulários
func (s *RoleService) PermissionGroups(ctx context.Context) ([]*entities.PermissionGroup, error) {
	return s.permissions.Groups(ctx)
}

// CreateRole cria o role e sincroniza suas permissões na mesma transação
func (s *RoleService) CreateRole(ctx context.Context, actor entities.Identity, input RoleInput) (*entities.Role, error) {
	s.logger.Info("creating role", "actor_id", actor.UserID, "name", input.Name)

	role := &entities.Role{Name: strings.TrimSpace(input.Name)}
	if err := role.Validate(); err != nil {
		return nil, err
	}

	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.roles.FindByName(ctx, role.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domainerrors.ErrRoleNameTaken
		}

		if err := s.roles.Create(ctx, role); err != nil {
			return err
		}

		return s.assignments.SyncPermissions(ctx, role.ID, input.Permissions)
	})
	if err != nil {
		s.logger.Warn("role creation failed", "actor_id", actor.UserID, "error", err)
		return nil, persistenceFailure("create role", err)
	}

	s.publish(ctx, EventRoleCreated, role.ID, actor)
	return role, nil
}

// GetRole busca o role com os nomes das permissões e os usuários atribuídos
func (s *RoleService) GetRole(ctx context.Context, id uint) (*RoleDetails, error) {
	role, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	permissions, err := s.assignments.PermissionsOf(ctx, id)
	if err != nil {
		return nil, err
	}

	users, err := s.assignments.UsersOf(ctx, id)
	if err != nil {
		return nil, err
	}

	return &RoleDetails{Role: role, Permissions: permissions, Users: users}, nil
}

// UpdateRole renomeia o role e substitui suas permissões na mesma transação
func (s *RoleService) UpdateRole(ctx context.Context, actor entities.Identity, id uint, input RoleInput) (*entities.Role, error) {
	s.logger.Info("updating role", "actor_id", actor.UserID, "role_id", id)

	var role *entities.Role
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		role, err = s.find(ctx, id)
		if err != nil {
			return err
		}

		role.Name = strings.TrimSpace(input.Name)
		if err := role.Validate(); err != nil {
			return err
		}

		existing, err := s.roles.FindByName(ctx, role.Name)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != role.ID {
			return domainerrors.ErrRoleNameTaken
		}

		if err := s.roles.Update(ctx, role); err != nil {
			return err
		}

		return s.assignments.SyncPermissions(ctx, role.ID, input.Permissions)
	})
	if err != nil {
		s.logger.Warn("role update failed", "actor_id", actor.UserID, "role_id", id, "error", err)
		return nil, persistenceFailure("update role", err)
	}

	s.forgetHolders(ctx, id)
	s.publish(ctx, EventRoleUpdated, id, actor)
	return role, nil
}

// DeleteRole remove o role. Os roles reservados nunca são removidos.
func (s *RoleService) DeleteRole(ctx context.Context, actor entities.Identity, id uint) error {
	if entities.IsProtectedRole(id) {
		s.logger.Warn("refused to delete protected role", "actor_id", actor.UserID, "role_id", id)
		return domainerrors.ErrProtectedEntity
	}

	var holders []uint
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		holders, err = s.assignmentsRepo().UserIDsOfRole(ctx, id)
		if err != nil {
			return err
		}
		return s.roles.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Warn("role deletion failed", "actor_id", actor.UserID, "role_id", id, "error", err)
		return persistenceFailure("delete role", err)
	}

	s.assignments.ForgetUsers(ctx, holders...)
	s.publish(ctx, EventRoleDeleted, id, actor)
	s.logger.Info("role deleted", "actor_id", actor.UserID, "role_id", id)
	return nil
}

func (s *RoleService) find(ctx context.Context, id uint) (*entities.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domainerrors.ErrRoleNotFound
	}
	return role, nil
}

func (s *RoleService) forgetHolders(ctx context.Context, roleID uint) {
	holders, err := s.assignmentsRepo().UserIDsOfRole(ctx, roleID)
	if err != nil {
		s.logger.Warn("could not load role holders", "role_id", roleID, "error", err)
		return
	}
	s.assignments.ForgetUsers(ctx, holders...)
}

func (s *RoleService) assignmentsRepo() repositories.AssignmentRepository {
	return s.assignments.assignments
}

func (s *RoleService) publish(ctx context.Context, eventType string, id uint, actor entities.Identity) {
	s.events.Publish(ctx, ports.Event{
		Type:    eventType,
		ID:      id,
		ActorID: actor.UserID,
		At:      time.Now().UTC(),
	})
}
