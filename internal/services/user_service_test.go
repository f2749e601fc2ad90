package services_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-admin/internal/domain/errors"
	"github.com/rafabene/avantpro-admin/internal/services"
	"github.com/rafabene/avantpro-admin/internal/testutil"
)

var _ = Describe("UserService", func() {
	var f *fixture

	BeforeEach(func() {
		f = newFixture()
	})

	Describe("CreateUser", func() {
		It("grava avatar padrão, senha provisória e um role", func() {
			user := f.createUser("Ana", "Ana@Example.com", "Admin")

			stored, err := f.userRepo.FindByID(f.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Email.String()).To(Equal("ana@example.com"))
			Expect(stored.Avatar).To(Equal(testutil.Avatar))
			Expect(testutil.Hasher().Compare(stored.PasswordHash, placeholderPassword)).To(Succeed())

			details, err := f.users.GetUser(f.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(details.Roles).To(HaveLen(1))
			Expect(details.Roles[0].Name).To(Equal("Admin"))
			Expect(f.events.Types()).To(Equal([]string{services.EventUserCreated}))
		})

		It("grava usuário inativo", func() {
			user, err := f.users.CreateUser(f.ctx, root, services.UserInput{
				Name: "Ana", Email: "ana@example.com", Role: "Admin",
			})
			Expect(err).NotTo(HaveOccurred())

			stored, err := f.userRepo.FindByID(f.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.IsActive).To(BeFalse())
		})

		It("recusa email já cadastrado", func() {
			_, err := f.users.CreateUser(f.ctx, root, services.UserInput{
				Name: "Outro root", Email: testutil.RootEmail, Role: "Admin",
			})
			Expect(err).To(MatchError(domainerrors.ErrEmailAlreadyExists))
		})

		It("recusa email inválido", func() {
			_, err := f.users.CreateUser(f.ctx, root, services.UserInput{
				Name: "Ana", Email: "not-an-email", Role: "Admin",
			})
			Expect(err).To(MatchError(domainerrors.ErrInvalidEmail))
		})

		It("não deixa atribuir o role raiz", func() {
			_, err := f.users.CreateUser(f.ctx, entities.Identity{UserID: 99}, services.UserInput{
				Name: "Ana", Email: "ana@example.com", Role: "Super Admin",
			})
			Expect(err).To(MatchError(domainerrors.ErrUnknownRole))

			stored, err := f.userRepo.FindByEmail(f.ctx, "ana@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(BeNil())
		})

		It("não deixa o usuário gravado quando o role não existe", func() {
			_, err := f.users.CreateUser(f.ctx, root, services.UserInput{
				Name: "Ana", Email: "ana@example.com", Role: "Fantasma",
			})
			Expect(err).To(MatchError(domainerrors.ErrUnknownRole))

			stored, err := f.userRepo.FindByEmail(f.ctx, "ana@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(BeNil())
			Expect(f.events.Events).To(BeEmpty())
		})
	})

	Describe("ListUsers", func() {
		It("lista os mais recentes primeiro com o primeiro role de cada um", func() {
			ana := f.createUser("Ana", "ana@example.com", "Admin")

			listing, err := f.users.ListUsers(f.ctx, listQuery(""))
			Expect(err).NotTo(HaveOccurred())

			Expect(listing.Page.Items).To(HaveLen(2))
			Expect(listing.Page.Items[0].ID).To(Equal(ana.ID))
			Expect(listing.Page.Items[0].Role).To(Equal("Admin"))
			Expect(listing.Page.Items[1].ID).To(Equal(entities.RootUserID))
			Expect(listing.Page.Items[1].Role).To(Equal("Super Admin"))
			Expect(listing.Total).To(BeEquivalentTo(2))
		})

		It("mostra 'no role' para usuário sem role", func() {
			ana := f.createUser("Ana", "ana@example.com", "Admin")
			Expect(f.assignments.SyncRoles(f.ctx, ana.ID, nil)).To(Succeed())

			listing, err := f.users.ListUsers(f.ctx, listQuery("ana"))
			Expect(err).NotTo(HaveOccurred())
			Expect(listing.Page.Items).To(HaveLen(1))
			Expect(listing.Page.Items[0].Role).To(Equal(entities.NoRoleLabel))
		})

		It("busca por nome ou email sem diferenciar maiúsculas", func() {
			f.createUser("Ana Souza", "ana@example.com", "Admin")
			f.createUser("Bruno", "bruno@souza.dev", "Admin")
			f.createUser("Carla", "carla@example.com", "Admin")

			listing, err := f.users.ListUsers(f.ctx, listQuery("SOUZA"))
			Expect(err).NotTo(HaveOccurred())

			names := make([]string, 0, len(listing.Page.Items))
			for _, item := range listing.Page.Items {
				names = append(names, item.Name)
			}
			Expect(names).To(ConsistOf("Ana Souza", "Bruno"))
			Expect(listing.Page.Total).To(BeEquivalentTo(2))
			Expect(listing.Total).To(BeEquivalentTo(4))
		})

		It("pagina respeitando o limite", func() {
			for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
				f.createUser("Usuário", email, "Admin")
			}

			query := listQuery("")
			query.Limit = 2
			query.Page = 2

			listing, err := f.users.ListUsers(f.ctx, query)
			Expect(err).NotTo(HaveOccurred())
			Expect(listing.Page.Items).To(HaveLen(2))
			Expect(listing.Page.Total).To(BeEquivalentTo(4))
			Expect(listing.Page.LastPage()).To(Equal(2))
		})
	})

	Describe("AssignableRoles", func() {
		It("não oferece o role raiz", func() {
			f.createRole("Editor")

			roles, err := f.users.AssignableRoles(f.ctx)
			Expect(err).NotTo(HaveOccurred())

			names := make([]string, len(roles))
			for i, r := range roles {
				names[i] = r.Name
			}
			Expect(names).To(Equal([]string{"Admin", "Editor"}))
		})
	})

	Describe("UpdateUser", func() {
		var ana *entities.User

		BeforeEach(func() {
			f.createRole("Editor")
			ana = f.createUser("Ana", "ana@example.com", "Admin")
		})

		input := func(reset bool) services.UserInput {
			return services.UserInput{
				Name:          "Ana Maria",
				Email:         "ana@example.com",
				Phone:         "555-0100",
				IsActive:      false,
				Role:          "Editor",
				PasswordReset: reset,
			}
		}

		It("mantém a senha quando password_reset é falso", func() {
			before, err := f.userRepo.FindByID(f.ctx, ana.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = f.users.UpdateUser(f.ctx, root, ana.ID, input(false))
			Expect(err).NotTo(HaveOccurred())

			after, err := f.userRepo.FindByID(f.ctx, ana.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(after.PasswordHash).To(Equal(before.PasswordHash))
			Expect(after.Name).To(Equal("Ana Maria"))
			Expect(after.Phone).To(Equal("555-0100"))
			Expect(after.IsActive).To(BeFalse())
		})

		It("regera a senha provisória quando password_reset é verdadeiro", func() {
			before, err := f.userRepo.FindByID(f.ctx, ana.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = f.users.UpdateUser(f.ctx, root, ana.ID, input(true))
			Expect(err).NotTo(HaveOccurred())

			after, err := f.userRepo.FindByID(f.ctx, ana.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(after.PasswordHash).NotTo(Equal(before.PasswordHash))
			Expect(testutil.Hasher().Compare(after.PasswordHash, placeholderPassword)).To(Succeed())
		})

		It("substitui os roles pelo role enviado", func() {
			_, err := f.users.UpdateUser(f.ctx, root, ana.ID, input(false))
			Expect(err).NotTo(HaveOccurred())

			details, err := f.users.GetUser(f.ctx, ana.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(details.Roles).To(HaveLen(1))
			Expect(details.Roles[0].Name).To(Equal("Editor"))
		})

		It("não promove ninguém a role raiz", func() {
			in := input(false)
			in.Role = "Super Admin"

			_, err := f.users.UpdateUser(f.ctx, root, ana.ID, in)
			Expect(err).To(MatchError(domainerrors.ErrUnknownRole))

			details, err := f.users.GetUser(f.ctx, ana.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(details.Roles).To(HaveLen(1))
			Expect(details.Roles[0].Name).To(Equal("Admin"))
		})

		It("recusa o email de outro usuário", func() {
			in := input(false)
			in.Email = testutil.RootEmail

			_, err := f.users.UpdateUser(f.ctx, root, ana.ID, in)
			Expect(err).To(MatchError(domainerrors.ErrEmailAlreadyExists))
		})

		It("retorna ErrUserNotFound para id inexistente", func() {
			_, err := f.users.UpdateUser(f.ctx, root, 999, input(false))
			Expect(err).To(MatchError(domainerrors.ErrUserNotFound))
		})
	})

	Describe("DeleteUser", func() {
		It("recusa remover o usuário raiz", func() {
			ana := f.createUser("Ana", "ana@example.com", "Admin")

			err := f.users.DeleteUser(f.ctx, ana.Identity(), entities.RootUserID)
			Expect(err).To(MatchError(domainerrors.ErrProtectedEntity))

			_, err = f.users.GetUser(f.ctx, entities.RootUserID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("recusa que o usuário remova a si mesmo", func() {
			ana := f.createUser("Ana", "ana@example.com", "Admin")

			err := f.users.DeleteUser(f.ctx, ana.Identity(), ana.ID)
			Expect(err).To(MatchError(domainerrors.ErrProtectedEntity))
		})

		It("remove o usuário, seus roles e o histórico de login", func() {
			ana := f.createUser("Ana", "ana@example.com", "Admin")
			Expect(f.loginRepo.Create(f.ctx, &entities.LoginHistory{UserID: ana.ID, LoginTime: time.Now()})).To(Succeed())

			Expect(f.users.DeleteUser(f.ctx, root, ana.ID)).To(Succeed())

			_, err := f.users.GetUser(f.ctx, ana.ID)
			Expect(err).To(MatchError(domainerrors.ErrUserNotFound))

			logins, err := f.users.RecentLogins(f.ctx, ana.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(logins).To(BeEmpty())
			Expect(f.events.Types()).To(ContainElement(services.EventUserDeleted))
		})
	})

	Describe("RecentLogins", func() {
		It("retorna os dez mais recentes, do mais novo para o mais antigo", func() {
			start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			for i := range 12 {
				entry := &entities.LoginHistory{UserID: entities.RootUserID, LoginTime: start.Add(time.Duration(i) * time.Hour)}
				Expect(f.loginRepo.Create(f.ctx, entry)).To(Succeed())
			}

			logins, err := f.users.RecentLogins(f.ctx, entities.RootUserID)
			Expect(err).NotTo(HaveOccurred())
			Expect(logins).To(HaveLen(entities.RecentLoginLimit))
			Expect(logins[0].LoginTime.UTC()).To(Equal(start.Add(11 * time.Hour)))
			Expect(logins[9].LoginTime.UTC()).To(Equal(start.Add(2 * time.Hour)))
		})
	})
})
