package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-admin/internal/domain/errors"
	"github.com/rafabene/avantpro-admin/internal/services"
)

var _ = Describe("RoleService", func() {
	var f *fixture

	BeforeEach(func() {
		f = newFixture()
	})

	Describe("ListRoles", func() {
		It("nunca inclui o role raiz", func() {
			listing, err := f.roles.ListRoles(f.ctx, listQuery(""))
			Expect(err).NotTo(HaveOccurred())

			Expect(listing.Page.Items).To(HaveLen(1))
			Expect(listing.Page.Items[0].ID).To(Equal(entities.AdminRoleID))
			Expect(listing.Total).To(BeEquivalentTo(1))
		})

		It("lista os mais recentes primeiro com a contagem de usuários", func() {
			editor := f.createRole("Editor", "user.index")
			f.createUser("Ana", "ana@example.com", "Editor")
			f.createUser("Bia", "bia@example.com", "Editor")

			listing, err := f.roles.ListRoles(f.ctx, listQuery(""))
			Expect(err).NotTo(HaveOccurred())

			Expect(listing.Page.Items).To(HaveLen(2))
			Expect(listing.Page.Items[0].ID).To(Equal(editor.ID))
			Expect(listing.Page.Items[0].Users).To(BeEquivalentTo(2))
			Expect(listing.Page.Items[1].Name).To(Equal("Admin"))
			Expect(listing.Page.Items[1].Users).To(BeZero())
		})

		It("filtra por nome sem diferenciar maiúsculas e mantém o total sem filtro", func() {
			f.createRole("Editor")
			f.createRole("Auditor")

			listing, err := f.roles.ListRoles(f.ctx, listQuery("EDI"))
			Expect(err).NotTo(HaveOccurred())

			Expect(listing.Page.Items).To(HaveLen(1))
			Expect(listing.Page.Items[0].Name).To(Equal("Editor"))
			Expect(listing.Page.Total).To(BeEquivalentTo(1))
			Expect(listing.Total).To(BeEquivalentTo(3))
		})

		It("trata busca só com espaços como ausência de busca", func() {
			f.createRole("Editor")

			listing, err := f.roles.ListRoles(f.ctx, listQuery("   "))
			Expect(err).NotTo(HaveOccurred())
			Expect(listing.Page.Items).To(HaveLen(2))
		})

		It("trata curingas do LIKE como texto literal", func() {
			f.createRole("Editor")

			listing, err := f.roles.ListRoles(f.ctx, listQuery("%"))
			Expect(err).NotTo(HaveOccurred())
			Expect(listing.Page.Items).To(BeEmpty())
		})
	})

	Describe("CreateRole", func() {
		It("cria o role com as permissões e publica o evento", func() {
			role := f.createRole("Editor", "user.index", "user.edit")

			details, err := f.roles.GetRole(f.ctx, role.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(details.Permissions).To(ConsistOf("user.index", "user.edit"))
			Expect(f.events.Types()).To(Equal([]string{services.EventRoleCreated}))
		})

		It("recusa nome repetido", func() {
			_, err := f.roles.CreateRole(f.ctx, root, services.RoleInput{Name: "Admin"})
			Expect(err).To(MatchError(domainerrors.ErrRoleNameTaken))
		})

		It("recusa nome só com espaços sem gravar nada", func() {
			role, err := f.roles.CreateRole(f.ctx, root, services.RoleInput{Name: "   "})
			Expect(err).To(MatchError(domainerrors.ErrInvalidRoleName))
			Expect(role).To(BeNil())

			listing, err := f.roles.ListRoles(f.ctx, listQuery(""))
			Expect(err).NotTo(HaveOccurred())
			Expect(listing.Total).To(BeEquivalentTo(1))
			Expect(f.events.Types()).To(BeEmpty())
		})

		It("desfaz o role quando uma permissão não existe", func() {
			_, err := f.roles.CreateRole(f.ctx, root, services.RoleInput{
				Name:        "Editor",
				Permissions: []string{"user.index", "report.index"},
			})
			Expect(err).To(MatchError(domainerrors.ErrUnknownPermission))

			listing, err := f.roles.ListRoles(f.ctx, listQuery("Editor"))
			Expect(err).NotTo(HaveOccurred())
			Expect(listing.Page.Items).To(BeEmpty())
			Expect(f.events.Events).To(BeEmpty())
		})
	})

	Describe("GetRole", func() {
		It("retorna as permissões e os usuários do role", func() {
			role := f.createRole("Editor", "role.index")
			ana := f.createUser("Ana", "ana@example.com", "Editor")

			details, err := f.roles.GetRole(f.ctx, role.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(details.Role.Name).To(Equal("Editor"))
			Expect(details.Permissions).To(Equal([]string{"role.index"}))
			Expect(details.Users).To(HaveLen(1))
			Expect(details.Users[0].ID).To(Equal(ana.ID))
		})

		It("retorna ErrRoleNotFound para id inexistente", func() {
			_, err := f.roles.GetRole(f.ctx, 999)
			Expect(err).To(MatchError(domainerrors.ErrRoleNotFound))
		})
	})

	Describe("UpdateRole", func() {
		It("substitui o conjunto inteiro de permissões", func() {
			role := f.createRole("Editor", "user.index", "user.edit")

			_, err := f.roles.UpdateRole(f.ctx, root, role.ID, services.RoleInput{
				Name:        "Editor chefe",
				Permissions: []string{"role.index"},
			})
			Expect(err).NotTo(HaveOccurred())

			details, err := f.roles.GetRole(f.ctx, role.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(details.Role.Name).To(Equal("Editor chefe"))
			Expect(details.Permissions).To(Equal([]string{"role.index"}))
		})

		It("recusa renomear para um nome vazio", func() {
			role := f.createRole("Editor", "user.index")

			_, err := f.roles.UpdateRole(f.ctx, root, role.ID, services.RoleInput{Name: " \t "})
			Expect(err).To(MatchError(domainerrors.ErrInvalidRoleName))

			details, err := f.roles.GetRole(f.ctx, role.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(details.Role.Name).To(Equal("Editor"))
			Expect(details.Permissions).To(Equal([]string{"user.index"}))
		})

		It("é idempotente", func() {
			role := f.createRole("Editor", "user.index")
			input := services.RoleInput{Name: "Editor", Permissions: []string{"user.index", "user.create"}}

			for range 2 {
				_, err := f.roles.UpdateRole(f.ctx, root, role.ID, input)
				Expect(err).NotTo(HaveOccurred())
			}

			details, err := f.roles.GetRole(f.ctx, role.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(details.Permissions).To(ConsistOf("user.index", "user.create"))
		})

		It("revoga tudo quando nenhuma permissão é enviada", func() {
			role := f.createRole("Editor", "user.index")

			_, err := f.roles.UpdateRole(f.ctx, root, role.ID, services.RoleInput{Name: "Editor"})
			Expect(err).NotTo(HaveOccurred())

			details, err := f.roles.GetRole(f.ctx, role.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(details.Permissions).To(BeEmpty())
		})

		It("permite manter o próprio nome e recusa o nome de outro role", func() {
			role := f.createRole("Editor")

			_, err := f.roles.UpdateRole(f.ctx, root, role.ID, services.RoleInput{Name: "Editor"})
			Expect(err).NotTo(HaveOccurred())

			_, err = f.roles.UpdateRole(f.ctx, root, role.ID, services.RoleInput{Name: "Admin"})
			Expect(err).To(MatchError(domainerrors.ErrRoleNameTaken))
		})

		It("mantém o estado anterior quando a sincronização falha", func() {
			role := f.createRole("Editor", "user.index")

			_, err := f.roles.UpdateRole(f.ctx, root, role.ID, services.RoleInput{
				Name:        "Renomeado",
				Permissions: []string{"nope.index"},
			})
			Expect(err).To(MatchError(domainerrors.ErrUnknownPermission))

			details, err := f.roles.GetRole(f.ctx, role.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(details.Role.Name).To(Equal("Editor"))
			Expect(details.Permissions).To(Equal([]string{"user.index"}))
		})

		It("descarta o cache de habilidades de quem tem o role", func() {
			role := f.createRole("Editor", "user.index")
			ana := f.createUser("Ana", "ana@example.com", "Editor")

			_, err := f.authz.Abilities(f.ctx, ana.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.cache.Has(ana.ID)).To(BeTrue())

			_, err = f.roles.UpdateRole(f.ctx, root, role.ID, services.RoleInput{Name: "Editor"})
			Expect(err).NotTo(HaveOccurred())

			Expect(f.cache.Has(ana.ID)).To(BeFalse())
		})
	})

	Describe("DeleteRole", func() {
		DescribeTable("recusa os roles reservados",
			func(id uint) {
				err := f.roles.DeleteRole(f.ctx, root, id)
				Expect(err).To(MatchError(domainerrors.ErrProtectedEntity))

				_, err = f.roles.GetRole(f.ctx, id)
				Expect(err).NotTo(HaveOccurred())
				Expect(f.events.Events).To(BeEmpty())
			},
			Entry("role raiz", entities.RootRoleID),
			Entry("role admin", entities.AdminRoleID),
		)

		It("remove o role e suas atribuições", func() {
			role := f.createRole("Editor", "user.index")
			ana := f.createUser("Ana", "ana@example.com", "Editor")

			Expect(f.roles.DeleteRole(f.ctx, root, role.ID)).To(Succeed())

			_, err := f.roles.GetRole(f.ctx, role.ID)
			Expect(err).To(MatchError(domainerrors.ErrRoleNotFound))

			roles, err := f.assignments.RolesOf(f.ctx, ana.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(roles).To(BeEmpty())
			Expect(f.events.Types()).To(ContainElement(services.EventRoleDeleted))
		})

		It("retorna ErrRoleNotFound para id inexistente", func() {
			err := f.roles.DeleteRole(f.ctx, root, 999)
			Expect(err).To(MatchError(domainerrors.ErrRoleNotFound))
		})
	})
})
