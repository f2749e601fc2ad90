package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	"github.com/rafabene/avantpro-admin/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/avantpro-admin/internal/services"
)

var _ = Describe("AuthorizationService", func() {
	var f *fixture

	BeforeEach(func() {
		f = newFixture()
	})

	It("concede ao usuário raiz todas as habilidades do seed", func() {
		for _, group := range postgres.DefaultPermissionGroups {
			for _, ability := range group.Permissions {
				ok, err := f.authz.Authorize(f.ctx, root, ability)
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeTrue(), ability)
			}
		}
	})

	It("nega a identidade vazia", func() {
		ok, err := f.authz.Authorize(f.ctx, entities.Identity{}, "user.index")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("une as permissões de todos os roles do usuário", func() {
		f.createRole("Leitor de usuários", "user.index")
		f.createRole("Leitor de roles", "role.index")
		ana := f.createUser("Ana", "ana@example.com", "Leitor de usuários")
		Expect(f.assignments.AssignRole(f.ctx, ana.ID, "Leitor de roles")).To(Succeed())

		abilities, err := f.authz.Abilities(f.ctx, ana.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(abilities).To(ConsistOf("user.index", "role.index"))

		ok, err := f.authz.Authorize(f.ctx, ana.Identity(), "user.delete")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("usa o cache e enxerga a mudança depois de uma sincronização", func() {
		editor := f.createRole("Editor", "user.index")
		ana := f.createUser("Ana", "ana@example.com", "Editor")

		ok, err := f.authz.Authorize(f.ctx, ana.Identity(), "user.index")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		_, err = f.authz.Authorize(f.ctx, ana.Identity(), "user.index")
		Expect(err).NotTo(HaveOccurred())
		Expect(f.cache.Hits).To(Equal(1))

		_, err = f.roles.UpdateRole(f.ctx, root, editor.ID, services.RoleInput{Name: "Editor"})
		Expect(err).NotTo(HaveOccurred())

		ok, err = f.authz.Authorize(f.ctx, ana.Identity(), "user.index")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	Describe("VerifyRegistered", func() {
		It("aceita habilidades cadastradas", func() {
			Expect(f.authz.VerifyRegistered(f.ctx, []string{"user.index", "role.delete"})).To(Succeed())
		})

		It("aponta as habilidades sem permissão cadastrada", func() {
			err := f.authz.VerifyRegistered(f.ctx, []string{"user.index", "report.index"})
			Expect(err).To(MatchError(ContainSubstring("report.index")))
		})
	})
})
