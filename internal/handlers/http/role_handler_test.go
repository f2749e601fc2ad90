package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
)

var _ = Describe("RoleHandler", func() {
	var (
		a  *app
		cl *client
	)

	BeforeEach(func() {
		a = newApp()
		cl = a.clientFor(entities.RootUserID)
	})

	Describe("gate", func() {
		It("recusa com 403 antes de ler ou gravar", func() {
			a.createRole("Reader", "user.index")
			user := a.createUser("Reader", "reader@example.com", "Reader")
			reader := a.clientFor(user.ID)

			w := reader.do(http.MethodGet, "/roles", nil)
			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/problem+json"))

			w = reader.do(http.MethodPost, "/roles", map[string]any{"name": "Sneaky"})
			Expect(w.Code).To(Equal(http.StatusForbidden))

			listing, err := a.roles.ListRoles(a.ctx, listAll("Sneaky"))
			Expect(err).NotTo(HaveOccurred())
			Expect(listing.Page.Items).To(BeEmpty())
		})

		It("pede login sem token", func() {
			anonymous := a.clientFor(0)

			w := anonymous.do(http.MethodGet, "/roles", nil)
			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(w.Header().Get("X-Inertia-Location")).To(Equal("/login"))
		})

		It("registra todas as habilidades usadas nas rotas", func() {
			Expect(a.gate.Abilities()).To(Equal([]string{
				"role.create", "role.delete", "role.edit", "role.index",
				"user.create", "user.delete", "user.edit", "user.index",
			}))
			Expect(a.authz.VerifyRegistered(a.ctx, a.gate.Abilities())).To(Succeed())
		})
	})

	Describe("Index", func() {
		It("nunca lista o role 1 e conta só os demais", func() {
			page := cl.page("/roles")

			Expect(page.Component).To(Equal("RoleManagement/List"))
			names := []string{}
			for _, row := range rows(page, "roles") {
				Expect(row["id"]).NotTo(BeEquivalentTo(entities.RootRoleID))
				names = append(names, row["name"].(string))
			}
			Expect(names).To(Equal([]string{"Admin"}))
			Expect(page.Props["roleCount"]).To(BeEquivalentTo(1))
		})

		It("preserva os filtros nos links de paginação", func() {
			for i := 1; i <= 12; i++ {
				a.createRole(fmt.Sprintf("Role %02d", i))
			}

			page := cl.page("/roles?search=role&limit=5")
			Expect(rows(page, "roles")).To(HaveLen(5))

			links := page.Props["roles"].(map[string]any)["links"].([]any)
			next := links[len(links)-1].(map[string]any)
			Expect(next["label"]).To(Equal("Next &raquo;"))

			target, err := url.Parse(next["url"].(string))
			Expect(err).NotTo(HaveOccurred())
			Expect(target.Path).To(Equal("/roles"))
			Expect(target.Query().Get("search")).To(Equal("role"))
			Expect(target.Query().Get("limit")).To(Equal("5"))
			Expect(target.Query().Get("page")).To(Equal("2"))

			second := cl.page(target.String())
			Expect(rows(second, "roles")).To(HaveLen(5))
			Expect(second.Props["filters"]).To(HaveKeyWithValue("search", "role"))
		})

		It("responde o documento HTML fora do frontend", func() {
			req, _ := http.NewRequest(http.MethodGet, "/roles", nil)
			req.Header.Set("Authorization", "Bearer "+cl.token)

			w := serve(a, req)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("text/html"))
			Expect(w.Body.String()).To(ContainSubstring("data-page="))
			Expect(w.Body.String()).To(ContainSubstring("RoleManagement"))
		})

		It("manda recarregar quando a versão dos assets mudou", func() {
			req, _ := http.NewRequest(http.MethodGet, "/roles?page=2", nil)
			req.Header.Set("Authorization", "Bearer "+cl.token)
			req.Header.Set("X-Inertia", "true")
			req.Header.Set("X-Inertia-Version", "old")

			w := serve(a, req)
			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(w.Header().Get("X-Inertia-Location")).To(Equal("/roles?page=2"))
		})
	})

	Describe("Store", func() {
		It("cria o role com as permissões e volta para a listagem", func() {
			w := cl.do(http.MethodPost, "/roles", map[string]any{
				"name":                "Editor",
				"selectedPermissions": []string{"user.index", "user.edit"},
			})
			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/roles"))

			page := cl.page("/roles")
			Expect(flash(page)).To(HaveKeyWithValue("success", "role created"))
			Expect(rows(page, "roles")[0]).To(HaveKeyWithValue("name", "Editor"))
			Expect(rows(page, "roles")[0]).To(HaveKeyWithValue("users", BeEquivalentTo(0)))
		})

		It("devolve os erros de validação para o formulário", func() {
			cl.referer = "/roles/create"

			w := cl.do(http.MethodPost, "/roles", map[string]any{
				"selectedPermissions": []string{"not an ability"},
			})
			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("http://example.com/roles/create"))

			page := cl.page("/roles/create")
			Expect(formErrors(page)).To(HaveKey("name"))
			Expect(formErrors(page)).To(HaveKey("selectedPermissions.0"))
		})

		It("não grava nada com permissão desconhecida", func() {
			w := cl.do(http.MethodPost, "/roles", map[string]any{
				"name":                "Ghost",
				"selectedPermissions": []string{"ghost.index"},
			})
			Expect(w.Code).To(Equal(http.StatusFound))

			page := cl.page("/roles/create")
			Expect(formErrors(page)).To(HaveKey("selectedPermissions"))

			listing, err := a.roles.ListRoles(a.ctx, listAll("Ghost"))
			Expect(err).NotTo(HaveOccurred())
			Expect(listing.Page.Items).To(BeEmpty())
		})

		It("recusa nome repetido", func() {
			w := cl.do(http.MethodPost, "/roles", map[string]any{"name": "Admin"})
			Expect(w.Code).To(Equal(http.StatusFound))

			page := cl.page("/roles/create")
			Expect(formErrors(page)).To(HaveKeyWithValue("name", "The name has already been taken."))
		})

		It("recusa nome só com espaços", func() {
			w := cl.do(http.MethodPost, "/roles", map[string]any{"name": "   "})
			Expect(w.Code).To(Equal(http.StatusFound))

			page := cl.page("/roles/create")
			Expect(formErrors(page)).To(HaveKeyWithValue("name", "The name field is required."))

			var count int64
			Expect(a.db.Table("roles").Count(&count).Error).To(Succeed())
			Expect(count).To(BeEquivalentTo(2))
		})
	})

	Describe("Show e Edit", func() {
		It("mostra permissões e usuários do role", func() {
			role := a.createRole("Support", "user.index")
			a.createUser("Ana", "ana@example.com", "Support")

			page := cl.page(fmt.Sprintf("/roles/%d", role.ID))
			Expect(page.Component).To(Equal("RoleManagement/Show"))

			detail := page.Props["role"].(map[string]any)
			Expect(detail["rolePermissions"]).To(ConsistOf("user.index"))
			Expect(detail["assignUser"]).To(HaveLen(1))
			Expect(detail["permissionGroup"]).To(HaveLen(2))
		})

		It("responde 404 para id desconhecido", func() {
			w := cl.do(http.MethodGet, "/roles/999", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))

			w = cl.do(http.MethodGet, "/roles/abc/edit", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("Update", func() {
		It("substitui as permissões e volta com 303", func() {
			role := a.createRole("Support", "user.index", "user.edit")
			cl.referer = fmt.Sprintf("/roles/%d/edit", role.ID)

			w := cl.do(http.MethodPut, fmt.Sprintf("/roles/%d", role.ID), map[string]any{
				"name":                "Support",
				"selectedPermissions": []string{"role.index"},
			})
			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(w.Header().Get("Location")).To(Equal("http://example.com" + cl.referer))

			page := cl.page(cl.referer)
			Expect(flash(page)).To(HaveKeyWithValue("success", "role updated"))
			Expect(page.Props["rolePermissions"]).To(ConsistOf("role.index"))
		})

		It("tira o acesso de quem tinha o role na hora", func() {
			role := a.createRole("Support", "role.index")
			user := a.createUser("Ana", "ana@example.com", "Support")
			ana := a.clientFor(user.ID)

			Expect(ana.do(http.MethodGet, "/roles", nil).Code).To(Equal(http.StatusOK))

			w := cl.do(http.MethodPut, fmt.Sprintf("/roles/%d", role.ID), map[string]any{"name": "Support"})
			Expect(w.Code).To(Equal(http.StatusSeeOther))

			Expect(ana.do(http.MethodGet, "/roles", nil).Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("Destroy", func() {
		DescribeTable("recusa os roles reservados sem alterar nada",
			func(id uint) {
				w := cl.do(http.MethodDelete, fmt.Sprintf("/roles/%d", id), nil)
				Expect(w.Code).To(Equal(http.StatusSeeOther))
				Expect(w.Header().Get("Location")).To(Equal("/roles"))

				page := cl.page("/roles")
				Expect(flash(page)).To(HaveKeyWithValue("danger", "Sorry, the role cannot be deleted."))

				_, err := a.roles.GetRole(a.ctx, id)
				Expect(err).NotTo(HaveOccurred())
			},
			Entry("Super Admin", entities.RootRoleID),
			Entry("Admin", entities.AdminRoleID),
		)

		It("remove os demais", func() {
			role := a.createRole("Temp")

			w := cl.do(http.MethodDelete, fmt.Sprintf("/roles/%d", role.ID), nil)
			Expect(w.Code).To(Equal(http.StatusSeeOther))

			page := cl.page("/roles")
			Expect(flash(page)).To(HaveKeyWithValue("success", "role deleted"))
			for _, row := range rows(page, "roles") {
				Expect(row["name"]).NotTo(Equal("Temp"))
			}
		})
	})

	It("compartilha o usuário e as habilidades com todas as páginas", func() {
		page := cl.page("/roles")

		raw, err := json.Marshal(page.Props["auth"])
		Expect(err).NotTo(HaveOccurred())

		var auth struct {
			User        struct{ Email string }
			Permissions []string
		}
		Expect(json.Unmarshal(raw, &auth)).To(Succeed())
		Expect(auth.User.Email).To(Equal("root@example.com"))
		Expect(auth.Permissions).To(ContainElements("role.index", "user.delete"))
	})
})
