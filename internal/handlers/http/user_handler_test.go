package http_test

import (
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	"github.com/rafabene/avantpro-admin/internal/testutil"
)

var _ = Describe("UserHandler", func() {
	var (
		a  *app
		cl *client
	)

	BeforeEach(func() {
		a = newApp()
		cl = a.clientFor(entities.RootUserID)
		a.createRole("Editor", "user.index")
	})

	userForm := func(overrides map[string]any) map[string]any {
		form := map[string]any{
			"name":      "Carla Dias",
			"email":     "carla@example.com",
			"phone":     "11 99999-0000",
			"is_active": true,
			"user_role": "Editor",
		}
		for key, value := range overrides {
			form[key] = value
		}
		return form
	}

	Describe("Index", func() {
		It("mostra o primeiro role ou \"no role\"", func() {
			a.createUser("Carla", "carla@example.com", "Editor")
			orphan := a.createUser("Bruno", "bruno@example.com", "Editor")
			Expect(a.db.Exec("DELETE FROM user_roles WHERE user_id = ?", orphan.ID).Error).To(Succeed())

			page := cl.page("/users")
			Expect(page.Component).To(Equal("User/List"))

			roles := map[string]any{}
			for _, row := range rows(page, "users") {
				roles[row["email"].(string)] = row["role"]
			}
			Expect(roles).To(HaveKeyWithValue("carla@example.com", "Editor"))
			Expect(roles).To(HaveKeyWithValue("bruno@example.com", "no role"))
			Expect(roles).To(HaveKeyWithValue(testutil.RootEmail, "Super Admin"))
			Expect(page.Props["userCount"]).To(BeEquivalentTo(3))
		})

		It("busca por nome ou email sem diferenciar maiúsculas", func() {
			a.createUser("Carla", "carla@example.com", "Editor")
			a.createUser("Bruno", "bruno@acme.io", "Editor")

			page := cl.page("/users?search=ACME")
			Expect(rows(page, "users")).To(HaveLen(1))
			Expect(rows(page, "users")[0]).To(HaveKeyWithValue("name", "Bruno"))

			page = cl.page("/users?search=%20%20")
			Expect(rows(page, "users")).To(HaveLen(3))
		})
	})

	Describe("Store", func() {
		It("cria com avatar padrão, senha provisória e um role", func() {
			w := cl.do(http.MethodPost, "/users", userForm(map[string]any{"is_active": false}))
			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/users"))

			page := cl.page("/users")
			Expect(flash(page)).To(HaveKeyWithValue("success", "User created."))

			user, err := a.userRepo.FindByEmail(a.ctx, "carla@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(user).NotTo(BeNil())
			Expect(user.Avatar).To(Equal(testutil.Avatar))
			Expect(user.IsActive).To(BeFalse())
			Expect(testutil.Hasher().Compare(user.PasswordHash, "password")).To(Succeed())

			details, err := a.users.GetUser(a.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(details.Roles).To(HaveLen(1))
			Expect(details.Roles[0].Name).To(Equal("Editor"))
		})

		It("devolve o formulário quando falta campo obrigatório", func() {
			cl.referer = "/users/create"
			form := userForm(nil)
			delete(form, "is_active")
			delete(form, "user_role")

			w := cl.do(http.MethodPost, "/users", form)
			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("http://example.com/users/create"))

			page := cl.page("/users/create")
			Expect(formErrors(page)).To(HaveKey("is_active"))
			Expect(formErrors(page)).To(HaveKey("user_role"))
		})

		It("não cria usuário com o role raiz", func() {
			w := cl.do(http.MethodPost, "/users", userForm(map[string]any{"user_role": "Super Admin"}))
			Expect(w.Code).To(Equal(http.StatusFound))

			page := cl.page("/users/create")
			Expect(formErrors(page)).To(HaveKey("user_role"))

			user, err := a.userRepo.FindByEmail(a.ctx, "carla@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(user).To(BeNil())
		})

		It("não cria usuário com role desconhecido", func() {
			w := cl.do(http.MethodPost, "/users", userForm(map[string]any{"user_role": "Ghost"}))
			Expect(w.Code).To(Equal(http.StatusFound))

			page := cl.page("/users/create")
			Expect(formErrors(page)).To(HaveKey("user_role"))

			user, err := a.userRepo.FindByEmail(a.ctx, "carla@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(user).To(BeNil())
		})

		It("recusa email repetido", func() {
			w := cl.do(http.MethodPost, "/users", userForm(map[string]any{"email": testutil.RootEmail}))
			Expect(w.Code).To(Equal(http.StatusFound))

			page := cl.page("/users/create")
			Expect(formErrors(page)).To(HaveKey("email"))
		})
	})

	Describe("Show", func() {
		It("mostra roles e últimos logins", func() {
			login := a.clientFor(0)
			w := login.do(http.MethodPost, "/login", map[string]any{
				"email":    testutil.RootEmail,
				"password": testutil.RootPassword,
			})
			Expect(w.Code).To(Equal(http.StatusOK))

			page := cl.page(fmt.Sprintf("/users/%d", entities.RootUserID))
			Expect(page.Component).To(Equal("User/Show"))

			user := page.Props["user"].(map[string]any)
			Expect(user["login_histories"]).To(HaveLen(1))
			Expect(user["roles"]).To(HaveLen(1))
		})
	})

	Describe("Update", func() {
		It("mantém a senha sem password_reset e regera com ele", func() {
			user := a.createUser("Carla", "carla@example.com", "Editor")
			Expect(a.db.Exec("UPDATE users SET password_hash = 'custom' WHERE id = ?", user.ID).Error).To(Succeed())
			target := fmt.Sprintf("/users/%d", user.ID)

			w := cl.do(http.MethodPut, target, userForm(map[string]any{"name": "Carla Souza"}))
			Expect(w.Code).To(Equal(http.StatusSeeOther))

			stored, err := a.userRepo.FindByID(a.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Name).To(Equal("Carla Souza"))
			Expect(stored.PasswordHash).To(Equal("custom"))

			w = cl.do(http.MethodPut, target, userForm(map[string]any{"password_reset": true}))
			Expect(w.Code).To(Equal(http.StatusSeeOther))

			stored, err = a.userRepo.FindByID(a.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(testutil.Hasher().Compare(stored.PasswordHash, "password")).To(Succeed())
		})

		It("troca o role e avisa com sucesso na página anterior", func() {
			a.createRole("Support")
			user := a.createUser("Carla", "carla@example.com", "Editor")
			cl.referer = fmt.Sprintf("/users/%d/edit", user.ID)

			w := cl.do(http.MethodPatch, fmt.Sprintf("/users/%d", user.ID), userForm(map[string]any{"user_role": "Support"}))
			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(w.Header().Get("Location")).To(Equal("http://example.com" + cl.referer))

			page := cl.page(cl.referer)
			Expect(flash(page)).To(HaveKeyWithValue("success", "User updated."))

			roles := page.Props["user"].(map[string]any)["roles"].([]any)
			Expect(roles).To(HaveLen(1))
			Expect(roles[0]).To(HaveKeyWithValue("name", "Support"))
		})
	})

	Describe("Destroy", func() {
		It("recusa o usuário raiz", func() {
			a.createRole("Remover", "user.index", "user.delete")
			other := a.createUser("Carla", "carla@example.com", "Remover")
			carla := a.clientFor(other.ID)

			w := carla.do(http.MethodDelete, fmt.Sprintf("/users/%d", entities.RootUserID), nil)
			Expect(w.Code).To(Equal(http.StatusSeeOther))

			page := carla.page("/users")
			Expect(flash(page)).To(HaveKeyWithValue("danger", "Sorry, the user cannot be deleted."))
			Expect(page.Props["userCount"]).To(BeEquivalentTo(2))

			stored, err := a.userRepo.FindByID(a.ctx, entities.RootUserID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).NotTo(BeNil())
		})

		It("recusa apagar a si mesmo", func() {
			w := cl.do(http.MethodDelete, fmt.Sprintf("/users/%d", entities.RootUserID), nil)
			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(w.Header().Get("Location")).To(Equal("/users"))

			page := cl.page("/users")
			Expect(flash(page)).To(HaveKeyWithValue("danger", "Sorry, the user cannot be deleted."))
		})

		It("remove outro usuário", func() {
			user := a.createUser("Carla", "carla@example.com", "Editor")

			w := cl.do(http.MethodDelete, fmt.Sprintf("/users/%d", user.ID), nil)
			Expect(w.Code).To(Equal(http.StatusSeeOther))

			page := cl.page("/users")
			Expect(flash(page)).To(HaveKeyWithValue("success", "User deleted."))
			Expect(page.Props["userCount"]).To(BeEquivalentTo(1))
		})
	})
})
