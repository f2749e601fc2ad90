package http_test

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/avantpro-admin/internal/handlers/middleware"
	"github.com/rafabene/avantpro-admin/internal/testutil"
)

var _ = Describe("AuthHandler", func() {
	var (
		a  *app
		cl *client
	)

	BeforeEach(func() {
		a = newApp()
		cl = a.clientFor(0)
	})

	It("autentica pelo cookie depois do login", func() {
		w := cl.do(http.MethodPost, "/login", map[string]any{
			"email":    testutil.RootEmail,
			"password": testutil.RootPassword,
		})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"token"`))
		Expect(cl.cookies).To(HaveKey(middleware.TokenCookieName))
		Expect(cl.cookies[middleware.TokenCookieName].HttpOnly).To(BeTrue())

		page := cl.page("/users")
		Expect(page.Component).To(Equal("User/List"))
	})

	It("recusa senha errada com 401", func() {
		w := cl.do(http.MethodPost, "/login", map[string]any{
			"email":    testutil.RootEmail,
			"password": "wrong",
		})
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(cl.cookies).NotTo(HaveKey(middleware.TokenCookieName))
	})

	It("recusa usuário inativo", func() {
		user := a.createUser("Carla", "carla@example.com", "Admin")
		Expect(a.db.Exec("UPDATE users SET is_active = ? WHERE id = ?", false, user.ID).Error).To(Succeed())

		w := cl.do(http.MethodPost, "/login", map[string]any{
			"email":    "carla@example.com",
			"password": "password",
		})
		Expect(w.Code).To(Equal(http.StatusUnauthorized))

		token, _, err := a.tokens.Issue(user.ID)
		Expect(err).NotTo(HaveOccurred())

		req, _ := http.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		Expect(serve(a, req).Code).To(Equal(http.StatusUnauthorized))
	})

	It("logout apaga o cookie e avisa na página de login", func() {
		cl.do(http.MethodPost, "/login", map[string]any{
			"email":    testutil.RootEmail,
			"password": testutil.RootPassword,
		})

		w := cl.do(http.MethodPost, "/logout", nil)
		Expect(w.Code).To(Equal(http.StatusFound))
		Expect(w.Header().Get("Location")).To(Equal("/login"))
		Expect(cl.cookies).NotTo(HaveKey(middleware.TokenCookieName))

		w = cl.do(http.MethodGet, "/users", nil)
		Expect(w.Code).To(Equal(http.StatusConflict))
	})
})
