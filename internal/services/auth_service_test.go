package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/avantpro-admin/internal/domain/entities"
	domainerrors "github.com/rafabene/avantpro-admin/internal/domain/errors"
	"github.com/rafabene/avantpro-admin/internal/services"
	"github.com/rafabene/avantpro-admin/internal/testutil"
)

var _ = Describe("AuthService", func() {
	var f *fixture

	BeforeEach(func() {
		f = newFixture()
	})

	login := func(email, password string) (*services.LoginResult, error) {
		return f.auth.Login(f.ctx, services.LoginInput{
			Email:     email,
			Password:  password,
			IPAddress: "203.0.113.7",
			UserAgent: "ginkgo",
		})
	}

	It("emite um token e registra o login", func() {
		result, err := login(testutil.RootEmail, testutil.RootPassword)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.User.ID).To(Equal(entities.RootUserID))

		userID, err := f.tokens.Parse(result.Token)
		Expect(err).NotTo(HaveOccurred())
		Expect(userID).To(Equal(entities.RootUserID))

		logins, err := f.users.RecentLogins(f.ctx, entities.RootUserID)
		Expect(err).NotTo(HaveOccurred())
		Expect(logins).To(HaveLen(1))
		Expect(logins[0].IPAddress).To(Equal("203.0.113.7"))
		Expect(logins[0].UserAgent).To(Equal("ginkgo"))
	})

	It("recusa senha errada sem registrar login", func() {
		_, err := login(testutil.RootEmail, "wrong")
		Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))

		logins, err := f.users.RecentLogins(f.ctx, entities.RootUserID)
		Expect(err).NotTo(HaveOccurred())
		Expect(logins).To(BeEmpty())
	})

	It("recusa email desconhecido", func() {
		_, err := login("ghost@example.com", "password")
		Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))
	})

	It("recusa usuário inativo", func() {
		_, err := f.users.CreateUser(f.ctx, root, services.UserInput{
			Name: "Ana", Email: "ana@example.com", Role: "Admin",
		})
		Expect(err).NotTo(HaveOccurred())

		_, err = login("ana@example.com", placeholderPassword)
		Expect(err).To(MatchError(domainerrors.ErrInactiveUser))
	})

	Describe("Identify", func() {
		It("resolve o usuário do token", func() {
			token, _, err := f.tokens.Issue(entities.RootUserID)
			Expect(err).NotTo(HaveOccurred())

			user, err := f.auth.Identify(f.ctx, token)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal(entities.RootUserID))
		})

		It("recusa token inválido", func() {
			_, err := f.auth.Identify(f.ctx, "garbage")
			Expect(err).To(MatchError(domainerrors.ErrUnauthorized))
		})

		It("recusa token de usuário removido", func() {
			ana := f.createUser("Ana", "ana@example.com", "Admin")
			token, _, err := f.tokens.Issue(ana.ID)
			Expect(err).NotTo(HaveOccurred())

			Expect(f.users.DeleteUser(f.ctx, root, ana.ID)).To(Succeed())

			_, err = f.auth.Identify(f.ctx, token)
			Expect(err).To(MatchError(domainerrors.ErrUnauthorized))
		})
	})
})
