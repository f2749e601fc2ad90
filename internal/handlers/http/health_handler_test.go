package http_test

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("HealthHandler", func() {
	It("responde sem autenticação", func() {
		a := newApp()

		for _, path := range []string{"/health", "/health/ready"} {
			req, _ := http.NewRequest(http.MethodGet, path, nil)
			w := serve(a, req)
			Expect(w.Code).To(Equal(http.StatusOK), path)
			Expect(w.Body.String()).To(ContainSubstring(`"status":"ok"`))
		}
	})
})
