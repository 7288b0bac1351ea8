package scanning

import (
	"encoding/json"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

var _ = Describe("Ollama", func() {
	var (
		server  *ghttp.Server
		scanner *Ollama
		data    *ReceiptData
		err     error
	)

	BeforeEach(func() {
		server = ghttp.NewServer()
		var newErr error
		scanner, newErr = NewOllama(server.URL(), "llava")
		Expect(newErr).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		server.Close()
	})

	JustBeforeEach(func() {
		data, err = scanner.ScanReceipt([]byte("\x89PNG fake"), "image/png")
	})

	When("the model answers with receipt JSON", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest("POST", "/api/chat"),
				func(w http.ResponseWriter, r *http.Request) {
					var req ollamaChatRequest
					Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
					Expect(req.Model).To(Equal("llava"))
					Expect(req.Messages[1].Images).To(HaveLen(1))
				},
				ghttp.RespondWithJSONEncoded(http.StatusOK, ollamaChatResponse{
					Message: ollamaMessage{Role: "assistant", Content: `{"merchant": "Hilton", "total": 120}`},
					Done:    true,
				}),
			))
		})

		It("returns the parsed data", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Merchant).To(Equal("Hilton"))
			Expect(*data.Total).To(Equal(120.0))
		})
	})

	When("the API fails", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.RespondWith(http.StatusInternalServerError, "model not loaded"))
		})

		It("reports the service as unavailable", func() {
			Expect(err).To(MatchError(ErrServiceUnavailable))
		})
	})
})
