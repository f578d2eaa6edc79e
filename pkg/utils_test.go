package pkg

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func clientIPFor(headers map[string]string) string {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req, _ := http.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.9:4567"

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.Request = req

	return GetClientIP(c)
}

func TestGetClientIP(t *testing.T) {
	RegisterTestingT(t)

	Expect(clientIPFor(map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"})).To(Equal("1.2.3.4"))
	Expect(clientIPFor(map[string]string{"X-Real-IP": "9.9.9.9"})).To(Equal("9.9.9.9"))
	Expect(clientIPFor(nil)).To(Equal("10.0.0.9"))
}
