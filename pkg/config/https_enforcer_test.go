package config

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

func newHTTPSRouter(enabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewHTTPSEnforcer(zap.NewNop(), enabled).HTTPSMiddleware())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

func TestHTTPSEnforcer_Disabled(t *testing.T) {
	RegisterTestingT(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "http://api.example.com/health", nil)
	newHTTPSRouter(false).ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusOK))
}

func TestHTTPSEnforcer_RedirectsPlainHTTP(t *testing.T) {
	RegisterTestingT(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "http://api.example.com/health?x=1", nil)
	newHTTPSRouter(true).ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusMovedPermanently))
	Expect(w.Header().Get("Location")).To(Equal("https://api.example.com/health?x=1"))
}

func TestHTTPSEnforcer_AllowsForwardedHTTPSAndLocalhost(t *testing.T) {
	RegisterTestingT(t)
	router := newHTTPSRouter(true)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "http://api.example.com/health", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	router.ServeHTTP(w, req)
	Expect(w.Code).To(Equal(http.StatusOK))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "http://localhost:3002/health", nil)
	router.ServeHTTP(w, req)
	Expect(w.Code).To(Equal(http.StatusOK))
}
