package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/telegram-files/gate/pkg/auth/basic"
)

type ginContext struct {
	c *gin.Context
}

func (g ginContext) Header(name string) string {
	return g.c.GetHeader(name)
}

func (g ginContext) RemoteAddr() string {
	return g.c.Request.RemoteAddr
}

func (g ginContext) Next() {
	g.c.Next()
}

func (g ginContext) Respond(status int, header http.Header, body string) {
	for k, v := range header {
		for _, vv := range v {
			g.c.Writer.Header().Add(k, vv)
		}
	}
	g.c.Data(status, "text/plain; charset=utf-8", []byte(body))
	g.c.Abort()
}

// GinBasicAuth returns the gate as gin middleware. Rejected requests abort the handler chain.
func GinBasicAuth(g *basic.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		g.Handle(ginContext{c: c})
	}
}
