package middleware

import "github.com/gin-gonic/gin"

// 全局中间件，以Router的形式在server启动时加载
type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

func (m *Middleware) Load(g *gin.Engine) {
	g.Use(gin.Recovery())
	g.Use(RequestId())
	g.Use(Logger)
	g.Use(Secure())
}

// Secure 添加安全控制和资源访问
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000")
		}
		c.Next()
	}
}
