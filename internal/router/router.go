package router

import (
	"tradegate/internal/handler/ping"
	"tradegate/internal/handler/webhook"
	"tradegate/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ApiRouter struct {
	wh *webhook.Handler
}

func NewApiRouter(wh *webhook.Handler) *ApiRouter {
	return &ApiRouter{wh: wh}
}

func (api *ApiRouter) Load(g *gin.Engine) {
	g.GET("/ping", ping.Ping())
	// TradingView只认 /webhook 这种裸路径
	g.POST("/webhook", middleware.AntiDuplicateMiddleware(), api.wh.HandleWebhook())
}
