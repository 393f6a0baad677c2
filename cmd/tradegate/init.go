package api

import (
	"context"
	"time"

	"tradegate/conf"
	"tradegate/internal/dao"
	"tradegate/internal/exchange/mexc"
	"tradegate/internal/executor"
	"tradegate/internal/handler/webhook"
	"tradegate/internal/market"
	"tradegate/internal/risk"
	"tradegate/internal/router"
	"tradegate/pkg/cache"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// InitRouter 组装依赖：交易所客户端 -> 行情缓存 -> 风控 -> 执行服务 -> webhook
func InitRouter(db *gorm.DB, redisOk bool) Router {
	appCfg := conf.AppConfig

	ex := mexc.New(appCfg.Mexc.ApiKey, appCfg.Mexc.SecretKey, appCfg.Mexc.Testnet)

	var d *dao.OrderDao
	if db != nil {
		d = dao.NewOrderDao(db)
	}

	var rdb redis.Cmdable
	if redisOk {
		rdb = cache.GetRedisClient()
	}

	var store risk.OrderStore
	if d != nil {
		store = d
	}
	rc := risk.NewRiskControl(rdb, store, time.Duration(appCfg.Trade.OrderInterval)*time.Second)

	// websocket行情缓存
	var feed *market.TickerFeed
	if len(appCfg.Trade.Symbols) > 0 {
		feed = market.NewTickerFeed(appCfg.Trade.Symbols)
		go feed.Run(context.Background())
	}

	var priceSource executor.PriceSource
	if feed != nil {
		priceSource = feed
	}
	var recorder executor.OrderRecorder
	if d != nil {
		recorder = d
	}
	svc := executor.NewService(ex, recorder, priceSource, appCfg.Trade.RiskRatio, appCfg.Trade.Leverage)

	wh := webhook.NewHandler(svc, rc, appCfg.Webhook.Secret)

	return router.NewApiRouter(wh)
}
