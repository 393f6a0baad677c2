package main

import (
	"fmt"
	"log"
	"os"

	api "tradegate/cmd/tradegate"
	"tradegate/conf"
	"tradegate/internal/middleware"
	"tradegate/pkg/cache"
	"tradegate/pkg/db"
	"tradegate/pkg/logger"

	"go.uber.org/multierr"
)

// 启动服务（监听webhook）

/*
测试

BODY='{"symbol":"ETHUSDT.P","side":"long","entry_price":2950.5}'
SECRET="ab12cd34ef56abcdef1234567890abcdef1234567890abcdef1234567890"
SIGNATURE=$(echo -n $BODY | openssl dgst -sha256 -hmac $SECRET | sed 's/^.* //')

curl -X POST http://localhost:8090/webhook \
  -H "Content-Type: application/json" \
  -H "X-Signature: $SIGNATURE" \
  -d "$BODY"
*/

func main() {

	// 加载配置文件
	err := conf.LoadConfig("conf/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appCfg := conf.AppConfig
	logger.InitLogger(&appCfg.Log, appCfg.AppName)

	if appCfg.Mexc.ApiKey == "" || appCfg.Mexc.SecretKey == "" {
		logger.Fatal("MEXC_API_KEY 或 MEXC_API_SECRET 未配置")
	}
	if appCfg.Mexc.Testnet {
		logger.Info("Testnet模式：MEXC REST base已切到testnet")
	}

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")
	if dbUser == "" || dbPass == "" || dbHost == "" {
		dbUser = appCfg.Db.Username
		dbPass = appCfg.Db.Password
		dbHost = appCfg.Db.Host
		dbPort = appCfg.Db.Port
		dbName = appCfg.Db.DbName
	}

	// 初始化数据库，连不上时订单不落库、风控防抖只剩redis
	datasource, err := db.Init(db.Config{
		User:      dbUser,
		Password:  dbPass,
		Host:      dbHost,
		Port:      dbPort,
		DBName:    dbName,
		ParseTime: true,
	})
	if err != nil {
		logger.Warnf("数据库初始化失败，订单记录降级: %v", err)
	}

	redisHost := os.Getenv("REDIS_HOST")
	redisPort := os.Getenv("REDIS_PORT")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	if redisHost != "" && redisPort != "" {
		appCfg.Redis.Addr = fmt.Sprintf("%s:%s", redisHost, redisPort)
	}
	if redisPassword != "" {
		appCfg.Redis.Password = redisPassword
	}

	// 初始化redis缓存，redis挂掉时风控降级到数据库防抖
	redisOk := true
	if err := cache.InitRedis(appCfg.Redis); err != nil {
		logger.Warnf("redis初始化失败，信号防抖降级: %v", err)
		redisOk = false
	}

	// 创建并启动服务
	srv := api.NewServer(&appCfg)
	srv.RegisterOnShutdown(func() {
		var closeErr error
		if datasource != nil {
			if m, err := datasource.DB(); err == nil {
				closeErr = multierr.Append(closeErr, m.Close())
			}
		}
		if redisOk {
			closeErr = multierr.Append(closeErr, cache.CloseRedis())
		}
		closeErr = multierr.Append(closeErr, logger.Sync())
		if closeErr != nil {
			log.Printf("shutdown cleanup: %v", closeErr)
		}
	})
	srvRouter := api.InitRouter(datasource, redisOk)

	srv.Run(middleware.NewMiddleware(), srvRouter)
}
