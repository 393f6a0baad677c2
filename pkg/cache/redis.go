package cache

import (
	"context"
	"time"

	"tradegate/conf"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedis 初始化redisClient
func InitRedis(redisCfg conf.RedisConfig) error {
	redisClient = redis.NewClient(&redis.Options{
		DB:              redisCfg.Db,
		Addr:            redisCfg.Addr,
		Password:        redisCfg.Password,
		PoolSize:        redisCfg.PoolSize,
		MinIdleConns:    redisCfg.MinIdleConns,
		ConnMaxIdleTime: time.Duration(redisCfg.IdleTimeout) * time.Second,
	})
	_, err := redisClient.Ping(context.TODO()).Result()
	return err
}

func GetRedisClient() *redis.Client {
	if nil == redisClient {
		panic("Please initialize the Redis client first!")
	}
	return redisClient
}

// 关闭redis client
func CloseRedis() error {
	if nil != redisClient {
		return redisClient.Close()
	}
	return nil
}
