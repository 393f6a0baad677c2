package risk

import (
	"context"
	"errors"
	"time"

	"tradegate/internal/consts"
	"tradegate/internal/model"
	"tradegate/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// OrderStore 查询最近订单记录，redis不可用时做防抖兜底
type OrderStore interface {
	OrderGetLast(ctx context.Context, symbol string, side string) (model.OrderRecord, error)
}

// 用于风控系统
type RiskControl struct {
	rdb redis.Cmdable // 可以为nil，降级走数据库
	d   OrderStore    // 可以为nil
	// 允许下单的时间间隔
	interval time.Duration
}

func NewRiskControl(rdb redis.Cmdable, d OrderStore, interval time.Duration) *RiskControl {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &RiskControl{
		rdb:      rdb,
		d:        d,
		interval: interval,
	}
}

// Allow 是否允许下单
// 同符号同方向的信号在间隔内只放行一个，防止TradingView重复告警打穿账户
func (r *RiskControl) Allow(ctx context.Context, symbol string, side model.OrderSide) error {
	if symbol == "" {
		return errors.New("缺少symbol，不支持")
	}
	if side != model.SideLong && side != model.SideShort && side != model.SideClose {
		return errors.New("未知的交易方向，不支持")
	}

	if r.rdb != nil {
		key := consts.SignalThrottlePrefix + symbol + ":" + string(side)
		ok, err := r.rdb.SetNX(ctx, key, time.Now().Unix(), r.interval).Result()
		if err == nil {
			if !ok {
				return errors.New("小于设定的时间间隔，不允许重复下单")
			}
			return nil
		}
		// redis异常时降级到数据库查询
		logger.Warnf("[Risk] redis防抖失败，降级到数据库: %v", err)
	}

	if r.d == nil {
		return nil
	}
	record, err := r.d.OrderGetLast(ctx, symbol, string(side))
	if err != nil {
		return err
	}
	if !record.CreatedAt.IsZero() && time.Since(record.CreatedAt) < r.interval {
		return errors.New("小于设定的时间间隔，不允许重复下单")
	}
	return nil
}
