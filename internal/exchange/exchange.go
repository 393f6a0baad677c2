package exchange

import (
	"context"

	"tradegate/internal/model"
)

type Exchange interface {
	// 下单
	PlaceOrder(ctx context.Context, order *model.Order) (*model.OrderResponse, error)
	// 获取最新价格
	GetLastPrice(ctx context.Context, symbol string) (float64, error)
	// 返回可用余额
	GetAvailableBalance(ctx context.Context, coin string) (float64, error)
	// 设置合约杠杆
	SetLeverage(ctx context.Context, symbol string, leverage int, side model.OrderSide) error
	// 查询某个符号的持仓
	GetOpenPositions(ctx context.Context, symbol string) ([]*model.PositionInfo, error)
}
