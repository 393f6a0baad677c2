package model

import "time"

type OrderSide string

const (
	// 做多
	SideLong OrderSide = "long"
	// 做空
	SideShort OrderSide = "short"
	// 平掉当前持仓
	SideClose OrderSide = "close"
)

type OrderType string

const (
	// 市价购买
	Market OrderType = "market"
	// 限价购买
	Limit OrderType = "limit"
)

type Order struct {
	Symbol     string // MEXC合约符号，例如 ETH_USDT
	Side       OrderSide
	Price      float64 // 限价单价格，市价单为0
	Quantity   float64
	OrderType  OrderType
	Leverage   int  // 杠杆倍数
	ReduceOnly bool // 只减仓，用于止盈/平仓单
	Comment    string
	Timestamp  time.Time // 信号触发时间
}

type OrderResponse struct {
	OrderId string
	Status  int
	Message string
}

// OrderResult 一次信号执行的结果：市价入场单+止盈单
type OrderResult struct {
	EntryOrderId      string  `json:"entry_order_id"`
	TakeProfitOrderId string  `json:"take_profit_order_id"`
	Symbol            string  `json:"symbol"`
	Quantity          float64 `json:"quantity"`
	EntryPrice        float64 `json:"entry_price"`
	TakeProfitPrice   float64 `json:"take_profit_price"`
	// side=close时返回的平仓订单id列表
	ClosedOrderIds []string `json:"closed_order_ids,omitempty"`
}

type PositionInfo struct {
	Symbol     string    // 币
	Dir        OrderSide // 方向
	Amount     float64   // 持有张数
	AvgPrice   float64   // 开仓均价
	Leverage   int       // 杠杆倍数
	PositionId string    // 仓位id
}

// 订单落库记录
type OrderRecord struct {
	ID        uint      `gorm:"column:id;primary_key;" json:"id"` // 主键id，自增长，不用设置
	OrderId   string    `gorm:"column:order_id;" json:"order_id"` // 交易所订单id
	Symbol    string    `gorm:"column:symbol" json:"symbol"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	Side       OrderSide `gorm:"column:side" json:"side"`
	Price      float64   `gorm:"column:price" json:"price"`
	Quantity   float64   `gorm:"column:quantity" json:"quantity"`
	OrderType  OrderType `gorm:"column:order_type" json:"order_type"`
	TP         float64   `gorm:"column:tp" json:"tp"`
	Leverage   int       `gorm:"column:leverage" json:"leverage"`
	ReduceOnly bool      `gorm:"column:reduce_only" json:"reduce_only"`
	Comment    string    `gorm:"column:comment" json:"comment"`
	Timestamp  time.Time `gorm:"column:timestamp" json:"timestamp"` // 信号触发时间
}

func (OrderRecord) TableName() string {
	return "order_record"
}
