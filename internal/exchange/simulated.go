package exchange

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"tradegate/internal/model"

	"github.com/google/uuid"
)

// 模拟交易所，本地联调和测试用
type SimulatedExchange struct {
	mu      sync.Mutex
	orders  map[string]*model.Order // 按订单id记录已提交的订单
	prices  map[string]float64
	balance float64
	lever   map[string]int
	posns   []*model.PositionInfo

	// 注入失败，用于测试失败路径
	FailBalance error
	FailOrder   error
	FailTicker  error

	// 第N次下单后开始失败（0表示不限制），用于模拟止盈单提交失败
	FailOrderAfter int
}

func NewSimulatedExchange() *SimulatedExchange {
	return &SimulatedExchange{
		orders:  make(map[string]*model.Order),
		prices:  make(map[string]float64),
		balance: 10000,
		lever:   make(map[string]int),
	}
}

// SetBalance 设置可用余额
func (s *SimulatedExchange) SetBalance(balance float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balance = balance
}

// SetInitialPrice 设置初始价格
func (s *SimulatedExchange) SetInitialPrice(symbol string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[symbol] = price
}

// SetPositions 设置当前持仓
func (s *SimulatedExchange) SetPositions(posns ...*model.PositionInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posns = posns
}

// Orders 返回按提交顺序无关的订单快照
func (s *SimulatedExchange) Orders() []*model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	return out
}

// OrderCount 已提交的订单数
func (s *SimulatedExchange) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *SimulatedExchange) PlaceOrder(ctx context.Context, req *model.Order) (*model.OrderResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailOrder != nil {
		return nil, s.FailOrder
	}
	if s.FailOrderAfter > 0 && len(s.orders) >= s.FailOrderAfter {
		return nil, errors.New("simulated order rejected")
	}

	cp := *req
	orderID := uuid.NewString()
	s.orders[orderID] = &cp

	return &model.OrderResponse{
		OrderId: orderID,
		Status:  1,
		Message: "Simulated order filled",
	}, nil
}

// 模拟版，返回本地价格并做小幅浮动，适合本地联调
func (s *SimulatedExchange) GetLastPrice(ctx context.Context, symbol string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailTicker != nil {
		return 0, s.FailTicker
	}

	price, ok := s.prices[symbol]
	if !ok {
		// 如果没有初始化，随机一个价格并记录
		price = 10000 + rand.Float64()*2000 // e.g., $10000 ~ $12000
		s.prices[symbol] = price
		return price, nil
	}

	// 模拟价格波动 ±0.5%
	fluctuation := (rand.Float64()*0.01 - 0.005) * price
	price += fluctuation
	s.prices[symbol] = price

	return price, nil
}

func (s *SimulatedExchange) GetAvailableBalance(ctx context.Context, coin string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailBalance != nil {
		return 0, s.FailBalance
	}
	return s.balance, nil
}

func (s *SimulatedExchange) SetLeverage(ctx context.Context, symbol string, leverage int, side model.OrderSide) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lever[symbol] = leverage
	return nil
}

func (s *SimulatedExchange) GetOpenPositions(ctx context.Context, symbol string) ([]*model.PositionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.PositionInfo, 0, len(s.posns))
	for _, p := range s.posns {
		if symbol == "" || p.Symbol == symbol {
			out = append(out, p)
		}
	}
	return out, nil
}
