package executor

import (
	"context"
	"math"
	"time"

	"tradegate/internal/consts"
	"tradegate/internal/exchange"
	"tradegate/internal/model"
	"tradegate/pkg/errors"
	"tradegate/pkg/errors/ecode"
	"tradegate/pkg/logger"
)

// OrderRecorder 落库接口，可为nil（纯内存模式）
type OrderRecorder interface {
	OrderCreateNew(ctx context.Context, record *model.OrderRecord) error
}

// PriceSource 本地价格缓存，信号没带价格时优先查这里
type PriceSource interface {
	LastPrice(symbol string) (float64, bool)
}

// Service 统一的下单服务：余额 -> 数量 -> 市价入场 -> 止盈限价
type Service struct {
	ex   exchange.Exchange
	d    OrderRecorder
	feed PriceSource

	riskRatio float64
	leverage  int
}

func NewService(ex exchange.Exchange, d OrderRecorder, feed PriceSource, riskRatio float64, leverage int) *Service {
	return &Service{
		ex:        ex,
		d:         d,
		feed:      feed,
		riskRatio: riskRatio,
		leverage:  leverage,
	}
}

// Execute 执行一条信号
// long/short: 开仓并挂止盈；close: 平掉该符号的全部持仓
// 止盈单提交失败时裸仓保留，错误里带上已成交的入场订单id
func (s *Service) Execute(ctx context.Context, req *model.WebhookRequest) (*model.OrderResult, error) {
	side, err := req.OrderSide()
	if err != nil {
		return nil, errors.WithCode(ecode.ValidateErr, err.Error())
	}
	symbol, err := model.NormalizeSymbol(req.Symbol)
	if err != nil {
		return nil, errors.WithCode(ecode.ValidateErr, err.Error())
	}

	if side == model.SideClose {
		return s.closeAll(ctx, symbol, req.Comment)
	}
	return s.open(ctx, symbol, side, req)
}

func (s *Service) open(ctx context.Context, symbol string, side model.OrderSide, req *model.WebhookRequest) (*model.OrderResult, error) {
	entryPrice, err := s.resolvePrice(ctx, symbol, req.EntryPrice)
	if err != nil {
		return nil, errors.Wrap(err, ecode.ExchangeErr, "获取最新价格失败")
	}

	balance, err := s.ex.GetAvailableBalance(ctx, consts.QuoteCurrency)
	if err != nil {
		return nil, errors.Wrap(err, ecode.ExchangeErr, "获取账户余额失败")
	}
	if balance <= 0 {
		return nil, errors.WithCode(ecode.RiskRejectErr, "可用余额不足")
	}
	logger.Infof("[Executor] %s 可用余额: %.4f", consts.QuoteCurrency, balance)

	// 杠杆设置失败不阻断下单，沿用账户上已有的杠杆
	if err := s.ex.SetLeverage(ctx, symbol, s.leverage, side); err != nil {
		logger.Warnf("[Executor] 设置杠杆失败: %v", err)
	}

	qty := req.Quantity
	if qty == 0 {
		qty = roundTo(balance*s.riskRatio*float64(s.leverage)/entryPrice, 3)
	}
	if qty <= 0 {
		return nil, errors.WithCode(ecode.RiskRejectErr, "数量计算为零，无法开仓")
	}

	now := time.Now()
	entry := &model.Order{
		Symbol:    symbol,
		Side:      side,
		Quantity:  qty,
		OrderType: model.Market,
		Leverage:  s.leverage,
		Comment:   req.Comment,
		Timestamp: now,
	}
	entryResp, err := s.ex.PlaceOrder(ctx, entry)
	if err != nil {
		return nil, errors.Wrap(err, ecode.ExchangeErr, "市价开仓失败")
	}
	s.record(ctx, entry, entryResp.OrderId, 0)
	logger.Info("[Executor] 已开仓",
		logger.Pair("symbol", symbol),
		logger.Pair("side", side),
		logger.Pair("qty", qty),
		logger.Pair("order_id", entryResp.OrderId))

	tpPrice := roundTo(computeTP(side, entryPrice), 2)
	tp := &model.Order{
		Symbol:     symbol,
		Side:       opposite(side),
		Price:      tpPrice,
		Quantity:   qty,
		OrderType:  model.Limit,
		Leverage:   s.leverage,
		ReduceOnly: true,
		Comment:    req.Comment,
		Timestamp:  now,
	}

	result := &model.OrderResult{
		EntryOrderId:    entryResp.OrderId,
		Symbol:          symbol,
		Quantity:        qty,
		EntryPrice:      entryPrice,
		TakeProfitPrice: tpPrice,
	}

	tpResp, err := s.ex.PlaceOrder(ctx, tp)
	if err != nil {
		// 已成交的仓位没有止盈保护，把入场订单id带回去给调用方处置
		logger.Errorf("[Executor] 止盈单提交失败，仓位暂无保护: %v", err)
		return result, errors.Wrapf(err, ecode.ExchangeErr,
			"止盈单提交失败，入场订单 %s 已成交", entryResp.OrderId)
	}
	s.record(ctx, tp, tpResp.OrderId, tpPrice)

	result.TakeProfitOrderId = tpResp.OrderId
	logger.Info("[Executor] 止盈单已挂出",
		logger.Pair("symbol", symbol),
		logger.Pair("tp_price", tpPrice),
		logger.Pair("order_id", tpResp.OrderId))
	return result, nil
}

// closeAll 平掉某个符号的全部持仓，只减仓市价单
func (s *Service) closeAll(ctx context.Context, symbol string, comment string) (*model.OrderResult, error) {
	positions, err := s.ex.GetOpenPositions(ctx, symbol)
	if err != nil {
		return nil, errors.Wrap(err, ecode.ExchangeErr, "查询持仓失败")
	}

	result := &model.OrderResult{Symbol: symbol}
	for _, p := range positions {
		if p.Amount <= 0 {
			continue
		}
		logger.Infof("[Executor] 平仓: %s %s %f", p.Symbol, p.Dir, p.Amount)
		order := &model.Order{
			Symbol:     p.Symbol,
			Side:       opposite(p.Dir),
			Quantity:   p.Amount,
			OrderType:  model.Market,
			Leverage:   p.Leverage,
			ReduceOnly: true,
			Comment:    comment,
			Timestamp:  time.Now(),
		}
		resp, err := s.ex.PlaceOrder(ctx, order)
		if err != nil {
			return result, errors.Wrap(err, ecode.ExchangeErr, "平仓失败")
		}
		s.record(ctx, order, resp.OrderId, 0)
		result.ClosedOrderIds = append(result.ClosedOrderIds, resp.OrderId)
		result.Quantity += p.Amount
	}
	return result, nil
}

// resolvePrice 信号价 > websocket缓存 > REST行情
func (s *Service) resolvePrice(ctx context.Context, symbol string, signalPrice float64) (float64, error) {
	if signalPrice > 0 {
		return signalPrice, nil
	}
	if s.feed != nil {
		if price, ok := s.feed.LastPrice(symbol); ok {
			return price, nil
		}
	}
	return s.ex.GetLastPrice(ctx, symbol)
}

// 落库失败只记日志，不影响订单流程
func (s *Service) record(ctx context.Context, order *model.Order, orderId string, tp float64) {
	if s.d == nil {
		return
	}
	record := &model.OrderRecord{
		OrderId:    orderId,
		Symbol:     order.Symbol,
		Side:       order.Side,
		Price:      order.Price,
		Quantity:   order.Quantity,
		OrderType:  order.OrderType,
		TP:         tp,
		Leverage:   order.Leverage,
		ReduceOnly: order.ReduceOnly,
		Comment:    order.Comment,
		Timestamp:  order.Timestamp,
	}
	if err := s.d.OrderCreateNew(ctx, record); err != nil {
		logger.Errorf("[Executor] 订单落库失败: %v", err)
	}
}

// computeTP 止盈价：做多 entry*(1+0.004)，做空 entry*(1-0.004)
func computeTP(side model.OrderSide, entryPrice float64) float64 {
	if side == model.SideLong {
		return entryPrice * (1 + consts.TakeProfitPercent)
	}
	return entryPrice * (1 - consts.TakeProfitPercent)
}

func opposite(side model.OrderSide) model.OrderSide {
	if side == model.SideLong {
		return model.SideShort
	}
	return model.SideLong
}

func roundTo(v float64, digits int) float64 {
	pow := math.Pow10(digits)
	return math.Round(v*pow) / pow
}
