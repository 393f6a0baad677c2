package model

import (
	"fmt"
	"strings"
)

/*
来源于TradingView告警模板的外部数据

	{
	  "symbol": "ETHUSDT.P",
	  "side": "long",
	  "entry_price": 2950.5,
	  "quantity": 0.01
	}
*/
type WebhookRequest struct {
	Symbol string `json:"symbol" binding:"required"` // ETHUSDT 或带后缀的 ETHUSDT.P
	Side   string `json:"side" binding:"required"`   // long / short / close
	// TradingView填入的触发价，为0时取交易所最新价
	EntryPrice float64 `json:"entry_price" binding:"omitempty,gt=0"`
	// 数量覆盖，为0时由余额和风险参数计算
	Quantity float64 `json:"quantity" binding:"omitempty,gt=0"`
	Comment  string  `json:"comment"`
}

// Side 转成内部订单方向
func (r *WebhookRequest) OrderSide() (OrderSide, error) {
	switch strings.ToLower(strings.TrimSpace(r.Side)) {
	case "long":
		return SideLong, nil
	case "short":
		return SideShort, nil
	case "close":
		return SideClose, nil
	default:
		return "", fmt.Errorf("invalid side: %s", r.Side)
	}
}

// NormalizeSymbol 把TradingView符号转成MEXC合约符号
// 例如 "ETHUSDT.P" -> "ETH_USDT"，只接受USDT本位
func NormalizeSymbol(symbol string) (string, error) {
	raw := strings.ToUpper(symbol)
	// 去掉 ".P" 之类的后缀
	if idx := strings.Index(raw, "."); idx >= 0 {
		raw = raw[:idx]
	}
	raw = strings.ReplaceAll(raw, "/", "")
	raw = strings.ReplaceAll(raw, "-", "")
	raw = strings.ReplaceAll(raw, "_", "")
	if !strings.HasSuffix(raw, "USDT") || len(raw) <= len("USDT") {
		return "", fmt.Errorf("unsupported symbol format: %s", symbol)
	}
	base := raw[:len(raw)-len("USDT")]
	return base + "_USDT", nil
}
