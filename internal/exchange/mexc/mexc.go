package mexc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tradegate/internal/consts"
	"tradegate/internal/model"
	"tradegate/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// MEXC USDT本位合约的REST客户端
// 私有接口用HMAC-SHA256签名，参数按字母序拼接

const (
	pathOrderSubmit    = "/api/v1/private/order/submit"
	pathAccountAsset   = "/api/v1/private/account/asset/"
	pathOpenPositions  = "/api/v1/private/position/open_positions"
	pathChangeLeverage = "/api/v1/private/position/change_leverage"
	pathTicker         = "/api/v1/contract/ticker"

	// 开多/开空/平空/平多
	sideOpenLong   = 1
	sideCloseShort = 2
	sideOpenShort  = 3
	sideCloseLong  = 4

	// 订单类型：限价/市价
	orderTypeLimit  = 1
	orderTypeMarket = 5

	// 逐仓
	openTypeIsolated = 1

	recvWindow = 5000
)

type Mexc struct {
	apiKey    string
	secretKey string
	baseURL   string
	cli       *http.Client
}

func New(apiKey, secretKey string, testnet bool) *Mexc {
	base := consts.MexcContractBase
	if testnet {
		base = consts.MexcContractTestnetBase
	}
	return &Mexc{
		apiKey:    apiKey,
		secretKey: secretKey,
		baseURL:   base,
		cli:       &http.Client{Timeout: 30 * time.Second},
	}
}

// apiResponse MEXC合约接口的统一外层结构
type apiResponse struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func timestampMs() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// doPrivatePost 发送签名后的POST请求
func (m *Mexc) doPrivatePost(ctx context.Context, path string, params map[string]interface{}) (json.RawMessage, error) {
	params["timestamp"] = timestampMs()
	params["recvWindow"] = recvWindow
	params["sign"] = Sign(m.secretKey, params)

	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-MEXC-APIKEY", m.apiKey)

	return m.do(req)
}

// doPrivateGet 发送签名后的GET请求
func (m *Mexc) doPrivateGet(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("timestamp", timestampMs())
	query.Set("recvWindow", strconv.Itoa(recvWindow))

	params := make(map[string]interface{}, len(query))
	for k := range query {
		params[k] = query.Get(k)
	}
	query.Set("sign", Sign(m.secretKey, params))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-MEXC-APIKEY", m.apiKey)

	return m.do(req)
}

func (m *Mexc) do(req *http.Request) (json.RawMessage, error) {
	resp, err := m.cli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(raw))
	}

	var ar apiResponse
	if err := json.Unmarshal(raw, &ar); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !ar.Success && ar.Code != 0 {
		return nil, fmt.Errorf("mexc error code=%d message=%s", ar.Code, ar.Message)
	}
	return ar.Data, nil
}

// PlaceOrder 提交订单，市价单Price为0
func (m *Mexc) PlaceOrder(ctx context.Context, order *model.Order) (*model.OrderResponse, error) {
	side, positionType, err := sideCode(order)
	if err != nil {
		return nil, err
	}

	orderType := orderTypeMarket
	price := ""
	if order.OrderType == model.Limit {
		orderType = orderTypeLimit
		price = strconv.FormatFloat(order.Price, 'f', -1, 64)
	}

	params := map[string]interface{}{
		"symbol":       order.Symbol,
		"price":        price,
		"vol":          strconv.FormatFloat(order.Quantity, 'f', -1, 64),
		"side":         side,
		"openType":     openTypeIsolated,
		"positionType": positionType,
		"leverage":     order.Leverage,
		"externalOid":  uuid.NewString(),
		"type":         orderType,
	}

	logger.Info("[MEXC] 提交订单",
		logger.Pair("symbol", order.Symbol),
		logger.Pair("side", side),
		logger.Pair("vol", params["vol"]),
		logger.Pair("type", orderType),
		logger.Pair("price", price))

	data, err := m.doPrivatePost(ctx, pathOrderSubmit, params)
	if err != nil {
		return nil, err
	}

	// data为订单id，可能是数字或者字符串
	var id interface{}
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("decode order id: %w", err)
	}
	return &model.OrderResponse{
		OrderId: cast.ToString(id),
		Status:  1,
		Message: "submitted",
	}, nil
}

// sideCode 把内部订单方向转成MEXC的side/positionType编码
// 开仓: 1=开多 3=开空；只减仓: 4=平多 2=平空
func sideCode(order *model.Order) (int, int, error) {
	if order.ReduceOnly {
		switch order.Side {
		case model.SideShort: // 卖出平多
			return sideCloseLong, 1, nil
		case model.SideLong: // 买入平空
			return sideCloseShort, 2, nil
		}
		return 0, 0, fmt.Errorf("invalid reduce-only side: %s", order.Side)
	}
	switch order.Side {
	case model.SideLong:
		return sideOpenLong, 1, nil
	case model.SideShort:
		return sideOpenShort, 2, nil
	}
	return 0, 0, fmt.Errorf("invalid side: %s", order.Side)
}

// GetLastPrice 查询合约最新成交价
func (m *Mexc) GetLastPrice(ctx context.Context, symbol string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		m.baseURL+pathTicker+"?symbol="+url.QueryEscape(symbol), nil)
	if err != nil {
		return 0, err
	}
	data, err := m.do(req)
	if err != nil {
		return 0, err
	}

	var ticker struct {
		Symbol    string  `json:"symbol"`
		LastPrice float64 `json:"lastPrice"`
	}
	if err := json.Unmarshal(data, &ticker); err != nil {
		return 0, fmt.Errorf("decode ticker: %w", err)
	}
	if ticker.LastPrice <= 0 {
		return 0, fmt.Errorf("no ticker for symbol %s", symbol)
	}
	return ticker.LastPrice, nil
}

// GetAvailableBalance 查询某个币种的可用余额
func (m *Mexc) GetAvailableBalance(ctx context.Context, coin string) (float64, error) {
	data, err := m.doPrivateGet(ctx, pathAccountAsset+coin, nil)
	if err != nil {
		return 0, err
	}

	var asset map[string]interface{}
	if err := json.Unmarshal(data, &asset); err != nil {
		return 0, fmt.Errorf("decode asset: %w", err)
	}
	// 不同版本的接口字段名不一致
	for _, key := range []string{"availableBalance", "availableCash"} {
		if v, ok := asset[key]; ok {
			return cast.ToFloat64(v), nil
		}
	}
	return 0, fmt.Errorf("available balance not found for %s", coin)
}

// SetLeverage 修改逐仓杠杆
func (m *Mexc) SetLeverage(ctx context.Context, symbol string, leverage int, side model.OrderSide) error {
	positionType := 1
	if side == model.SideShort {
		positionType = 2
	}
	params := map[string]interface{}{
		"symbol":       symbol,
		"leverage":     leverage,
		"openType":     openTypeIsolated,
		"positionType": positionType,
	}
	_, err := m.doPrivatePost(ctx, pathChangeLeverage, params)
	return err
}

// GetOpenPositions 查询持仓，symbol为空时返回全部
func (m *Mexc) GetOpenPositions(ctx context.Context, symbol string) ([]*model.PositionInfo, error) {
	query := url.Values{}
	if symbol != "" {
		query.Set("symbol", symbol)
	}
	data, err := m.doPrivateGet(ctx, pathOpenPositions, query)
	if err != nil {
		return nil, err
	}

	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode positions: %w", err)
	}

	positions := make([]*model.PositionInfo, 0, len(raw))
	for _, p := range raw {
		dir := model.SideLong
		if cast.ToInt(p["positionType"]) == 2 {
			dir = model.SideShort
		}
		positions = append(positions, &model.PositionInfo{
			Symbol:     cast.ToString(p["symbol"]),
			Dir:        dir,
			Amount:     cast.ToFloat64(p["holdVol"]),
			AvgPrice:   cast.ToFloat64(p["holdAvgPrice"]),
			Leverage:   cast.ToInt(p["leverage"]),
			PositionId: cast.ToString(p["positionId"]),
		})
	}
	return positions, nil
}
