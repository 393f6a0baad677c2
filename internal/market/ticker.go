package market

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"tradegate/internal/consts"
	"tradegate/pkg/logger"

	"github.com/gorilla/websocket"
)

// TickerFeed 通过MEXC合约websocket维护一份最新价缓存
// 信号里没带价格时，优先用这里的缓存，避免每单都走REST
type TickerFeed struct {
	symbols []string

	mu     sync.RWMutex
	prices map[string]tickerEntry
	maxAge time.Duration
}

type tickerEntry struct {
	price float64
	at    time.Time
}

type tickerData struct {
	Symbol    string  `json:"symbol"`
	LastPrice float64 `json:"lastPrice"`
}

type wsMessage struct {
	Channel string     `json:"channel"`
	Data    tickerData `json:"data"`
	Ts      int64      `json:"ts"`
}

type subParams struct {
	Method string            `json:"method"`
	Param  map[string]string `json:"param"`
	ID     int64             `json:"id"`
}

func NewTickerFeed(symbols []string) *TickerFeed {
	return &TickerFeed{
		symbols: symbols,
		prices:  make(map[string]tickerEntry),
		maxAge:  time.Minute,
	}
}

// LastPrice 返回缓存里的最新价，过期或没有时返回false
func (f *TickerFeed) LastPrice(symbol string) (float64, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	entry, ok := f.prices[symbol]
	if !ok || time.Since(entry.at) > f.maxAge {
		return 0, false
	}
	return entry.price, true
}

func (f *TickerFeed) set(symbol string, price float64) {
	f.mu.Lock()
	f.prices[symbol] = tickerEntry{price: price, at: time.Now()}
	f.mu.Unlock()
}

// Run 维持websocket连接，断线后退避重连，ctx取消时退出
func (f *TickerFeed) Run(ctx context.Context) {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}
		if err := f.runOnce(ctx); err != nil {
			logger.Warnf("[Ticker] websocket断开: %v，%v后重连", err, backoff)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (f *TickerFeed) runOnce(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, consts.MexcContractWsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	for _, s := range f.symbols {
		sub := subParams{
			Method: "sub.ticker",
			Param:  map[string]string{"symbol": s},
			ID:     time.Now().UnixNano(),
		}
		if err := conn.WriteJSON(sub); err != nil {
			return err
		}
	}
	logger.Infof("[Ticker] 已订阅 %d 个symbol的行情", len(f.symbols))

	// 服务端要求周期性ping保活
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				conn.Close()
				return
			case <-ticker.C:
				if err := conn.WriteJSON(map[string]string{"method": "ping"}); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var reader io.Reader = bytes.NewReader(msg)
		// 行情帧可能是gzip压缩的
		if len(msg) > 2 && msg[0] == 0x1f && msg[1] == 0x8b {
			gz, err := gzip.NewReader(reader)
			if err != nil {
				continue
			}
			reader = gz
		}
		raw, err := io.ReadAll(reader)
		if err != nil {
			continue
		}

		var parsed wsMessage
		if err := json.Unmarshal(raw, &parsed); err != nil {
			continue
		}
		if parsed.Channel != "push.ticker" || parsed.Data.LastPrice <= 0 {
			continue
		}
		f.set(parsed.Data.Symbol, parsed.Data.LastPrice)
	}
}
