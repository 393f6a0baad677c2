package market

import (
	"testing"
	"time"
)

func TestTickerFeed_LastPrice(t *testing.T) {
	feed := NewTickerFeed([]string{"ETH_USDT"})

	if _, ok := feed.LastPrice("ETH_USDT"); ok {
		t.Error("expected no price before any push")
	}

	feed.set("ETH_USDT", 2950.5)
	price, ok := feed.LastPrice("ETH_USDT")
	if !ok || price != 2950.5 {
		t.Errorf("LastPrice = %v, %v, want 2950.5", price, ok)
	}

	// 过期的缓存不能再用
	feed.mu.Lock()
	feed.prices["ETH_USDT"] = tickerEntry{price: 2950.5, at: time.Now().Add(-2 * time.Minute)}
	feed.mu.Unlock()
	if _, ok := feed.LastPrice("ETH_USDT"); ok {
		t.Error("expected stale price to be rejected")
	}
}
