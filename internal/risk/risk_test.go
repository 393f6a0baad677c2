package risk

import (
	"context"
	"testing"
	"time"

	"tradegate/internal/model"
)

type fakeStore struct {
	last model.OrderRecord
	err  error
}

func (f *fakeStore) OrderGetLast(ctx context.Context, symbol string, side string) (model.OrderRecord, error) {
	return f.last, f.err
}

func TestRiskControl_Allow(t *testing.T) {
	store := &fakeStore{}
	rc := NewRiskControl(nil, store, 5*time.Second)

	// 没有历史订单，放行
	if err := rc.Allow(context.Background(), "ETH_USDT", model.SideLong); err != nil {
		t.Errorf("expected allow, got %v", err)
	}

	// 刚下过同方向的单，拒绝
	store.last = model.OrderRecord{Symbol: "ETH_USDT", Side: model.SideLong, CreatedAt: time.Now()}
	if err := rc.Allow(context.Background(), "ETH_USDT", model.SideLong); err == nil {
		t.Error("expected reject within interval")
	}

	// 间隔已过，放行
	store.last.CreatedAt = time.Now().Add(-time.Minute)
	if err := rc.Allow(context.Background(), "ETH_USDT", model.SideLong); err != nil {
		t.Errorf("expected allow after interval, got %v", err)
	}
}

func TestRiskControl_AllowValidation(t *testing.T) {
	rc := NewRiskControl(nil, nil, time.Second)

	if err := rc.Allow(context.Background(), "", model.SideLong); err == nil {
		t.Error("expected reject for empty symbol")
	}
	if err := rc.Allow(context.Background(), "ETH_USDT", model.OrderSide("hold")); err == nil {
		t.Error("expected reject for unknown side")
	}
	// 没有redis也没有数据库时直接放行
	if err := rc.Allow(context.Background(), "ETH_USDT", model.SideClose); err != nil {
		t.Errorf("expected allow, got %v", err)
	}
}
