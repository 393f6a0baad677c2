package mexc

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"tradegate/internal/model"
)

func TestSign_OrderIndependent(t *testing.T) {
	secret := "test-secret"
	a := map[string]interface{}{"symbol": "ETH_USDT", "vol": "2.5", "side": 1}
	b := map[string]interface{}{"side": 1, "vol": "2.5", "symbol": "ETH_USDT"}

	if Sign(secret, a) != Sign(secret, b) {
		t.Error("signature must not depend on map iteration order")
	}
}

func TestSign_KnownVector(t *testing.T) {
	secret := "test-secret"
	params := map[string]interface{}{
		"b":     2,
		"a":     "1",
		"empty": "", // 空值必须跳过
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("a=1&b=2"))
	want := hex.EncodeToString(mac.Sum(nil))

	if got := Sign(secret, params); got != want {
		t.Errorf("Sign = %s, want %s", got, want)
	}
}

func TestSideCode(t *testing.T) {
	cases := []struct {
		name       string
		side       model.OrderSide
		reduceOnly bool
		wantSide   int
		wantPos    int
	}{
		{"open long", model.SideLong, false, sideOpenLong, 1},
		{"open short", model.SideShort, false, sideOpenShort, 2},
		{"close long", model.SideShort, true, sideCloseLong, 1},
		{"close short", model.SideLong, true, sideCloseShort, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			side, pos, err := sideCode(&model.Order{Side: tc.side, ReduceOnly: tc.reduceOnly})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if side != tc.wantSide || pos != tc.wantPos {
				t.Errorf("sideCode = (%d,%d), want (%d,%d)", side, pos, tc.wantSide, tc.wantPos)
			}
		})
	}

	if _, _, err := sideCode(&model.Order{Side: model.SideClose}); err == nil {
		t.Error("expected error for close side without reduce-only mapping")
	}
}
