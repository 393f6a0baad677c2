package model

import "testing"

func TestNormalizeSymbol(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"ETHUSDT.P", "ETH_USDT", false},
		{"ethusdt", "ETH_USDT", false},
		{"BTC/USDT", "BTC_USDT", false},
		{"SOL-USDT", "SOL_USDT", false},
		{"DOGE_USDT", "DOGE_USDT", false},
		{"BTCUSD", "", true},
		{"USDT", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := NormalizeSymbol(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("NormalizeSymbol(%q) expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeSymbol(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeSymbol(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWebhookRequest_OrderSide(t *testing.T) {
	cases := []struct {
		in      string
		want    OrderSide
		wantErr bool
	}{
		{"long", SideLong, false},
		{"Short", SideShort, false},
		{" CLOSE ", SideClose, false},
		{"buy", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		req := &WebhookRequest{Side: tc.in}
		got, err := req.OrderSide()
		if tc.wantErr {
			if err == nil {
				t.Errorf("OrderSide(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("OrderSide(%q) = %v, %v, want %v", tc.in, got, err, tc.want)
		}
	}
}
