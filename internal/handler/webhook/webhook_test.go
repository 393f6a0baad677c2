package webhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tradegate/internal/exchange"
	"tradegate/internal/executor"
	"tradegate/pkg/response"

	"github.com/gin-gonic/gin"
)

func newTestRouter(ex *exchange.SimulatedExchange, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := executor.NewService(ex, nil, nil, 1.0, 25)
	h := NewHandler(svc, nil, secret)

	g := gin.New()
	g.POST("/webhook", h.HandleWebhook())
	return g
}

func doRequest(t *testing.T, g *gin.Engine, body string, sign func([]byte) string) (*httptest.ResponseRecorder, response.ApiResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if sign != nil {
		req.Header.Set("X-Signature", sign([]byte(body)))
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)

	var resp response.ApiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v, body=%s", err, w.Body.String())
	}
	return w, resp
}

func TestHandleWebhook_Success(t *testing.T) {
	ex := exchange.NewSimulatedExchange()
	ex.SetBalance(1000)
	g := newTestRouter(ex, "")

	w, resp := doRequest(t, g, `{"symbol":"ETHUSDT.P","side":"long","entry_price":2000}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}
	if resp.Code != 0 {
		t.Fatalf("code = %d, want 0", resp.Code)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data missing: %v", resp.Data)
	}
	entryId, _ := data["entry_order_id"].(string)
	tpId, _ := data["take_profit_order_id"].(string)
	if entryId == "" || tpId == "" {
		t.Errorf("expected both order ids in response data, got %v", data)
	}
	if ex.OrderCount() != 2 {
		t.Errorf("order count = %d, want 2", ex.OrderCount())
	}
}

func TestHandleWebhook_MissingFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing symbol", `{"side":"long","entry_price":2000}`},
		{"missing side", `{"symbol":"ETHUSDT","entry_price":2000}`},
		{"invalid json", `{"symbol":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ex := exchange.NewSimulatedExchange()
			g := newTestRouter(ex, "")

			w, _ := doRequest(t, g, tc.body, nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			// 校验失败的请求不允许触达交易所
			if ex.OrderCount() != 0 {
				t.Errorf("order count = %d, want 0", ex.OrderCount())
			}
		})
	}
}

func TestHandleWebhook_UnknownSide(t *testing.T) {
	ex := exchange.NewSimulatedExchange()
	g := newTestRouter(ex, "")

	w, _ := doRequest(t, g, `{"symbol":"ETHUSDT","side":"hold","entry_price":2000}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if ex.OrderCount() != 0 {
		t.Errorf("order count = %d, want 0", ex.OrderCount())
	}
}

func TestHandleWebhook_ExchangeFailure(t *testing.T) {
	ex := exchange.NewSimulatedExchange()
	ex.FailBalance = errTest
	g := newTestRouter(ex, "")

	w, resp := doRequest(t, g, `{"symbol":"ETHUSDT","side":"short","entry_price":2000}`, nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	// 交易所返回的原始错误必须透传到响应message里，不能只留本地提示
	if !strings.Contains(resp.Message, errTest.Error()) {
		t.Errorf("message = %q, want it to contain %q", resp.Message, errTest.Error())
	}
	if ex.OrderCount() != 0 {
		t.Errorf("order count = %d, want 0", ex.OrderCount())
	}
}

func TestHandleWebhook_OrderFailureDetail(t *testing.T) {
	ex := exchange.NewSimulatedExchange()
	ex.FailOrder = errTestType("mexc error code=2005 insufficient margin")
	ex.SetBalance(1000)
	g := newTestRouter(ex, "")

	w, resp := doRequest(t, g, `{"symbol":"ETHUSDT","side":"long","entry_price":2000}`, nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(resp.Message, "insufficient margin") {
		t.Errorf("message = %q, want exchange detail passed through", resp.Message)
	}
}

func TestHandleWebhook_Signature(t *testing.T) {
	const secret = "ab12cd34ef56"
	body := `{"symbol":"ETHUSDT","side":"long","entry_price":2000}`

	sign := func(b []byte) string {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(b)
		return hex.EncodeToString(mac.Sum(nil))
	}

	t.Run("valid signature", func(t *testing.T) {
		ex := exchange.NewSimulatedExchange()
		g := newTestRouter(ex, secret)
		w, _ := doRequest(t, g, body, sign)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200, body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("missing signature", func(t *testing.T) {
		ex := exchange.NewSimulatedExchange()
		g := newTestRouter(ex, secret)
		w, _ := doRequest(t, g, body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
		if ex.OrderCount() != 0 {
			t.Errorf("order count = %d, want 0", ex.OrderCount())
		}
	})

	t.Run("wrong signature", func(t *testing.T) {
		ex := exchange.NewSimulatedExchange()
		g := newTestRouter(ex, secret)
		w, _ := doRequest(t, g, body, func(b []byte) string {
			return "deadbeef"
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
		if ex.OrderCount() != 0 {
			t.Errorf("order count = %d, want 0", ex.OrderCount())
		}
	})
}

var errTest = errTestType("balance service unavailable")

type errTestType string

func (e errTestType) Error() string { return string(e) }
