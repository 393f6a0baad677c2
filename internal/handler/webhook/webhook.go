package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"

	"tradegate/internal/consts"
	"tradegate/internal/model"
	"tradegate/internal/risk"
	"tradegate/pkg/errors"
	"tradegate/pkg/errors/ecode"
	"tradegate/pkg/logger"
	"tradegate/pkg/response"
	"tradegate/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// TradingView Webhook 的接收器

// SignalExecutor 信号执行入口，由executor实现
type SignalExecutor interface {
	Execute(ctx context.Context, req *model.WebhookRequest) (*model.OrderResult, error)
}

type Handler struct {
	svc    SignalExecutor
	rc     *risk.RiskControl
	secret string
}

func NewHandler(svc SignalExecutor, rc *risk.RiskControl, secret string) *Handler {
	return &Handler{
		svc:    svc,
		rc:     rc,
		secret: secret,
	}
}

// HandleWebhook 接收POST请求并解析为交易信号
func (h *Handler) HandleWebhook() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.JSON(c, errors.WithCode(ecode.ValidateErr, "Failed to read body"), nil)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		// 验签，对原始body做HMAC-SHA256
		if h.secret != "" {
			signature := c.GetHeader(consts.SignatureHeader)
			if signature == "" {
				response.BadRequests(c, "Missing signature")
				return
			}
			if !verifySignature(body, signature, h.secret) {
				response.BadRequests(c, "Invalid signature")
				return
			}
		}

		var req model.WebhookRequest
		if err := json.Unmarshal(body, &req); err != nil {
			response.JSON(c, errors.WithCode(ecode.ValidateErr, "Invalid JSON"), nil)
			return
		}
		if err := binding.Validator.ValidateStruct(&req); err != nil {
			response.JSON(c, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}

		// 方向和symbol必须在调用交易所之前校验完
		side, err := req.OrderSide()
		if err != nil {
			response.JSON(c, errors.WithCode(ecode.ValidateErr, err.Error()), nil)
			return
		}
		symbol, err := model.NormalizeSymbol(req.Symbol)
		if err != nil {
			response.JSON(c, errors.WithCode(ecode.ValidateErr, err.Error()), nil)
			return
		}

		logger.Info("[Webhook] Received signal",
			logger.Pair("symbol", symbol),
			logger.Pair("side", side),
			logger.Pair("entry_price", req.EntryPrice))

		// 风控检查，是否允许下单
		if h.rc != nil {
			if err := h.rc.Allow(c.Request.Context(), symbol, side); err != nil {
				response.JSON(c, errors.WithCode(ecode.RiskRejectErr, err.Error()), nil)
				return
			}
		}

		result, err := h.svc.Execute(c.Request.Context(), &req)
		if err != nil {
			// 止盈单失败时result里还带着入场订单id，一并返回
			response.JSON(c, err, result)
			return
		}
		response.JSON(c, nil, result)
	}
}

func verifySignature(body []byte, signatureHeader, secret string) bool {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	expectedMAC := h.Sum(nil)
	providedMAC, err := hex.DecodeString(signatureHeader)
	if err != nil {
		return false
	}
	return hmac.Equal(providedMAC, expectedMAC)
}
