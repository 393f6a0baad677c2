package response

import (
	"net/http"

	"tradegate/internal/consts"
	"tradegate/pkg/errors"
	"tradegate/pkg/errors/ecode"

	"github.com/gin-gonic/gin"
)

// 代表响应给客户端的的一个消息结构，包括错误码，错误信息，响应数据
type ApiResponse struct {
	RequestId string      `json:"request_id"` // 请求的唯一ID
	Code      int         `json:"code"`       // 错误码 0表示无错误
	Message   string      `json:"message"`    // 提示信息
	Data      interface{} `json:"data"`       // 响应数据，一般前端从这个里面取出数据展示
}

// 错误码到http状态码的映射
// 参数/签名类错误返回400，交易所调用失败返回500
func httpStatus(code int) int {
	switch code {
	case ecode.Success:
		return http.StatusOK
	case ecode.ValidateErr, ecode.NotFoundErr, ecode.SignatureErr, ecode.RiskRejectErr:
		return http.StatusBadRequest
	case ecode.TooManyRequests:
		return http.StatusTooManyRequests
	case ecode.ExchangeErr, ecode.OrderErr, ecode.Unknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// 发送json格式数据
func JSON(c *gin.Context, err error, data interface{}) {
	code, message := errors.DecodeErr(err)
	c.JSON(httpStatus(code), ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      code,
		Message:   message,
		Data:      data,
	})
}

// 请求频繁，返回429
func TooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      ecode.TooManyRequests,
		Message:   "The request is too frequent. Please try again later.",
		Data:      nil,
	})
}

// 签名缺失或非法，返回400
func BadRequests(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request, missing signature."
	}
	c.JSON(http.StatusBadRequest, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      ecode.SignatureErr,
		Message:   message,
		Data:      nil,
	})
}
