package ecode

// 错误码定义，0表示成功，1xxx为通用错误，2xxx为业务错误
const (
	Success = 0

	Unknown         = 1000
	ValidateErr     = 1001
	NotFoundErr     = 1002
	SignatureErr    = 1003
	TooManyRequests = 1004

	RiskRejectErr = 2001
	ExchangeErr   = 2002
	OrderErr      = 2003
)

// 各错误码对应的默认提示
var messages = map[int]string{
	Success:         "OK",
	Unknown:         "服务内部错误",
	ValidateErr:     "请求参数错误",
	NotFoundErr:     "资源不存在",
	SignatureErr:    "签名校验失败",
	TooManyRequests: "请求过于频繁",
	RiskRejectErr:   "触发风控，拒绝下单",
	ExchangeErr:     "交易所接口调用失败",
	OrderErr:        "订单提交失败",
}

// Text 返回错误码的默认提示信息
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[Unknown]
}
