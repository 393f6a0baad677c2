package consts

const (
	// RequestId 请求id名称
	RequestId = "request_id"

	// TradingView 信号签名头
	SignatureHeader = "X-Signature"

	// 同符号同方向信号的redis防抖key前缀
	SignalThrottlePrefix = "Signal_Throttle:"
)

const (
	// 止盈比例，开仓价的±0.4%
	TakeProfitPercent = 0.004

	// 计价币种，只支持USDT本位合约
	QuoteCurrency = "USDT"

	// MEXC合约REST基础地址
	MexcContractBase        = "https://contract.mexc.com"
	MexcContractTestnetBase = "https://contract.testnet.mexc.com"

	// MEXC合约行情websocket地址
	MexcContractWsURL = "wss://contract.mexc.com/edge"
)
