package types

// HashLength 0x 前缀 + 64 位十六进制字符
const HashLength = 66

const (
	CodeNotExited = 0
	CodeExited    = 1

	MsgExited     = "Exited"
	MsgNotExited  = "Not Exited"
	MsgBadPayload = "Bad Payload"
)

// ExitCheckRequest 查询 burn 交易是否已在根链完成 exit
// 指针字段用于区分缺失/null 与空字符串
type ExitCheckRequest struct {
	TxHash *string `json:"txHash" example:"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"`
}

// ExitCheckResponse code=1 已退出，code=0 未退出
type ExitCheckResponse struct {
	Code int    `json:"code" example:"1"`
	Msg  string `json:"msg" example:"Exited"`
}

// ExitTimeRequest 查询提现是否已度过挑战期
type ExitTimeRequest struct {
	BurnTxHash    *string `json:"burnTxHash"`
	ConfirmTxHash *string `json:"confirmTxHash"`
}

// ExitTimeResponse code=1 时 msg 为当前 Unix 秒；code=0 时 msg 为可退出时间
type ExitTimeResponse struct {
	Code int    `json:"code" example:"0"`
	Msg  string `json:"msg" example:"1800000000"`
}

// ErrorResponse 所有错误统一返回
type ErrorResponse struct {
	Msg string `json:"msg" example:"Bad Payload"`
}

// BadPayload 统一错误响应
func BadPayload() ErrorResponse {
	return ErrorResponse{Msg: MsgBadPayload}
}
