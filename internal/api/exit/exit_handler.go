package exit

import (
	"encoding/json"
	"net/http"

	"pos-exit-checker/internal/service/exit"
	"pos-exit-checker/internal/types"
	"pos-exit-checker/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handler 退出查询处理器
type Handler struct {
	exitService    exit.Service
	strictExitTime bool
}

// NewHandler 创建退出查询处理器
// strictExitTime 为 true 时任一哈希长度不符即拒绝；否则仅当两个都不符时拒绝
func NewHandler(exitService exit.Service, strictExitTime bool) *Handler {
	return &Handler{
		exitService:    exitService,
		strictExitTime: strictExitTime,
	}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(router gin.IRoutes) {
	// POST /
	// curl -X POST http://127.0.0.1:7003/ -H 'Content-Type: application/json' -d '{"txHash":"0x..."}'
	router.POST("/", h.CheckExit)

	// POST /exit-time
	// curl -X POST http://127.0.0.1:7003/exit-time -H 'Content-Type: application/json' -d '{"burnTxHash":"0x...","confirmTxHash":"0x..."}'
	router.POST("/exit-time", h.CheckExitTime)
	router.POST("/exit-time/", h.CheckExitTime)
}

// CheckExit 查询 burn 交易是否已在根链退出
// @Summary 查询退出状态
// @Description 检查子链 burn 交易是否已在根链完成 exit
// @Tags Exit
// @Accept json
// @Produce json
// @Param request body types.ExitCheckRequest true "burn 交易哈希"
// @Success 200 {object} types.ExitCheckResponse "code=1 已退出，code=0 未退出"
// @Failure 400 {object} types.ErrorResponse "Bad Payload"
// @Router / [post]
func (h *Handler) CheckExit(c *gin.Context) {
	body, err := bindBody(c)
	if err != nil {
		logger.Error("CheckExit BindJSON Error: ", err)
		c.JSON(http.StatusBadRequest, types.BadPayload())
		return
	}
	req := types.ExitCheckRequest{TxHash: stringField(body, "txHash")}

	if req.TxHash == nil || len(*req.TxHash) != types.HashLength {
		c.JSON(http.StatusBadRequest, types.BadPayload())
		return
	}

	resp, err := h.exitService.CheckExit(c.Request.Context(), *req.TxHash)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.BadPayload())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CheckExitTime 查询提现是否已度过挑战期
// @Summary 查询退出时间
// @Description 根据子链 burn 交易与根链 confirm 交易计算挑战期结束时间
// @Tags Exit
// @Accept json
// @Produce json
// @Param request body types.ExitTimeRequest true "burn 与 confirm 交易哈希"
// @Success 200 {object} types.ExitTimeResponse "code=1 时 msg 为当前时间，code=0 时 msg 为可退出时间"
// @Failure 400 {object} types.ErrorResponse "Bad Payload"
// @Router /exit-time [post]
func (h *Handler) CheckExitTime(c *gin.Context) {
	body, err := bindBody(c)
	if err != nil {
		logger.Error("CheckExitTime BindJSON Error: ", err)
		c.JSON(http.StatusBadRequest, types.BadPayload())
		return
	}
	req := types.ExitTimeRequest{
		BurnTxHash:    stringField(body, "burnTxHash"),
		ConfirmTxHash: stringField(body, "confirmTxHash"),
	}

	if req.BurnTxHash == nil || req.ConfirmTxHash == nil {
		c.JSON(http.StatusBadRequest, types.BadPayload())
		return
	}

	if !h.exitTimeHashesValid(*req.BurnTxHash, *req.ConfirmTxHash) {
		c.JSON(http.StatusBadRequest, types.BadPayload())
		return
	}

	resp, err := h.exitService.CheckExitTime(c.Request.Context(), *req.BurnTxHash, *req.ConfirmTxHash)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.BadPayload())
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) exitTimeHashesValid(burnTxHash, confirmTxHash string) bool {
	burnOK := len(burnTxHash) == types.HashLength
	confirmOK := len(confirmTxHash) == types.HashLength

	if h.strictExitTime {
		return burnOK && confirmOK
	}
	// legacy guard: only a payload with both lengths wrong is rejected here
	return burnOK || confirmOK
}

// bindBody 将请求体解析为原始字段表，字段按键名精确匹配
// 结构体绑定会忽略键名大小写，{"TXHASH":...} 不能被当作 txHash
func bindBody(c *gin.Context) (map[string]json.RawMessage, error) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, err
	}
	return body, nil
}

// stringField 缺失、null 或非字符串时返回 nil
func stringField(body map[string]json.RawMessage, key string) *string {
	raw, ok := body[key]
	if !ok {
		return nil
	}

	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return s
}
