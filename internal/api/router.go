package api

import (
	"pos-exit-checker/docs"
	exitHandler "pos-exit-checker/internal/api/exit"
	"pos-exit-checker/internal/api/middleware"
	"pos-exit-checker/internal/config"
	exitService "pos-exit-checker/internal/service/exit"
	"pos-exit-checker/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter 创建路由：POST / 与 POST /exit-time，可选 swagger 文档
func NewRouter(cfg *config.ServerConfig, svc exitService.Service) *gin.Engine {
	router := gin.New()
	// 尾斜杠不重定向，/exit-time/ 直接路由到处理器
	router.RedirectTrailingSlash = false
	// 日志中的客户端 IP 取 socket 地址，不信任 X-Forwarded-For
	if err := router.SetTrustedProxies(nil); err != nil {
		logger.Error("SetTrustedProxies Error: ", err)
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLog())

	handler := exitHandler.NewHandler(svc, cfg.StrictExitTimeValidation)
	handler.RegisterRoutes(router)

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.Host = cfg.Addr()
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return router
}
