package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pos-exit-checker/internal/api"
	"pos-exit-checker/internal/config"
	"pos-exit-checker/internal/repository/exitcache"
	exitService "pos-exit-checker/internal/service/exit"
	"pos-exit-checker/pkg/database"
	"pos-exit-checker/pkg/logger"
	"pos-exit-checker/pkg/plasma"

	"github.com/gin-gonic/gin"
)

// @title POS Exit Checker API
// @version 1.0
// @description Plasma / POS bridge exit status facade
// @host 127.0.0.1:7003
// @BasePath /
// @schemes http

// listen 可在测试中替换，用于确认初始化失败时不会绑定端口
var listen = net.Listen

func main() {
	logger.Init(logger.DefaultConfig())
	defer logger.Sync()

	// 设置信号处理
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// 1. 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config: ", err)
		logger.Sync()
		os.Exit(1)
	}

	if err := run(cfg, sigCh); err != nil {
		logger.Error("Server exited with error: ", err)
		logger.Sync()
		os.Exit(1)
	}
}

// run 初始化链客户端与服务并阻塞到收到信号；任何初始化失败都在监听端口之前返回
func run(cfg *config.Config, stop <-chan os.Signal) error {
	// 2. 初始化链客户端，失败直接退出，不以降级状态提供服务
	initCtx, initCancel := context.WithTimeout(context.Background(), time.Minute)
	defer initCancel()

	bridgeClient := plasma.NewBridgeClient(&cfg.Chain)
	if err := bridgeClient.Initialize(initCtx); err != nil {
		return fmt.Errorf("failed to initialize bridge client: %w", err)
	}
	defer bridgeClient.Close()

	posClient := plasma.NewPOSClient(&cfg.Chain)
	if err := posClient.Initialize(initCtx); err != nil {
		return fmt.Errorf("failed to initialize POS client: %w", err)
	}
	defer posClient.Close()

	// 3. 可选的 Redis 结果缓存
	opts := []exitService.Option{}
	if cfg.Redis.Enabled {
		redisClient, err := database.NewRedisConnection(&cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		defer redisClient.Close()
		opts = append(opts, exitService.WithCache(exitcache.NewRepository(redisClient, cfg.Redis.TTL)))
	}

	// 4. 初始化服务层和路由
	exitSvc := exitService.NewService(posClient, bridgeClient, opts...)

	gin.SetMode(cfg.Server.Mode)
	router := api.NewRouter(&cfg.Server, exitSvc)

	// 5. 启动HTTP服务器
	ln, err := listen("tcp", cfg.Server.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.Addr(), err)
	}

	srv := &http.Server{Handler: router}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("[+] Ready to accept requests on :" + cfg.Server.Port)
		if cfg.Server.SwaggerEnabled {
			logger.Info("Swagger documentation available at: http://" + cfg.Server.Addr() + "/swagger/index.html")
		}

		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 6. 等待关闭信号
	var serveErr error
	select {
	case <-stop:
		logger.Info("Received shutdown signal, starting graceful shutdown...")
	case serveErr = <-errCh:
		logger.Error("HTTP server error: ", serveErr)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error: ", err)
	} else {
		logger.Info("HTTP server stopped")
	}

	return serveErr
}
