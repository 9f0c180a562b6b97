package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	redispersist "github.com/xiebiao/bookshelf/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

// main 图书目录服务入口
// 说明：这里手动完成依赖注入（wire.go里有对应的Injector声明）
// 依赖链：Repository ← Service ← Handler ← Router
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// 2. 初始化日志
	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// 3. 建立Redis连接
	// 连接是进程级共享资源：启动时建立一次，关停时断开，所有请求复用
	redisClient, err := redispersist.NewClient(cfg)
	if err != nil {
		zlog.Fatal("init redis", zap.Error(err))
	}

	zlog.Info("redis connected",
		zap.String("addr", cfg.Redis.Addr()),
		zap.String("key_prefix", cfg.Redis.KeyPrefix),
	)

	// 4. 依赖注入（手动组装）
	bookRepo := redispersist.NewBookRepository(redisClient, cfg.Redis.KeyPrefix)
	bookService := book.NewService(bookRepo)
	bookHandler := handler.NewBookHandler(bookService)

	// 5. 组装路由
	r := handler.NewRouter(cfg, zlog, bookHandler)

	// 6. 启动HTTP服务并等待退出信号
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	// 7. 优雅关停：先停HTTP，再断开Redis
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		zlog.Error("redis disconnect", zap.Error(err))
	}

	zlog.Info("bye")
}
