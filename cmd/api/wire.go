//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 用法：
// Step 1: 修改本文件的Provider声明
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，main.go可改用InitializeApp()
// 当前main.go仍使用手动注入，本文件与之保持同一条依赖链

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	redispersist "github.com/xiebiao/bookshelf/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

// infrastructureSet 基础设施层依赖：配置、日志、Redis连接
var infrastructureSet = wire.NewSet(
	config.Load,
	provideLogger,
	redispersist.NewClient,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	provideBookRepository,
	wire.Bind(new(book.Repository), new(*redispersist.BookRepository)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
)

// provideLogger 从配置构造zap.Logger
// Config包含多个配置段，logger.New只需要Log段，Wire无法自动提取，手写Provider
func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.Log)
}

// provideBookRepository 从Redis客户端和配置构造图书仓储
func provideBookRepository(client *goredis.Client, cfg *config.Config) *redispersist.BookRepository {
	return redispersist.NewBookRepository(client, cfg.Redis.KeyPrefix)
}

// InitializeApp 初始化整个应用
// 返回：配置好的Gin引擎
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		handlerSet,
		handler.NewRouter,
	)

	return nil, nil
}
