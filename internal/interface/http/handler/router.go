package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// NewRouter 组装Gin引擎并注册全部路由
//
// 路由优先级说明：
// /books/search是静态路径，/books/:isbn是参数路径，gin保证静态路径优先匹配，
// 所以"search"这个段不会被当成ISBN误派发到详情处理器
func NewRouter(cfg *config.Config, log *zap.Logger, bookHandler *BookHandler) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	r.Use(
		middleware.Logger(log),
		middleware.Recovery(log),
		cors.Default(),
	)

	// 首页：简单的存活确认
	r.GET("/", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"message": "Homepage",
		})
	})

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 图书模块
	books := r.Group("/books")
	{
		books.GET("", bookHandler.ListBooks)
		books.POST("", bookHandler.CreateBook)
		books.GET("/search", bookHandler.SearchBooks)
		books.GET("/:isbn", bookHandler.GetBook)
		books.PATCH("/:isbn", bookHandler.UpdateBook)
		books.DELETE("/:isbn", bookHandler.DeleteBook)
	}

	// 其余一切路径（含未注册的方法+路径组合）统一404
	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, "Path not found")
	})

	return r
}
