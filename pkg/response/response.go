package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 统一响应信封
// 设计说明：
// 1. 所有响应都带status字段：true表示成功，false表示失败
// 2. 成功响应根据接口不同携带books/book/newBook/updatedBook等数据字段
// 3. 失败响应统一为 {status:false, message:"..."}
// 4. HTTP状态码由AppError确定性映射，Handler不关心数字

// Success 成功响应
// payload中的键值对会与{"status":true}合并后输出
// 用法：
//
//	response.Success(c, http.StatusOK, gin.H{"message": "get books", "books": books})
func Success(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"status": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// NoContent 无响应体的成功（幂等更新的无变更分支）
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误记录到gin的错误链，由日志中间件统一输出
	if appErr.Err != nil {
		_ = c.Error(appErr.Err)
	}

	c.JSON(appErr.HTTPStatus(), gin.H{
		"status":  false,
		"message": appErr.Message,
	})
}

// Fail 按给定状态码返回失败信封
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"status":  false,
		"message": message,
	})
}
