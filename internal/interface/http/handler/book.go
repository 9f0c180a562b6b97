package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// BookHandler 图书HTTP处理器
// 设计说明：处理器是无状态的——每个请求独立处理，跨请求的状态只存在于存储层。
// 业务规则（校验顺序、查重、无变更抑制）都在领域服务里，这里只做三件事：
// 解析请求、调用服务、把领域结果映射为响应信封和状态码
type BookHandler struct {
	svc book.Service
}

// NewBookHandler 创建图书处理器
func NewBookHandler(svc book.Service) *BookHandler {
	return &BookHandler{svc: svc}
}

// ListBooks 获取全部图书
// @Summary      图书列表
// @Description  返回存储中的全部图书，顺序无保证
// @Tags         图书
// @Produce      json
// @Success      200 {object} map[string]interface{} "{status, message, books}"
// @Failure      500 {object} map[string]interface{}
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.svc.GetBooks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "get books",
		"books":   dto.FromBooks(books),
	})
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  校验通过且ISBN未被占用时创建图书；多余字段被丢弃
// @Tags         图书
// @Accept       json
// @Produce      json
// @Success      201 {object} map[string]interface{} "{status, message, newBook}"
// @Failure      422 {object} map[string]interface{} "校验失败"
// @Failure      409 {object} map[string]interface{} "ISBN已存在"
// @Failure      400 {object} map[string]interface{} "请求体无法解析"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.svc.CreateBook(c.Request.Context(), fields)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Book created!",
		"newBook": dto.FromBook(created),
	})
}

// GetBook 根据ISBN获取图书
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} map[string]interface{} "{status, message, book}"
// @Failure      404 {object} map[string]interface{} "图书不存在"
// @Router       /books/{isbn} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	isbn := c.Param("isbn")

	b, err := h.svc.GetBookByISBN(c.Request.Context(), isbn)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Book Details",
		"book":    dto.FromBook(b),
	})
}

// UpdateBook 按ISBN合并更新图书
// ISBN以路径值为准：请求体里的ISBN即使不同也会被忽略
// 合并结果与当前记录一致时返回204，不执行写入
// @Summary      更新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} map[string]interface{} "{status, message, updatedBook}"
// @Success      204 "无变更"
// @Failure      404 {object} map[string]interface{} "图书不存在"
// @Failure      422 {object} map[string]interface{} "校验失败"
// @Failure      400 {object} map[string]interface{} "请求体无法解析"
// @Router       /books/{isbn} [patch]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	isbn := c.Param("isbn")

	fields, err := bindFields(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	updated, changed, err := h.svc.UpdateBook(c.Request.Context(), isbn, fields)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !changed {
		response.NoContent(c)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":     "Book updated!",
		"updatedBook": dto.FromBook(updated),
	})
}

// DeleteBook 根据ISBN删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} map[string]interface{} "{status, message}"
// @Failure      404 {object} map[string]interface{} "图书不存在"
// @Router       /books/{isbn} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	isbn := c.Param("isbn")

	if err := h.svc.DeleteBook(c.Request.Context(), isbn); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Book deleted!",
	})
}

// SearchBooks 按搜索词查找图书
// 搜索词取原始查询串中第一个"="之后的文本（客户端带引号调用时先剥掉引号），
// 不做URL解码；没有"="视为缺少搜索词。空搜索词匹配全部记录
// @Summary      搜索图书
// @Description  在title和author上做大小写不敏感的子串匹配
// @Tags         图书
// @Produce      json
// @Param        term query string true "搜索词（可为空，空词返回全部）"
// @Success      200 {object} map[string]interface{} "{status, books}"
// @Failure      400 {object} map[string]interface{} "缺少搜索词"
// @Router       /books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	rawQuery := strings.NewReplacer(`"`, "", `'`, "").Replace(c.Request.URL.RawQuery)

	idx := strings.Index(rawQuery, "=")
	if idx < 0 {
		response.Fail(c, http.StatusBadRequest, "no search term detected")
		return
	}
	term := rawQuery[idx+1:]

	books, err := h.svc.SearchBooks(c.Request.Context(), term)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"books": dto.FromBooks(books),
	})
}

// bindFields 读取请求体为字段映射
// 空请求体等价于空映射（PATCH不带body是合法的无变更请求）；
// 无法解析的body返回400，消息取解析错误
func bindFields(c *gin.Context) (map[string]any, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, err.Error())
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, err.Error())
	}

	return fields, nil
}
