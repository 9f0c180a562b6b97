package book

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 字段规则
const (
	TitleMinLen  = 3
	TitleMaxLen  = 30
	AuthorMinLen = 2
	AuthorMaxLen = 30
	ISBNMinLen   = 10
	MinYear      = 1900 // publicationYear下界；上界是校验时刻的当前年份
)

// Book 图书实体（聚合根）
// 设计说明：
// 1. ISBN是业务唯一标识，实体创建后不可变更（更新时以URL路径中的ISBN为准）
// 2. publicationYear在JSON请求中是数字，在存储层以字符串往返，读取方负责还原
// 3. 实体要么四个字段齐全，要么整体不存在，没有部分状态
type Book struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear int    `json:"publicationYear"`
	ISBN            string `json:"ISBN"`
}

// New 从任意输入映射构造图书实体
// 只保留四个已知字段，多余字段直接丢弃（不存储也不回显）
// 字段类型不符时置零值，由Validate给出统一的校验错误
func New(fields map[string]any) *Book {
	b := &Book{}
	b.apply(fields)
	return b
}

// Merge 返回一个副本，用输入映射中出现的已知字段覆盖当前值
// 用于PATCH的部分更新：未出现的字段保持现状
func (b *Book) Merge(fields map[string]any) *Book {
	merged := *b
	merged.apply(fields)
	return &merged
}

// apply 将映射中出现的已知字段写入实体
func (b *Book) apply(fields map[string]any) {
	if v, ok := fields["title"]; ok {
		b.Title, _ = v.(string)
	}
	if v, ok := fields["author"]; ok {
		b.Author, _ = v.(string)
	}
	if v, ok := fields["ISBN"]; ok {
		b.ISBN, _ = v.(string)
	}
	if v, ok := fields["publicationYear"]; ok {
		b.PublicationYear = coerceYear(v)
	}
}

// coerceYear 将任意输入还原为整数年份
// 接受JSON数字（float64）、整数和数字字符串；非整数一律得到0，走校验失败路径
func coerceYear(v any) int {
	switch y := v.(type) {
	case int:
		return y
	case int64:
		return int(y)
	case float64:
		if y == float64(int(y)) {
			return int(y)
		}
	case string:
		if n, err := strconv.Atoi(y); err == nil {
			return n
		}
	}
	return 0
}

// Validate 按固定顺序应用字段规则，返回第一条失败规则的错误
// 规则顺序：title → author → publicationYear → ISBN，遇到失败立即停止，不聚合
// 注意：publicationYear的上界是当前年份，取校验时刻的值
func (b *Book) Validate() error {
	if n := utf8.RuneCountInString(b.Title); n < TitleMinLen || n > TitleMaxLen {
		return apperrors.New(apperrors.ErrCodeValidation,
			fmt.Sprintf("title must be between %d and %d characters", TitleMinLen, TitleMaxLen))
	}

	if n := utf8.RuneCountInString(b.Author); n < AuthorMinLen || n > AuthorMaxLen {
		return apperrors.New(apperrors.ErrCodeValidation,
			fmt.Sprintf("author must be between %d and %d characters", AuthorMinLen, AuthorMaxLen))
	}

	maxYear := time.Now().Year()
	if b.PublicationYear < MinYear || b.PublicationYear > maxYear {
		return apperrors.New(apperrors.ErrCodeValidation,
			fmt.Sprintf("publicationYear must be an integer between %d and %d", MinYear, maxYear))
	}

	if len(b.ISBN) < ISBNMinLen {
		return apperrors.New(apperrors.ErrCodeValidation,
			fmt.Sprintf("ISBN must be at least %d characters", ISBNMinLen))
	}

	return nil
}

// IsSame 比较title、author、publicationYear是否完全一致
// 设计说明：ISBN刻意不参与比较——调用方在比较前已把ISBN固定为路径值，
// 身份一致性由调用方保证，这里只回答"内容是否有变化"
func (b *Book) IsSame(other *Book) bool {
	return b.Title == other.Title &&
		b.Author == other.Author &&
		b.PublicationYear == other.PublicationYear
}

// ToHash 转换为存储层的字段映射
// publicationYear以字符串写入（hash的值都是字符串）
func (b *Book) ToHash() map[string]string {
	return map[string]string{
		"title":           b.Title,
		"author":          b.Author,
		"publicationYear": strconv.Itoa(b.PublicationYear),
		"ISBN":            b.ISBN,
	}
}

// FromHash 从存储层的字段映射还原实体
// 数字字段做字符串到整数的还原，还原失败得到0（实体在写入前已通过校验，
// 正常数据不会出现这种情况）
func FromHash(fields map[string]string) *Book {
	year, _ := strconv.Atoi(fields["publicationYear"])
	return &Book{
		Title:           fields["title"],
		Author:          fields["author"],
		PublicationYear: year,
		ISBN:            fields["ISBN"],
	}
}
