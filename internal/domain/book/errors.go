package book

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeNotFound, "Book not found")

	// ErrBookExists ISBN已存在（创建冲突）
	ErrBookExists = apperrors.New(apperrors.ErrCodeConflict, "Book already exists!")
)
