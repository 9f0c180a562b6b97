package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明：
// 1. 领域服务封装图书生命周期的全部业务规则：校验顺序、存在性检查、
//    冲突检测、ISBN固定、无变更抑制
// 2. HTTP层只负责解析请求和映射响应，不包含任何业务决策
type Service interface {
	// GetBooks 获取全部图书
	GetBooks(ctx context.Context) ([]*Book, error)

	// GetBookByISBN 根据ISBN获取图书；不存在返回ErrBookNotFound
	GetBookByISBN(ctx context.Context, isbn string) (*Book, error)

	// CreateBook 从输入映射创建图书
	// 规则顺序：先校验再查重——格式不合法的请求不应探测到ISBN的存在性
	CreateBook(ctx context.Context, fields map[string]any) (*Book, error)

	// UpdateBook 按ISBN合并更新
	// 返回值changed=false表示无变更（合并结果与当前记录一致），此时跳过写入
	UpdateBook(ctx context.Context, isbn string, fields map[string]any) (b *Book, changed bool, err error)

	// DeleteBook 根据ISBN删除图书；不存在返回ErrBookNotFound
	DeleteBook(ctx context.Context, isbn string) error

	// SearchBooks 按搜索词匹配title或author；空词返回全部
	SearchBooks(ctx context.Context, term string) ([]*Book, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetBooks 获取全部图书
func (s *service) GetBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.GetAll(ctx)
}

// GetBookByISBN 根据ISBN获取图书
func (s *service) GetBookByISBN(ctx context.Context, isbn string) (*Book, error) {
	b, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookNotFound
	}
	return b, nil
}

// CreateBook 创建图书
// 已知缺口：查重和写入之间没有原子性，两个并发的同ISBN创建可能都通过
// 查重后写入，结果是后写者胜。存储层的set-if-absent需要跨字段的条件写，
// 这里不引入
func (s *service) CreateBook(ctx context.Context, fields map[string]any) (*Book, error) {
	// 1. 构造实体（多余字段在这一步被丢弃）
	newBook := New(fields)

	// 2. 校验必须先于查重
	if err := newBook.Validate(); err != nil {
		return nil, err
	}

	// 3. 查重
	existing, err := s.repo.FindByISBN(ctx, newBook.ISBN)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrBookExists
	}

	// 4. 持久化
	if err := s.repo.Create(ctx, newBook); err != nil {
		return nil, err
	}

	return newBook, nil
}

// UpdateBook 按ISBN合并更新
func (s *service) UpdateBook(ctx context.Context, isbn string, fields map[string]any) (*Book, bool, error) {
	// 1. 读取当前记录，不存在直接返回
	current, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, false, err
	}
	if current == nil {
		return nil, false, ErrBookNotFound
	}

	// 2. 合并请求字段，并把ISBN固定为路径值——客户端不能通过请求体改ISBN
	merged := current.Merge(fields)
	merged.ISBN = isbn

	// 3. 校验合并结果
	if err := merged.Validate(); err != nil {
		return nil, false, err
	}

	// 4. 无变更抑制：合并结果与当前记录一致时跳过写入
	// 这时ISBN必然相等（上一步已固定），IsSame只比较其余三个字段
	if merged.IsSame(current) {
		return current, false, nil
	}

	// 5. 持久化
	if err := s.repo.Update(ctx, isbn, merged); err != nil {
		return nil, false, err
	}

	return merged, true, nil
}

// DeleteBook 根据ISBN删除图书
func (s *service) DeleteBook(ctx context.Context, isbn string) error {
	b, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBookNotFound
	}

	return s.repo.Delete(ctx, isbn)
}

// SearchBooks 按搜索词匹配
func (s *service) SearchBooks(ctx context.Context, term string) ([]*Book, error) {
	return s.repo.Search(ctx, term)
}
