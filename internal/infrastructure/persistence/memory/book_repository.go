// Package memory 提供图书仓储的内存实现
//
// 用途：
// 1. 单元测试中替代Redis，让领域层和HTTP层的测试不依赖外部进程
// 2. 本地开发时的零依赖模式
// 行为与Redis实现保持一致：缺失返回(nil, nil)，写操作无条件执行，
// 枚举顺序不保证
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// BookRepository 内存图书仓储
type BookRepository struct {
	mu    sync.RWMutex
	books map[string]book.Book // ISBN → 实体副本
}

// NewBookRepository 创建内存仓储
func NewBookRepository() *BookRepository {
	return &BookRepository{
		books: make(map[string]book.Book),
	}
}

// GetAll 返回全部图书（map遍历顺序，无排序保证）
func (r *BookRepository) GetAll(_ context.Context) ([]*book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]*book.Book, 0, len(r.books))
	for _, b := range r.books {
		copied := b
		books = append(books, &copied)
	}
	return books, nil
}

// FindByISBN 根据ISBN查找；不存在返回(nil, nil)
func (r *BookRepository) FindByISBN(_ context.Context, isbn string) (*book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[isbn]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

// Create 无条件写入
func (r *BookRepository) Create(_ context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.books[b.ISBN] = *b
	return nil
}

// Update 无条件写入合并结果
func (r *BookRepository) Update(_ context.Context, isbn string, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.books[isbn] = *b
	return nil
}

// Delete 无条件删除
func (r *BookRepository) Delete(_ context.Context, isbn string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.books, isbn)
	return nil
}

// Search 大小写不敏感的子串匹配（title或author）
func (r *BookRepository) Search(ctx context.Context, term string) ([]*book.Book, error) {
	books, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	matches := make([]*book.Book, 0)
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), needle) ||
			strings.Contains(strings.ToLower(b.Author), needle) {
			matches = append(matches, b)
		}
	}
	return matches, nil
}
