package redis

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// BookRepository 基于Redis hash的图书仓储
//
// 存储设计：
// 1. 每本图书是一个hash，key为 {prefix}:{ISBN}，字段即实体的四个属性
// 2. prefix来自配置，test模式下带"_test"后缀，与生产数据共库隔离
// 3. 枚举用SCAN游标而不是KEYS，避免大key空间下阻塞Redis
// 4. hash的值都是字符串，publicationYear由实体层负责来回还原
type BookRepository struct {
	client *redis.Client
	prefix string
}

// NewBookRepository 创建图书仓储
func NewBookRepository(client *redis.Client, keyPrefix string) *BookRepository {
	return &BookRepository{
		client: client,
		prefix: keyPrefix,
	}
}

// bookKey 生成图书存储key
// 格式：{prefix}:{ISBN}
func (r *BookRepository) bookKey(isbn string) string {
	return fmt.Sprintf("%s:%s", r.prefix, isbn)
}

// GetAll 返回命名空间下的全部图书
// 顺序跟随SCAN的枚举顺序，无排序保证
func (r *BookRepository) GetAll(ctx context.Context) ([]*book.Book, error) {
	pattern := r.prefix + ":*"
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()

	books := make([]*book.Book, 0)
	for iter.Next(ctx) {
		fields, err := r.client.HGetAll(ctx, iter.Val()).Result()
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to load book")
		}
		if len(fields) == 0 {
			// key在枚举和读取之间被删除，跳过
			continue
		}
		books = append(books, book.FromHash(fields))
	}
	if err := iter.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to scan books")
	}

	return books, nil
}

// FindByISBN 根据ISBN查找图书
// HGetAll对不存在的key返回空映射，这里把空映射转换为(nil, nil)，
// 缺失作为一等结果交给调用方处理
func (r *BookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	fields, err := r.client.HGetAll(ctx, r.bookKey(isbn)).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load book")
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return book.FromHash(fields), nil
}

// Create 无条件写入图书
func (r *BookRepository) Create(ctx context.Context, b *book.Book) error {
	if err := r.client.HSet(ctx, r.bookKey(b.ISBN), b.ToHash()).Err(); err != nil {
		return apperrors.Wrap(err, "failed to store book")
	}
	return nil
}

// Update 无条件按字段合并写入
// HSet本身就是字段级合并语义；调用方传入的是完整的合并结果
func (r *BookRepository) Update(ctx context.Context, isbn string, b *book.Book) error {
	if err := r.client.HSet(ctx, r.bookKey(isbn), b.ToHash()).Err(); err != nil {
		return apperrors.Wrap(err, "failed to update book")
	}
	return nil
}

// Delete 无条件删除
func (r *BookRepository) Delete(ctx context.Context, isbn string) error {
	if err := r.client.Del(ctx, r.bookKey(isbn)).Err(); err != nil {
		return apperrors.Wrap(err, "failed to delete book")
	}
	return nil
}

// Search 在title或author上做大小写不敏感的子串匹配
// 基于GetAll在内存中过滤，没有存储层全文索引；空搜索词匹配全部
// （空串是任何字符串的子串）
func (r *BookRepository) Search(ctx context.Context, term string) ([]*book.Book, error) {
	books, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	matches := make([]*book.Book, 0)
	for _, b := range books {
		inTitle := strings.Contains(strings.ToLower(b.Title), needle)
		inAuthor := strings.Contains(strings.ToLower(b.Author), needle)
		if inTitle || inAuthor {
			matches = append(matches, b)
		}
	}

	return matches, nil
}
