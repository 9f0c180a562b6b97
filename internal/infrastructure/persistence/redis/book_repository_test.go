package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// newTestRepository 在内嵌Redis上构造仓储
// miniredis随测试进程启动，不依赖外部Redis实例
func newTestRepository(t *testing.T) *BookRepository {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewBookRepository(client, "books_test")
}

func dune() *book.Book {
	return &book.Book{
		Title:           "Dune",
		Author:          "Frank Herbert",
		PublicationYear: 1965,
		ISBN:            "9780441013593",
	}
}

func TestBookRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.Create(ctx, dune()))

	got, err := repo.FindByISBN(ctx, "9780441013593")
	require.NoError(t, err)
	require.NotNil(t, got)

	// hash里年份以字符串存储，读回时还原为整数
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "Frank Herbert", got.Author)
	assert.Equal(t, 1965, got.PublicationYear)
	assert.Equal(t, "9780441013593", got.ISBN)
}

func TestBookRepository_FindAbsentIsNilNil(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.FindByISBN(context.Background(), "no-such-isbn-000")

	// 缺失是一等结果：无错误、无实体
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBookRepository_GetAll(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	books, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	require.NoError(t, repo.Create(ctx, dune()))
	require.NoError(t, repo.Create(ctx, &book.Book{
		Title: "Neuromancer", Author: "William Gibson", PublicationYear: 1984, ISBN: "9780441569595",
	}))

	books, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestBookRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.Create(ctx, dune()))

	updated := dune()
	updated.Title = "Dune Messiah"
	updated.PublicationYear = 1969
	require.NoError(t, repo.Update(ctx, "9780441013593", updated))

	got, err := repo.FindByISBN(ctx, "9780441013593")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Dune Messiah", got.Title)
	assert.Equal(t, 1969, got.PublicationYear)
}

func TestBookRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.Create(ctx, dune()))
	require.NoError(t, repo.Delete(ctx, "9780441013593"))

	got, err := repo.FindByISBN(ctx, "9780441013593")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBookRepository_Search(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.Create(ctx, dune()))
	require.NoError(t, repo.Create(ctx, &book.Book{
		Title: "Neuromancer", Author: "William Gibson", PublicationYear: 1984, ISBN: "9780441569595",
	}))

	t.Run("空搜索词返回全部", func(t *testing.T) {
		books, err := repo.Search(ctx, "")
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("标题大小写不敏感", func(t *testing.T) {
		books, err := repo.Search(ctx, "dUnE")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Dune", books[0].Title)
	})

	t.Run("作者子串", func(t *testing.T) {
		books, err := repo.Search(ctx, "herbert")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Frank Herbert", books[0].Author)
	})

	t.Run("无匹配返回空列表", func(t *testing.T) {
		books, err := repo.Search(ctx, "asimov")
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}

func TestBookRepository_PrefixIsolation(t *testing.T) {
	// 不同前缀的仓储共用同一个Redis实例时互不可见
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	prod := NewBookRepository(client, "books")
	test := NewBookRepository(client, "books_test")

	require.NoError(t, prod.Create(ctx, dune()))

	books, err := test.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	got, err := test.FindByISBN(ctx, "9780441013593")
	require.NoError(t, err)
	assert.Nil(t, got)
}
