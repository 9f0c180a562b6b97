package book

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// validFields 返回一组完全合法的输入字段
// publicationYear的上界是"当前年份"，测试数据用固定的历史年份避开边界
func validFields() map[string]any {
	return map[string]any{
		"title":           "Dune",
		"author":          "Frank Herbert",
		"publicationYear": float64(1965), // JSON解码后的数字类型
		"ISBN":            "9780441013593",
	}
}

func TestNew_DropsUnknownFields(t *testing.T) {
	fields := validFields()
	fields["price"] = 42
	fields["publisher"] = "Chilton Books"

	b := New(fields)

	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, "Frank Herbert", b.Author)
	assert.Equal(t, 1965, b.PublicationYear)
	assert.Equal(t, "9780441013593", b.ISBN)
	// 多余字段既不存储也不回显：实体上根本没有承载它们的地方
	assert.NotContains(t, b.ToHash(), "price")
	assert.NotContains(t, b.ToHash(), "publisher")
}

func TestValidate_TitleBoundaries(t *testing.T) {
	cases := []struct {
		name  string
		title string
		valid bool
	}{
		{"长度2不合法", strings.Repeat("a", 2), false},
		{"长度3合法", strings.Repeat("a", 3), true},
		{"长度30合法", strings.Repeat("a", 30), true},
		{"长度31不合法", strings.Repeat("a", 31), false},
		{"空标题不合法", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := validFields()
			fields["title"] = tc.title
			err := New(fields).Validate()

			if tc.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "title")
		})
	}
}

func TestValidate_AuthorBoundaries(t *testing.T) {
	cases := []struct {
		name   string
		author string
		valid  bool
	}{
		{"长度1不合法", "a", false},
		{"长度2合法", "ab", true},
		{"长度30合法", strings.Repeat("a", 30), true},
		{"长度31不合法", strings.Repeat("a", 31), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := validFields()
			fields["author"] = tc.author
			err := New(fields).Validate()

			if tc.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "author")
		})
	}
}

func TestValidate_PublicationYearBoundaries(t *testing.T) {
	// 上界是校验时刻的当前年份，边界用例在运行时计算
	currentYear := time.Now().Year()

	cases := []struct {
		name  string
		year  any
		valid bool
	}{
		{"1899不合法", float64(1899), false},
		{"1900合法", float64(1900), true},
		{"当前年份合法", float64(currentYear), true},
		{"明年不合法", float64(currentYear + 1), false},
		{"非整数不合法", 1965.5, false},
		{"非数字字符串不合法", "not-a-year", false},
		{"数字字符串合法", "1965", true}, // 存储层往返时年份是字符串
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := validFields()
			fields["publicationYear"] = tc.year
			err := New(fields).Validate()

			if tc.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "publicationYear")
		})
	}
}

func TestValidate_ISBNMinLength(t *testing.T) {
	fields := validFields()
	fields["ISBN"] = "123456789" // 9位，差1位

	err := New(fields).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ISBN")

	fields["ISBN"] = "1234567890" // 恰好10位
	assert.NoError(t, New(fields).Validate())
}

func TestValidate_FirstFailureWins(t *testing.T) {
	// title和ISBN同时不合法时，只报告title（规则按固定顺序应用，遇错即停）
	b := New(map[string]any{
		"title":           "Cr",
		"author":          "Frank Herbert",
		"publicationYear": float64(1965),
		"ISBN":            "123",
	})

	err := b.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
	assert.NotContains(t, err.Error(), "ISBN")
}

func TestValidate_ErrorMapsTo422(t *testing.T) {
	b := New(map[string]any{"title": "Cr"})

	err := b.Validate()
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	assert.Equal(t, 422, appErr.HTTPStatus())
}

func TestIsSame(t *testing.T) {
	base := New(validFields())

	t.Run("完全一致", func(t *testing.T) {
		assert.True(t, base.IsSame(New(validFields())))
	})

	t.Run("ISBN不同仍视为一致", func(t *testing.T) {
		// 身份由调用方固定，内容比较刻意排除ISBN
		fields := validFields()
		fields["ISBN"] = "another-isbn-0000"
		assert.True(t, base.IsSame(New(fields)))
	})

	t.Run("年份以字符串形式到达时先还原再比较", func(t *testing.T) {
		fields := validFields()
		fields["publicationYear"] = "1965"
		assert.True(t, base.IsSame(New(fields)))
	})

	t.Run("标题不同视为变化", func(t *testing.T) {
		fields := validFields()
		fields["title"] = "Dune Messiah"
		assert.False(t, base.IsSame(New(fields)))
	})
}

func TestMerge(t *testing.T) {
	base := New(validFields())

	merged := base.Merge(map[string]any{
		"title": "Dune Messiah",
	})

	// 只覆盖出现的字段，其余保持现状；原实体不受影响
	assert.Equal(t, "Dune Messiah", merged.Title)
	assert.Equal(t, "Frank Herbert", merged.Author)
	assert.Equal(t, 1965, merged.PublicationYear)
	assert.Equal(t, "Dune", base.Title)
}

func TestHashRoundTrip(t *testing.T) {
	b := New(validFields())

	restored := FromHash(b.ToHash())

	assert.Equal(t, b.Title, restored.Title)
	assert.Equal(t, b.Author, restored.Author)
	assert.Equal(t, b.PublicationYear, restored.PublicationYear)
	assert.Equal(t, b.ISBN, restored.ISBN)

	// hash里的年份确实是字符串
	assert.Equal(t, fmt.Sprintf("%d", b.PublicationYear), b.ToHash()["publicationYear"])
}
