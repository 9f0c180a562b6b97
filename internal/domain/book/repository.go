package book

import (
	"context"
)

// Repository 图书仓储接口（依赖倒置）
// 设计说明：
// 1. 由domain层定义接口，infrastructure层实现，便于替换存储和Mock测试
// 2. FindByISBN用(nil, nil)表达"不存在"——缺失是一等结果，不是错误，
//    存在性检查由调用方（领域服务）负责
// 3. 写操作都是无条件的：Create/Update/Delete不做存在性或合法性检查，
//    这些规则在Service层统一执行
type Repository interface {
	// GetAll 返回前缀命名空间下的全部图书，顺序跟随存储枚举顺序（无排序保证）
	GetAll(ctx context.Context) ([]*Book, error)

	// FindByISBN 根据ISBN查找图书；不存在时返回(nil, nil)
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// Create 无条件写入图书
	Create(ctx context.Context, b *Book) error

	// Update 无条件按字段合并写入
	Update(ctx context.Context, isbn string, b *Book) error

	// Delete 无条件删除
	Delete(ctx context.Context, isbn string) error

	// Search 在title或author上做大小写不敏感的子串匹配
	// 空搜索词匹配所有记录；匹配在内存中基于GetAll结果完成，没有存储层索引
	Search(ctx context.Context, term string) ([]*Book, error)
}
