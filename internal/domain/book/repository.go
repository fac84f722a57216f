package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
// 3. 找不到记录时返回ErrBookNotFound,ISBN冲突时返回ErrISBNDuplicate
type Repository interface {
	// Create 创建图书,成功后回填ID
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// Update 保存图书全部字段
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(物理删除)
	Delete(ctx context.Context, id uint) error

	// List 按查询条件过滤、排序、分页
	// 返回当前页图书和过滤后(分页前)的总数
	List(ctx context.Context, q Query) ([]*Book, int64, error)

	// Categories 返回所有不重复的分类,升序
	Categories(ctx context.Context) ([]string, error)
}
