package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookstore-catalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-catalog/pkg/errors"
)

// sortColumns 排序字段 → 数据库列
var sortColumns = map[book.SortField]string{
	book.SortByTitle:     "title",
	book.SortByAuthor:    "author",
	book.SortByPublisher: "publisher",
}

// bookRepository 图书仓储实现(GORM)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如ISBN重复),转换为业务错误
// 4. 所有方法都通过dbFrom(ctx)取DB,以参与TxManager开启的事务
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	model.ID = 0

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "create book failed")
	}

	// 回填自增ID
	b.ID = model.ID
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := dbFrom(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "query book failed")
	}
	return toBookEntity(&model), nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	err := dbFrom(ctx, r.db).Where("isbn = ?", isbn).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "query book failed")
	}
	return toBookEntity(&model), nil
}

// Update 更新图书全部可变字段
// 存在性由调用方在同一事务中先行检查(MySQL对未变化的行返回RowsAffected=0,不能据此判断)
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	err := dbFrom(ctx, r.db).Model(&BookModel{ID: b.ID}).
		Select("title", "author", "publisher", "isbn", "classification", "category", "page_count", "price", "updated_at").
		Updates(toBookModel(b)).Error
	if err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "update book failed")
	}
	return nil
}

// Delete 删除图书
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "delete book failed")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// List 过滤、排序、分页查询
// 学习要点:
// 1. 先按分类过滤,再Count得到分页前的总数
// 2. 排序列来自白名单映射,不拼接用户输入
// 3. 总是追加id ASC作为次级排序,保证相同排序键时分页结果稳定
// 4. Session()使过滤条件可以被Count和Find安全复用
func (r *bookRepository) List(ctx context.Context, q book.Query) ([]*book.Book, int64, error) {
	base := dbFrom(ctx, r.db).Model(&BookModel{})
	if category, ok := q.CategoryFilter(); ok {
		base = base.Where("category = ?", category)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "count books failed")
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = sortColumns[book.SortByTitle]
	}

	var models []BookModel
	err := base.
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: !q.Ascending}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Offset(q.Offset()).
		Limit(q.PageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "query books failed")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

// Categories 所有不重复的分类,升序
func (r *bookRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := dbFrom(ctx, r.db).Model(&BookModel{}).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "query categories failed")
	}
	return categories, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:             b.ID,
		Title:          b.Title,
		Author:         b.Author,
		Publisher:      b.Publisher,
		ISBN:           b.ISBN,
		Classification: b.Classification,
		Category:       b.Category,
		PageCount:      b.PageCount,
		Price:          b.Price,
	}
}

func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:             model.ID,
		Title:          model.Title,
		Author:         model.Author,
		Publisher:      model.Publisher,
		ISBN:           model.ISBN,
		Classification: model.Classification,
		Category:       model.Category,
		PageCount:      model.PageCount,
		Price:          model.Price,
	}
}
