package book

import (
	"context"
	"errors"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验(字段校验、ISBN唯一性)
// 2. 不依赖具体的Repository实现(依赖倒置)
// 3. 目录查询不做缓存,每次调用都重新执行count+select
type Service interface {
	// ListBooks 按条件分页查询目录
	ListBooks(ctx context.Context, q Query) (Page, error)

	// ListCategories 返回所有分类(去重、升序)
	ListCategories(ctx context.Context) ([]string, error)

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id uint) (*Book, error)

	// CreateBook 新增图书
	// 业务规则:
	// - 书名、作者必填
	// - ISBN为10位或13位
	// - 价格、页数不能为负
	// - ISBN不能重复
	CreateBook(ctx context.Context, book *Book) error

	// UpdateBook 用changes覆盖指定图书的全部可变字段
	// 业务规则同CreateBook,ISBN查重时排除自身
	UpdateBook(ctx context.Context, id uint, changes *Book) (*Book, error)

	// DeleteBook 删除图书,不存在时返回ErrBookNotFound
	DeleteBook(ctx context.Context, id uint) (*Book, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListBooks(ctx context.Context, q Query) (Page, error) {
	books, total, err := s.repo.List(ctx, q)
	if err != nil {
		return Page{}, err
	}
	if books == nil {
		books = []*Book{}
	}
	return Page{Query: q, TotalItems: total, Books: books}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return nil, NotFound(id)
		}
		return nil, err
	}
	return b, nil
}

func (s *service) CreateBook(ctx context.Context, book *Book) error {
	// 1. 字段校验
	if err := book.Validate(); err != nil {
		return err
	}

	// 2. 检查ISBN是否已存在(唯一索引兜底,这里提前给出明确错误)
	if err := s.ensureISBNAvailable(ctx, book.ISBN, 0); err != nil {
		return err
	}

	// 3. 持久化
	return s.repo.Create(ctx, book)
}

func (s *service) UpdateBook(ctx context.Context, id uint, changes *Book) (*Book, error) {
	if err := changes.Validate(); err != nil {
		return nil, err
	}

	// 1. 查询图书
	existing, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. ISBN查重(排除自身)
	if err := s.ensureISBNAvailable(ctx, changes.ISBN, id); err != nil {
		return nil, err
	}

	// 3. 覆盖字段并持久化
	existing.Apply(changes)
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *service) DeleteBook(ctx context.Context, id uint) (*Book, error) {
	existing, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return nil, NotFound(id)
		}
		return nil, err
	}
	return existing, nil
}

// ensureISBNAvailable ISBN未被除selfID以外的图书占用
func (s *service) ensureISBNAvailable(ctx context.Context, isbn string, selfID uint) error {
	other, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return nil
		}
		return err
	}
	if other != nil && other.ID != selfID {
		return ErrISBNDuplicate
	}
	return nil
}
