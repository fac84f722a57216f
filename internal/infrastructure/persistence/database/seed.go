package database

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-catalog/internal/domain/book"
)

// SeedBook 种子文件中的一条图书记录
type SeedBook struct {
	Title          string          `yaml:"title"`
	Author         string          `yaml:"author"`
	Publisher      string          `yaml:"publisher"`
	ISBN           string          `yaml:"isbn"`
	Classification string          `yaml:"classification"`
	Category       string          `yaml:"category"`
	PageCount      int             `yaml:"page_count"`
	Price          decimal.Decimal `yaml:"price"`
}

// LoadSeedFile 读取YAML种子文件
func LoadSeedFile(path string) ([]SeedBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var doc struct {
		Books []SeedBook `yaml:"books"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return doc.Books, nil
}

// Seed 表为空时写入种子数据
// 学习要点:
// 1. 已有数据时直接跳过,重复启动不会产生重复记录
// 2. 每条记录按领域规则规范化并校验
// 3. 批量插入在一个事务中完成,失败时整体回滚
func Seed(ctx context.Context, db *gorm.DB, logger *zap.Logger, books []SeedBook) error {
	var count int64
	if err := db.WithContext(ctx).Model(&BookModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	if count > 0 {
		logger.Debug("seed skipped, books table not empty", zap.Int64("count", count))
		return nil
	}
	if len(books) == 0 {
		return nil
	}

	models := make([]BookModel, len(books))
	for i, sb := range books {
		b := book.NewBook(sb.Title, sb.Author, sb.Publisher, sb.ISBN, sb.Classification, sb.Category, sb.PageCount, sb.Price)
		if err := b.Validate(); err != nil {
			return fmt.Errorf("seed book %d (%q): %w", i, sb.Title, err)
		}
		models[i] = *toBookModel(b)
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(models, 100).Error
	})
	if err != nil {
		return fmt.Errorf("insert seed books: %w", err)
	}

	logger.Info("seeded books", zap.Int("count", len(models)))
	return nil
}
