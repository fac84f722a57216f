package dto

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/xiebiao/bookstore-catalog/internal/domain/book"
)

var registerOnce sync.Once

// RegisterValidators 向gin的validator注册自定义规则
// 可重复调用,只注册一次
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		err = v.RegisterValidation("isbn", validateISBN)
	})
	return err
}

// validateISBN ISBN去掉连字符和空格后为10位或13位
func validateISBN(fl validator.FieldLevel) bool {
	return book.IsValidISBN(fl.Field().String())
}
