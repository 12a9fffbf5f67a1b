package service

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"Orion_Tube/pkg/errno"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// NormalizePage 页码从1开始；非法值回落到默认值，超过上限的每页条数截断到上限。
// 页码截断到偏移量不溢出的最大值，这样的页一定在末尾之后
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page-1 > math.MaxInt/pageSize {
		page = math.MaxInt/pageSize + 1
	}
	return page, pageSize
}

func offsetOf(page, pageSize int) int {
	return (page - 1) * pageSize
}

// storeError 把数据库错误翻译成业务错误：记录不存在→NotFound，其余→依赖失败
func storeError(err error, notFound, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errno.NewNotFound(notFound)
	}
	return errno.NewDependency(errors.WithMessage(err, op), "数据库操作失败")
}

// 去掉首尾空白后不能为空
func requireText(value, field string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", errno.NewInvalidArgument(field + "不能为空")
	}
	return v, nil
}

func requireViewer(viewerID uint64) error {
	if viewerID == 0 {
		return errno.NewUnauthorized("请先登录")
	}
	return nil
}
