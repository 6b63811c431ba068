package service

import (
	"errors"
	"fmt"
)

// 错误类别，api 层据此映射 HTTP 状态码（404/401/400）
var (
	ErrStateNotFound    = errors.New("state not found")
	ErrMovieNotFound    = errors.New("movie not found")
	ErrPetitionNotFound = errors.New("petition not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrUnauthorized     = errors.New("authentication required")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// SideError 两州对比时标记出错的是哪一侧（state1/state2），整体失败不返回半边数据
type SideError struct {
	Side int
	Err  error
}

func (e *SideError) Error() string {
	return fmt.Sprintf("state%d: %s", e.Side, e.Err)
}

func (e *SideError) Unwrap() error { return e.Err }
