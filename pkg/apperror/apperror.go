package apperror

import (
	"errors"
	"fmt"
)

// ConflictError 表示对一个协议记录的操作与它的当前状态冲突。
// 典型场景：两个协作者同时认领同一条记录，后到者会收到这个错误。
// 调用方可以重新拉取列表并选择其他记录。
type ConflictError struct {
	// CurrentStatus 是冲突发生时记录的实际状态。
	CurrentStatus string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("操作与记录当前状态冲突: %s", e.CurrentStatus)
}

// InvalidStateError 表示试图从一个终态发起状态转换。
// 这不可重试，通常意味着调用方持有的是过期的界面数据。
type InvalidStateError struct {
	CurrentStatus string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("记录已处于终态，不允许再次变更: %s", e.CurrentStatus)
}

// ValidationError 表示输入数据未通过校验，修正输入后可以重试。
type ValidationError struct {
	// Field 是出错的字段名，用于前端内联展示。
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("字段 %s 校验失败: %s", e.Field, e.Reason)
}

// StoreUnavailableError 表示底层存储调用失败（网络、宕机等）。
// 它与业务规则错误严格区分，调用方可以带退避地重试。
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("存储不可用 (%s): %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// NewStoreUnavailable 把一个底层存储错误包装为StoreUnavailableError。
func NewStoreUnavailable(op string, err error) error {
	return &StoreUnavailableError{Op: op, Err: err}
}

// IsConflict 判断错误链中是否包含ConflictError。
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsInvalidState 判断错误链中是否包含InvalidStateError。
func IsInvalidState(err error) bool {
	var target *InvalidStateError
	return errors.As(err, &target)
}

// IsValidation 判断错误链中是否包含ValidationError。
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsStoreUnavailable 判断错误链中是否包含StoreUnavailableError。
func IsStoreUnavailable(err error) bool {
	var target *StoreUnavailableError
	return errors.As(err, &target)
}
