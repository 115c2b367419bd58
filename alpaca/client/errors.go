package client

import (
	"fmt"
	"strings"
)

// KnownHTTPError 端点文档中列出的非成功状态码。Message 为状态码表中的原文。
type KnownHTTPError struct {
	Operation string
	Status    int
	Message   string
}

// Error 总是带上操作名与状态码；表中原文已以 "操作名: 状态码" 开头时不再重复
func (e *KnownHTTPError) Error() string {
	prefix := fmt.Sprintf("%s: %d", e.Operation, e.Status)
	if strings.HasPrefix(e.Message, prefix) {
		return e.Message
	}
	return prefix + " " + e.Message
}

// UndocumentedHTTPError 端点未声明的状态码
type UndocumentedHTTPError struct {
	Operation  string
	Status     int
	StatusText string
	Body       []byte
}

func (e *UndocumentedHTTPError) Error() string {
	return fmt.Sprintf("%s: undocumented response status: %d %s", e.Operation, e.Status, e.StatusText)
}

// ItemError 批量操作中失败的单项
type ItemError struct {
	ID      string // 订单 ID 或持仓 symbol
	Status  int
	Message string
}

func (e *ItemError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %d", e.ID, e.Status)
	}
	return fmt.Sprintf("%s: %d %s", e.ID, e.Status, e.Message)
}

// AggregateError 批量操作部分失败；Failures 列出每个失败项
type AggregateError struct {
	Operation string
	Message   string
	Failures  []*ItemError
}

func (e *AggregateError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.Error()
	}
	return fmt.Sprintf("%s: %s: %s", e.Operation, e.Message, strings.Join(parts, "; "))
}

// Unwrap 供 errors.Is / errors.As 遍历单项错误
func (e *AggregateError) Unwrap() []error {
	out := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		out[i] = f
	}
	return out
}

// FailedIDs 失败项的 ID 列表
func (e *AggregateError) FailedIDs() []string {
	out := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		out[i] = f.ID
	}
	return out
}
