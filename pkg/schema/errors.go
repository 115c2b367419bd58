package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind 字段级校验错误类型
type ErrorKind string

const (
	MissingField         ErrorKind = "missing_field"
	InvalidNumericFormat ErrorKind = "invalid_numeric_format"
	InvalidEnumValue     ErrorKind = "invalid_enum_value"
	InvalidFormat        ErrorKind = "invalid_format"
	InvalidType          ErrorKind = "invalid_type"
	OutOfRange           ErrorKind = "out_of_range"
)

// Stage 校验发生的阶段
type Stage string

const (
	StageQuery    Stage = "query"
	StageBody     Stage = "body"
	StageResponse Stage = "response"
)

// ValidationError 单个字段的校验错误
type ValidationError struct {
	Kind  ErrorKind
	Field string // 以 "." 分隔的路径，例如 legs.0.symbol；由 Schema 填充
	// Tag 仅 InvalidFormat 使用：未通过的校验标签（UUID、date 等）
	Tag     string
	Input   string
	Allowed []string // InvalidEnumValue 的合法取值
	Detail  string
}

func (e *ValidationError) Error() string {
	field := e.Field
	if field == "" {
		field = "<value>"
	}
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("%s: missing field", field)
	case InvalidNumericFormat:
		return fmt.Sprintf("%s: invalid numeric format %q", field, e.Input)
	case InvalidEnumValue:
		return fmt.Sprintf("%s: invalid enum value %q (allowed: %s)", field, e.Input, strings.Join(e.Allowed, ", "))
	case InvalidFormat:
		if e.Tag == "" {
			return fmt.Sprintf("%s: invalid format: %s", field, e.Detail)
		}
		return fmt.Sprintf("%s: %q is not a valid %s", field, e.Input, e.Tag)
	case OutOfRange:
		return fmt.Sprintf("%s: %q out of range: %s", field, e.Input, e.Detail)
	default:
		return fmt.Sprintf("%s: %s (%s)", field, e.Kind, e.Detail)
	}
}

// at 返回挂在 prefix 下的副本，原错误保持不变
func (e *ValidationError) at(prefix string) *ValidationError {
	cp := *e
	switch {
	case prefix == "":
	case cp.Field == "":
		cp.Field = prefix
	default:
		cp.Field = prefix + "." + cp.Field
	}
	return &cp
}

// SchemaValidationError 一次 query/body/response 校验的全部字段错误
type SchemaValidationError struct {
	Schema    string
	Operation string // 由端点调用方填充
	Stage     Stage
	Errors    []*ValidationError
}

func (e *SchemaValidationError) Error() string {
	b := &strings.Builder{}
	if e.Operation != "" {
		fmt.Fprintf(b, "%s: ", e.Operation)
	}
	if e.Stage != "" {
		fmt.Fprintf(b, "invalid %s: ", e.Stage)
	}
	fmt.Fprintf(b, "%s: %d validation error(s): ", e.Schema, len(e.Errors))
	for i, fe := range e.Errors {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(fe.Error())
	}
	return b.String()
}

// Fields 返回出错字段路径（按出现顺序）
func (e *SchemaValidationError) Fields() []string {
	out := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		out = append(out, fe.Field)
	}
	return out
}

// Find 返回指定字段上第一个指定类型的错误
func (e *SchemaValidationError) Find(field string, kind ErrorKind) *ValidationError {
	for _, fe := range e.Errors {
		if fe.Field == field && fe.Kind == kind {
			return fe
		}
	}
	return nil
}

// flatten 把规则返回的错误展开为挂在 prefix 下的字段错误
func flatten(prefix string, err error) []*ValidationError {
	var sve *SchemaValidationError
	if errors.As(err, &sve) {
		out := make([]*ValidationError, 0, len(sve.Errors))
		for _, fe := range sve.Errors {
			out = append(out, fe.at(prefix))
		}
		return out
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return []*ValidationError{ve.at(prefix)}
	}
	return []*ValidationError{{Kind: InvalidFormat, Field: prefix, Detail: err.Error()}}
}

// AtStage 把规则返回的错误归一为带阶段和操作名的 SchemaValidationError
func AtStage(err error, name string, stage Stage, operation string) *SchemaValidationError {
	var sve *SchemaValidationError
	if errors.As(err, &sve) {
		cp := *sve
		if name != "" {
			cp.Schema = name
		}
		cp.Stage = stage
		cp.Operation = operation
		return &cp
	}
	return &SchemaValidationError{Schema: name, Operation: operation, Stage: stage, Errors: flatten("", err)}
}

// AsValidation 从 err 中提取 SchemaValidationError
func AsValidation(err error) (*SchemaValidationError, bool) {
	var sve *SchemaValidationError
	if errors.As(err, &sve) {
		return sve, true
	}
	return nil, false
}
