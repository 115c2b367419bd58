package schema

import "fmt"

// Kind 字段规则的种类（封闭集合）
type Kind int

const (
	KindIdentity Kind = iota
	KindStringToFloat
	KindStringToInt
	KindStringToBool
	KindStringToDecimal
	KindStringToEnum
	KindStringToTagged
	KindStringToList
	KindNumber
	KindInteger
	KindFloat
	KindInt
	KindBool
	KindNumberToBoolean
	KindArray
	KindOptional
	KindObject
	KindTransform
	KindConstraint
)

var kindNames = [...]string{
	KindIdentity:        "identity",
	KindStringToFloat:   "string->float",
	KindStringToInt:     "string->int",
	KindStringToBool:    "string->bool",
	KindStringToDecimal: "string->decimal",
	KindStringToEnum:    "string->enum",
	KindStringToTagged:  "string->tagged",
	KindStringToList:    "string->list",
	KindNumber:          "number",
	KindInteger:         "integer",
	KindFloat:           "float",
	KindInt:             "int",
	KindBool:            "bool",
	KindNumberToBoolean: "number->bool",
	KindArray:           "array",
	KindOptional:        "optional",
	KindObject:          "object",
	KindTransform:       "transform",
	KindConstraint:      "constraint",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Rule 把一个原始线上值转换为类型化的值。
// 失败时返回 *ValidationError，嵌套规则（对象、数组）返回 *SchemaValidationError。
type Rule[V any] interface {
	Kind() Kind
	Convert(raw any) (V, error)
}

// RuleFunc 以函数实现 Rule，供本包和 tagged 包构造基础规则
func RuleFunc[V any](kind Kind, fn func(raw any) (V, error)) Rule[V] {
	return ruleFunc[V]{kind: kind, fn: fn}
}

type ruleFunc[V any] struct {
	kind Kind
	opt  bool
	fn   func(raw any) (V, error)
}

func (r ruleFunc[V]) Kind() Kind                  { return r.kind }
func (r ruleFunc[V]) Convert(raw any) (V, error) { return r.fn(raw) }
func (r ruleFunc[V]) optional() bool              { return r.opt || r.kind == KindOptional }

// wrapRule 包装 inner 的规则继承其可缺省性
func wrapRule[V, I any](kind Kind, inner Rule[I], fn func(raw any) (V, error)) Rule[V] {
	return ruleFunc[V]{kind: kind, opt: IsOptional(inner), fn: fn}
}

// IsOptional 报告字段缺失时规则是否放行：Optional 本身，或包裹了 Optional 的 Transform/约束
func IsOptional[V any](rule Rule[V]) bool {
	if o, ok := rule.(interface{ optional() bool }); ok {
		return o.optional()
	}
	return rule.Kind() == KindOptional
}

// TypeError 构造 InvalidType 错误
func TypeError(want string, raw any) *ValidationError {
	return &ValidationError{Kind: InvalidType, Input: describe(raw), Detail: "expected " + want}
}

func describe(raw any) string {
	if raw == nil {
		return "null"
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return fmt.Sprintf("%v (%T)", raw, raw)
}
