package schema

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// jsonNumber 匹配 UseNumber 解码出的数字（encoding/json 与 go-json 均满足）
type jsonNumber interface {
	String() string
	Float64() (float64, error)
	Int64() (int64, error)
}

func typeName[V any]() string {
	return reflect.TypeFor[V]().String()
}

// Identity 不做转换，线上类型与目标类型一致
func Identity[V any]() Rule[V] {
	return RuleFunc(KindIdentity, func(raw any) (V, error) {
		v, ok := raw.(V)
		if !ok {
			var zero V
			return zero, TypeError(typeName[V](), raw)
		}
		return v, nil
	})
}

// String 原样接收字符串
func String() Rule[string] { return Identity[string]() }

// Any 接收任意值，字段可缺省（缺省与 null 均为 nil）；用于未文档化字段
func Any() Rule[any] {
	return RuleFunc(KindOptional, func(raw any) (any, error) { return raw, nil })
}

func numericError(s string) *ValidationError {
	return &ValidationError{Kind: InvalidNumericFormat, Input: s}
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, numericError(s)
	}
	return f, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, numericError(s)
	}
	return int(n), nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, &ValidationError{Kind: InvalidFormat, Tag: "boolean", Input: s}
}

// numberValue 读取 JSON 数字；ok=false 表示 raw 不是数字
func numberValue(raw any) (float64, bool, error) {
	switch n := raw.(type) {
	case float64:
		return n, true, nil
	case float32:
		return float64(n), true, nil
	case int:
		return float64(n), true, nil
	case int64:
		return float64(n), true, nil
	case int32:
		return float64(n), true, nil
	case jsonNumber:
		f, err := n.Float64()
		if err != nil {
			return 0, true, numericError(n.String())
		}
		return f, true, nil
	}
	return 0, false, nil
}

func integerValue(raw any) (int, bool, error) {
	switch n := raw.(type) {
	case int:
		return n, true, nil
	case int64:
		return int(n), true, nil
	case int32:
		return int(n), true, nil
	case jsonNumber:
		if i, err := n.Int64(); err == nil {
			return int(i), true, nil
		}
	}
	f, ok, err := numberValue(raw)
	if !ok || err != nil {
		return 0, ok, err
	}
	if f != math.Trunc(f) {
		return 0, true, &ValidationError{Kind: InvalidNumericFormat, Input: describe(raw), Detail: "expected integer"}
	}
	if f < math.MinInt || f >= -math.MinInt {
		return 0, true, &ValidationError{Kind: InvalidNumericFormat, Input: describe(raw), Detail: "integer out of range"}
	}
	return int(f), true, nil
}

// StringToFloat 解析数字字符串，空串和非数字均报 InvalidNumericFormat
func StringToFloat() Rule[float64] {
	return RuleFunc(KindStringToFloat, func(raw any) (float64, error) {
		s, ok := raw.(string)
		if !ok {
			return 0, TypeError("numeric string", raw)
		}
		return parseFloat(s)
	})
}

// StringToInt 解析十进制整数字符串
func StringToInt() Rule[int] {
	return RuleFunc(KindStringToInt, func(raw any) (int, error) {
		s, ok := raw.(string)
		if !ok {
			return 0, TypeError("integer string", raw)
		}
		return parseInt(s)
	})
}

// StringToBool 仅接受 "true" / "false"
func StringToBool() Rule[bool] {
	return RuleFunc(KindStringToBool, func(raw any) (bool, error) {
		s, ok := raw.(string)
		if !ok {
			return false, TypeError("boolean string", raw)
		}
		return parseBool(s)
	})
}

// StringToDecimal 解析金额，接受数字字符串或 JSON 数字
func StringToDecimal() Rule[decimal.Decimal] {
	return RuleFunc(KindStringToDecimal, func(raw any) (decimal.Decimal, error) {
		var s string
		switch v := raw.(type) {
		case string:
			s = v
		case jsonNumber:
			s = v.String()
		default:
			f, ok, err := numberValue(raw)
			if !ok {
				return decimal.Zero, TypeError("decimal string", raw)
			}
			if err != nil {
				return decimal.Zero, err
			}
			return decimal.NewFromFloat(f), nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, numericError(s)
		}
		return d, nil
	})
}

// Enum 按字面值相等检查成员关系
func Enum[E ~string](values ...E) Rule[E] {
	allowed := slices.Clone(values)
	names := make([]string, len(allowed))
	for i, v := range allowed {
		names[i] = string(v)
	}
	return RuleFunc(KindStringToEnum, func(raw any) (E, error) {
		s, ok := raw.(string)
		if !ok {
			return "", TypeError("string", raw)
		}
		if slices.Contains(allowed, E(s)) {
			return E(s), nil
		}
		return "", &ValidationError{Kind: InvalidEnumValue, Input: s, Allowed: names}
	})
}

// StringToList 拆分逗号拼接的列表（SerializeQuery 的逆操作）
func StringToList[V any](inner Rule[V]) Rule[[]V] {
	return RuleFunc(KindStringToList, func(raw any) ([]V, error) {
		s, ok := raw.(string)
		if !ok {
			return nil, TypeError("comma separated string", raw)
		}
		if s == "" {
			return []V{}, nil
		}
		parts := strings.Split(s, ",")
		out := make([]V, len(parts))
		var errs []*ValidationError
		for i, p := range parts {
			v, err := inner.Convert(strings.TrimSpace(p))
			if err != nil {
				errs = append(errs, flatten(strconv.Itoa(i), err)...)
				continue
			}
			out[i] = v
		}
		if len(errs) > 0 {
			return nil, &SchemaValidationError{Schema: "list", Errors: errs}
		}
		return out, nil
	})
}

// Number 接收 JSON 数字
func Number() Rule[float64] {
	return RuleFunc(KindNumber, func(raw any) (float64, error) {
		f, ok, err := numberValue(raw)
		if !ok {
			return 0, TypeError("number", raw)
		}
		return f, err
	})
}

// Integer 接收整数值的 JSON 数字
func Integer() Rule[int] {
	return RuleFunc(KindInteger, func(raw any) (int, error) {
		n, ok, err := integerValue(raw)
		if !ok {
			return 0, TypeError("integer", raw)
		}
		return n, err
	})
}

// Float 接收 JSON 数字或数字字符串
func Float() Rule[float64] {
	return RuleFunc(KindFloat, func(raw any) (float64, error) {
		if s, ok := raw.(string); ok {
			return parseFloat(s)
		}
		f, ok, err := numberValue(raw)
		if !ok {
			return 0, TypeError("number or numeric string", raw)
		}
		return f, err
	})
}

// Int 接收整数 JSON 数字或整数字符串
func Int() Rule[int] {
	return RuleFunc(KindInt, func(raw any) (int, error) {
		if s, ok := raw.(string); ok {
			return parseInt(s)
		}
		n, ok, err := integerValue(raw)
		if !ok {
			return 0, TypeError("integer or integer string", raw)
		}
		return n, err
	})
}

// Bool 接收 JSON 布尔值或 "true"/"false"
func Bool() Rule[bool] {
	return RuleFunc(KindBool, func(raw any) (bool, error) {
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			return parseBool(v)
		}
		return false, TypeError("boolean", raw)
	})
}

// NumberToBoolean 非零即 true
func NumberToBoolean() Rule[bool] {
	return RuleFunc(KindNumberToBoolean, func(raw any) (bool, error) {
		f, ok, err := numberValue(raw)
		if !ok {
			return false, TypeError("number", raw)
		}
		if err != nil {
			return false, err
		}
		return f != 0, nil
	})
}

// ArrayOf 逐元素应用 inner，保持位置；收集所有元素的错误
func ArrayOf[V any](inner Rule[V]) Rule[[]V] {
	return RuleFunc(KindArray, func(raw any) ([]V, error) {
		items, ok := raw.([]any)
		if !ok {
			return nil, TypeError("array", raw)
		}
		out := make([]V, len(items))
		var errs []*ValidationError
		for i, item := range items {
			v, err := inner.Convert(item)
			if err != nil {
				errs = append(errs, flatten(strconv.Itoa(i), err)...)
				continue
			}
			out[i] = v
		}
		if len(errs) > 0 {
			return nil, &SchemaValidationError{Schema: "array", Errors: errs}
		}
		return out, nil
	})
}

// Optional 缺失或 null 时返回 nil，否则委托给 inner
func Optional[V any](inner Rule[V]) Rule[*V] {
	return RuleFunc(KindOptional, func(raw any) (*V, error) {
		if raw == nil {
			return nil, nil
		}
		v, err := inner.Convert(raw)
		if err != nil {
			return nil, err
		}
		return &v, nil
	})
}

// Transform 在 inner 成功后对结果做一次映射
func Transform[A, B any](inner Rule[A], fn func(A) (B, error)) Rule[B] {
	return wrapRule(KindTransform, inner, func(raw any) (B, error) {
		a, err := inner.Convert(raw)
		if err != nil {
			var zero B
			return zero, err
		}
		return fn(a)
	})
}

func constrain[V any](inner Rule[V], check func(V) *ValidationError) Rule[V] {
	return wrapRule(KindConstraint, inner, func(raw any) (V, error) {
		v, err := inner.Convert(raw)
		if err != nil {
			return v, err
		}
		if verr := check(v); verr != nil {
			var zero V
			return zero, verr
		}
		return v, nil
	})
}

// MaxLen 限制字符串最大长度（按字符计）
func MaxLen(inner Rule[string], n int) Rule[string] {
	return constrain(inner, func(s string) *ValidationError {
		if utf8.RuneCountInString(s) > n {
			return &ValidationError{Kind: OutOfRange, Input: s, Detail: fmt.Sprintf("longer than %d", n)}
		}
		return nil
	})
}

// MinLen 限制字符串最小长度
func MinLen(inner Rule[string], n int) Rule[string] {
	return constrain(inner, func(s string) *ValidationError {
		if utf8.RuneCountInString(s) < n {
			return &ValidationError{Kind: OutOfRange, Input: s, Detail: fmt.Sprintf("shorter than %d", n)}
		}
		return nil
	})
}

// Len 要求字符串长度恰好为 n
func Len(inner Rule[string], n int) Rule[string] {
	return constrain(inner, func(s string) *ValidationError {
		if utf8.RuneCountInString(s) != n {
			return &ValidationError{Kind: OutOfRange, Input: s, Detail: fmt.Sprintf("length must be %d", n)}
		}
		return nil
	})
}

// MaxItems 限制数组最大长度
func MaxItems[V any](inner Rule[[]V], n int) Rule[[]V] {
	return constrain(inner, func(items []V) *ValidationError {
		if len(items) > n {
			return &ValidationError{Kind: OutOfRange, Input: strconv.Itoa(len(items)), Detail: fmt.Sprintf("more than %d items", n)}
		}
		return nil
	})
}

// Max 上限（含）
func Max[V cmp.Ordered](inner Rule[V], limit V) Rule[V] {
	return constrain(inner, func(v V) *ValidationError {
		if v > limit {
			return &ValidationError{Kind: OutOfRange, Input: fmt.Sprint(v), Detail: fmt.Sprintf("max %v", limit)}
		}
		return nil
	})
}

// Min 下限（含）
func Min[V cmp.Ordered](inner Rule[V], limit V) Rule[V] {
	return constrain(inner, func(v V) *ValidationError {
		if v < limit {
			return &ValidationError{Kind: OutOfRange, Input: fmt.Sprint(v), Detail: fmt.Sprintf("min %v", limit)}
		}
		return nil
	})
}

// Pattern 要求字符串匹配 re；name 出现在错误信息中
func Pattern(inner Rule[string], re *regexp.Regexp, name string) Rule[string] {
	return constrain(inner, func(s string) *ValidationError {
		if !re.MatchString(s) {
			return &ValidationError{Kind: InvalidFormat, Tag: name, Input: s}
		}
		return nil
	})
}
