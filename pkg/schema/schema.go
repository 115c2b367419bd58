package schema

import (
	"errors"
	"fmt"
)

// Retained 嵌入到解析结果中，保存原始线上载荷
type Retained struct {
	raw map[string]any
}

// Raw 返回解析时的原始载荷（同一个 map，不做拷贝）
func (r *Retained) Raw() map[string]any { return r.raw }

func (r *Retained) retain(raw map[string]any) { r.raw = raw }

type retainer interface {
	retain(map[string]any)
}

// FieldDef 一个字段的声明：名称 + 规则 + 写入目标结构体的 setter
type FieldDef[T any] struct {
	name     string
	kind     Kind
	optional bool
	apply    func(dst *T, raw any) error
	invalid  string
}

// Field 声明字段。规则可缺省（见 IsOptional）时缺失的字段按 null 处理，否则缺失即 MissingField。
func Field[T, V any](name string, rule Rule[V], set func(*T, V)) FieldDef[T] {
	f := FieldDef[T]{name: name}
	switch {
	case rule == nil:
		f.invalid = "nil rule"
		return f
	case set == nil:
		f.invalid = "nil setter"
		return f
	}
	f.kind = rule.Kind()
	f.optional = IsOptional(rule)
	f.apply = func(dst *T, raw any) error {
		v, err := rule.Convert(raw)
		if err != nil {
			return err
		}
		set(dst, v)
		return nil
	}
	return f
}

// Schema 有序的字段声明集合，定义后不可变，可并发使用
type Schema[T any] struct {
	name   string
	fields []FieldDef[T]
}

// Define 构造 Schema，在定义期检查字段声明的结构合法性
func Define[T any](name string, fields ...FieldDef[T]) (*Schema[T], error) {
	if name == "" {
		return nil, errors.New("schema: empty schema name")
	}
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		if f.name == "" {
			return nil, fmt.Errorf("schema %s: field #%d has empty name", name, i)
		}
		if f.invalid != "" {
			return nil, fmt.Errorf("schema %s: field %q: %s", name, f.name, f.invalid)
		}
		if _, dup := seen[f.name]; dup {
			return nil, fmt.Errorf("schema %s: duplicate field %q", name, f.name)
		}
		seen[f.name] = struct{}{}
	}
	return &Schema[T]{name: name, fields: append([]FieldDef[T](nil), fields...)}, nil
}

// MustDefine 同 Define，失败时 panic；用于包级 Schema 变量
func MustDefine[T any](name string, fields ...FieldDef[T]) *Schema[T] {
	s, err := Define(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name 返回 Schema 名称
func (s *Schema[T]) Name() string { return s.name }

// FieldNames 按声明顺序返回字段名
func (s *Schema[T]) FieldNames() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.name
	}
	return out
}

// Kind 实现 Rule，Schema 本身即嵌套对象规则
func (s *Schema[T]) Kind() Kind { return KindObject }

// Convert 实现 Rule
func (s *Schema[T]) Convert(raw any) (T, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		var zero T
		return zero, TypeError("object", raw)
	}
	return s.Parse(m)
}

// Parse 逐字段解析 raw。所有字段都会被检查，错误累积后一次性返回 *SchemaValidationError。
func (s *Schema[T]) Parse(raw map[string]any) (T, error) {
	var out T
	var errs []*ValidationError
	for _, f := range s.fields {
		v, present := raw[f.name]
		if !present && !f.optional {
			errs = append(errs, &ValidationError{Kind: MissingField, Field: f.name})
			continue
		}
		if err := f.apply(&out, v); err != nil {
			errs = append(errs, flatten(f.name, err)...)
		}
	}
	if len(errs) > 0 {
		var zero T
		return zero, &SchemaValidationError{Schema: s.name, Errors: errs}
	}
	if r, ok := any(&out).(retainer); ok {
		r.retain(raw)
	}
	return out, nil
}

// Validate 只做校验，丢弃结果
func (s *Schema[T]) Validate(raw map[string]any) error {
	_, err := s.Parse(raw)
	return err
}
