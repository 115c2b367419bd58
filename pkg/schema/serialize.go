package schema

import (
	"encoding"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// QueryParams 序列化后的查询参数（键 -> 线上字符串）
type QueryParams map[string]string

// Raw 转换为 Schema 可解析的原始记录
func (q QueryParams) Raw() map[string]any {
	out := make(map[string]any, len(q))
	for k, v := range q {
		out[k] = v
	}
	return out
}

// Values 转换为 url.Values
func (q QueryParams) Values() url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out.Set(k, v)
	}
	return out
}

type fieldTag struct {
	name      string
	omitEmpty bool
	asString  bool
}

func parseTag(f reflect.StructField, key string) (fieldTag, bool) {
	tag, ok := f.Tag.Lookup(key)
	if !ok && key != "json" {
		tag, ok = f.Tag.Lookup("json")
	}
	if tag == "-" {
		return fieldTag{}, false
	}
	parts := strings.Split(tag, ",")
	ft := fieldTag{name: parts[0]}
	if ft.name == "" {
		ft.name = f.Name
	}
	for _, opt := range parts[1:] {
		switch opt {
		case "omitempty":
			ft.omitEmpty = true
		case "string":
			ft.asString = true
		}
	}
	return ft, true
}

// structValue 解引用指针，nil 返回 ok=false
func structValue(params any) (reflect.Value, bool, error) {
	if params == nil {
		return reflect.Value{}, false, nil
	}
	v := reflect.ValueOf(params)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false, nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false, fmt.Errorf("schema: cannot serialize %s, want struct", v.Type())
	}
	return v, true, nil
}

// SerializeQuery 把参数结构体转为查询参数。
// nil 指针/切片被丢弃；切片以逗号拼接；字符串类型（枚举、tagged）取底层字符串。
func SerializeQuery(params any) (QueryParams, error) {
	out := QueryParams{}
	v, ok, err := structValue(params)
	if err != nil || !ok {
		return out, err
	}
	if err := serializeQueryStruct(v, out); err != nil {
		return nil, err
	}
	return out, nil
}

func serializeQueryStruct(v reflect.Value, out QueryParams) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := v.Field(i)
		if sf.Anonymous && fv.Kind() == reflect.Struct {
			if err := serializeQueryStruct(fv, out); err != nil {
				return err
			}
			continue
		}
		tag, ok := parseTag(sf, "query")
		if !ok {
			continue
		}
		if tag.omitEmpty && fv.IsZero() {
			continue
		}
		s, present, err := queryString(fv)
		if err != nil {
			return fmt.Errorf("schema: query field %s: %w", tag.name, err)
		}
		if !present {
			continue
		}
		out[tag.name] = s
	}
	return nil
}

func queryString(v reflect.Value) (string, bool, error) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return "", false, nil
		}
		if s, ok := textOf(v); ok {
			return s, true, nil
		}
		return queryString(v.Elem())
	case reflect.Slice:
		if v.IsNil() {
			return "", false, nil
		}
		fallthrough
	case reflect.Array:
		parts := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			s, present, err := queryString(v.Index(i))
			if err != nil {
				return "", false, err
			}
			if present {
				parts = append(parts, s)
			}
		}
		// 空列表与 nil 一样不上送，避免 key= 被服务端当作空过滤条件
		if len(parts) == 0 {
			return "", false, nil
		}
		return strings.Join(parts, ","), true, nil
	}
	return scalarString(v)
}

func scalarString(v reflect.Value) (string, bool, error) {
	if s, ok := textOf(v); ok {
		return s, true, nil
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), true, nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true, nil
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32), true, nil
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), true, nil
	}
	return "", false, fmt.Errorf("unsupported type %s", v.Type())
}

// textOf 处理 decimal.Decimal、time.Time 等自带文本表示的结构体
func textOf(v reflect.Value) (string, bool) {
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return "", false
	}
	if v.Kind() != reflect.Struct && !(v.Kind() == reflect.Pointer && v.Elem().Kind() == reflect.Struct) {
		return "", false
	}
	if !v.CanInterface() {
		return "", false
	}
	switch x := v.Interface().(type) {
	case encoding.TextMarshaler:
		b, err := x.MarshalText()
		if err != nil {
			return "", false
		}
		return string(b), true
	case fmt.Stringer:
		return x.String(), true
	}
	return "", false
}

// SerializeBody 把请求体结构体转为可 JSON 编码的 map，保留嵌套结构。
// 带 `json:",string"` 的数字字段输出为字符串（券商约定）。
func SerializeBody(params any) (map[string]any, error) {
	v, ok, err := structValue(params)
	if err != nil || !ok {
		return nil, err
	}
	out := map[string]any{}
	if err := serializeBodyStruct(v, out); err != nil {
		return nil, err
	}
	return out, nil
}

func serializeBodyStruct(v reflect.Value, out map[string]any) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := v.Field(i)
		if sf.Anonymous && fv.Kind() == reflect.Struct {
			if err := serializeBodyStruct(fv, out); err != nil {
				return err
			}
			continue
		}
		tag, ok := parseTag(sf, "json")
		if !ok {
			continue
		}
		if tag.omitEmpty && fv.IsZero() {
			continue
		}
		val, present, err := bodyValue(fv, tag.asString)
		if err != nil {
			return fmt.Errorf("schema: body field %s: %w", tag.name, err)
		}
		if present {
			out[tag.name] = val
		}
	}
	return nil
}

func bodyValue(v reflect.Value, asString bool) (any, bool, error) {
	if s, ok := textOf(v); ok {
		return s, true, nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, false, nil
		}
		return bodyValue(v.Elem(), asString)
	case reflect.Struct:
		m := map[string]any{}
		if err := serializeBodyStruct(v, m); err != nil {
			return nil, false, err
		}
		return m, true, nil
	case reflect.Slice:
		if v.IsNil() {
			return nil, false, nil
		}
		fallthrough
	case reflect.Array:
		items := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			item, present, err := bodyValue(v.Index(i), asString)
			if err != nil {
				return nil, false, err
			}
			if present {
				items = append(items, item)
			}
		}
		return items, true, nil
	case reflect.Map:
		if v.IsNil() {
			return nil, false, nil
		}
		if v.Type().Key().Kind() != reflect.String {
			return nil, false, fmt.Errorf("unsupported map key %s", v.Type().Key())
		}
		m := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			item, present, err := bodyValue(iter.Value(), asString)
			if err != nil {
				return nil, false, err
			}
			if present {
				m[iter.Key().String()] = item
			}
		}
		return m, true, nil
	case reflect.String:
		return v.String(), true, nil
	}
	if asString {
		s, ok, err := scalarString(v)
		return s, ok, err
	}
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if u := v.Uint(); u > math.MaxInt64 {
			return u, true, nil
		}
		return int64(v.Uint()), true, nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), true, nil
	}
	return nil, false, fmt.Errorf("unsupported type %s", v.Type())
}
