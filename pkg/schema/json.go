package schema

import (
	"bytes"
	"fmt"
	"io"

	j "github.com/goccy/go-json"
)

// DecodeJSON 解码原始载荷。数字保留为 json.Number，交给字段规则决定如何转换。
func DecodeJSON(data []byte) (any, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("schema: empty JSON payload")
		}
		return nil, fmt.Errorf("schema: decode JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("schema: trailing data after JSON value")
	}
	return v, nil
}

// DecodeObject 解码 JSON 对象
func DecodeObject(data []byte) (map[string]any, error) {
	v, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, TypeError("object", v)
	}
	return m, nil
}

// EncodeJSON 编码请求体
func EncodeJSON(v any) ([]byte, error) {
	return j.Marshal(v)
}
