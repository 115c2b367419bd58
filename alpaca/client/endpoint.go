package client

import (
	"context"
	"net/http"
	"net/url"
	"regexp"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/betbot/goalpaca/pkg/schema"
	sdkhttp "github.com/betbot/goalpaca/pkg/sdk/http"
)

// NoParams 用于不接收 query 或 body 的端点
type NoParams struct{}

// Endpoint 一个 REST 操作的静态描述。Path 与 StatusMessages 中的 {param} 由 Call.PathParams 替换。
type Endpoint[Q, B, R any] struct {
	Name           string
	Method         string
	Path           string
	Query          *schema.Schema[Q] // nil 表示不接收 query
	Body           *schema.Schema[B] // nil 表示不接收 body
	Response       schema.Rule[R]    // nil 表示成功时无响应体
	OKStatus       int               // 0 视为 200
	StatusMessages map[int]string
}

// Call 一次调用的参数（调用方形态，尚未序列化）
type Call[Q, B any] struct {
	PathParams map[string]string
	Query      *Q
	Body       *B
}

var placeholder = regexp.MustCompile(`\{([a-z_]+)\}`)

func substitute(tmpl string, params map[string]string, escape bool) (string, error) {
	var missing string
	out := placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := m[1 : len(m)-1]
		v, ok := params[key]
		if !ok || v == "" {
			if missing == "" {
				missing = key
			}
			return m
		}
		if escape {
			return url.PathEscape(v)
		}
		return v
	})
	if missing != "" {
		return "", errors.Errorf("missing path parameter %q", missing)
	}
	return out, nil
}

type named interface {
	Name() string
}

func ruleName[R any](rule schema.Rule[R], fallback string) string {
	if n, ok := rule.(named); ok {
		return n.Name()
	}
	return fallback
}

// Invoke 统一调用入口：
//  1. 序列化并校验 query（失败时不发请求）
//  2. 序列化并校验 body
//  3. 通过 Transport 发送一次请求
//  4. 状态码等于 OKStatus 时按 Response 解析
//  5. 否则返回 KnownHTTPError 或 UndocumentedHTTPError
func Invoke[Q, B, R any](ctx context.Context, c *Client, ep Endpoint[Q, B, R], call Call[Q, B]) (R, error) {
	var zero R

	path, err := substitute(ep.Path, call.PathParams, true)
	if err != nil {
		return zero, errors.Wrap(err, ep.Name)
	}
	req := &sdkhttp.Request{
		Method:  ep.Method,
		Path:    path,
		Headers: c.authHeaders(),
	}

	if call.Query != nil {
		if ep.Query == nil {
			return zero, errors.Errorf("%s: endpoint takes no query parameters", ep.Name)
		}
		params, err := schema.SerializeQuery(call.Query)
		if err != nil {
			return zero, errors.Wrapf(err, "%s: serialize query", ep.Name)
		}
		if err := ep.Query.Validate(params.Raw()); err != nil {
			return zero, schema.AtStage(err, ep.Query.Name(), schema.StageQuery, ep.Name)
		}
		req.Query = params.Values()
	}

	if call.Body != nil {
		if ep.Body == nil {
			return zero, errors.Errorf("%s: endpoint takes no request body", ep.Name)
		}
		body, err := schema.SerializeBody(call.Body)
		if err != nil {
			return zero, errors.Wrapf(err, "%s: serialize body", ep.Name)
		}
		if err := ep.Body.Validate(body); err != nil {
			return zero, schema.AtStage(err, ep.Body.Name(), schema.StageBody, ep.Name)
		}
		if req.Body, err = schema.EncodeJSON(body); err != nil {
			return zero, errors.Wrapf(err, "%s: encode body", ep.Name)
		}
		req.Headers["Content-Type"] = "application/json"
	}

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return zero, errors.Wrap(err, ep.Name)
	}
	c.log.WithFields(logrus.Fields{
		"op":       ep.Name,
		"method":   ep.Method,
		"path":     path,
		"status":   resp.Status,
		"duration": resp.Duration,
	}).Debug("alpaca request")

	ok := ep.OKStatus
	if ok == 0 {
		ok = http.StatusOK
	}
	if resp.Status != ok {
		if msg, known := ep.StatusMessages[resp.Status]; known {
			// 消息里的占位符不做转义
			if expanded, err := substitute(msg, call.PathParams, false); err == nil {
				msg = expanded
			}
			return zero, &KnownHTTPError{Operation: ep.Name, Status: resp.Status, Message: msg}
		}
		return zero, &UndocumentedHTTPError{
			Operation:  ep.Name,
			Status:     resp.Status,
			StatusText: resp.StatusText,
			Body:       resp.Body,
		}
	}

	if ep.Response == nil {
		return zero, nil
	}
	name := ruleName(ep.Response, ep.Name)
	raw, err := schema.DecodeJSON(resp.Body)
	if err != nil {
		return zero, schema.AtStage(err, name, schema.StageResponse, ep.Name)
	}
	out, err := ep.Response.Convert(raw)
	if err != nil {
		return zero, schema.AtStage(err, name, schema.StageResponse, ep.Name)
	}
	return out, nil
}
