package http

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// Request 一次 REST 请求
type Request struct {
	Method  string
	Path    string // 相对于 host 的路径
	Query   url.Values
	Headers map[string]string
	Body    []byte // nil 表示无请求体
}

// Response 原始响应：状态码、状态文本和未解析的 body
type Response struct {
	Status     int
	StatusText string
	Body       []byte
	Duration   time.Duration
}

// Transport 发送单次请求。非 2xx 不是错误，只有网络层失败才返回 error。
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Client 基于 resty 的 Transport 实现
type Client struct {
	client *resty.Client
}

var _ Transport = (*Client)(nil)

// NewClient 创建客户端。单次尝试，不重试。
func NewClient(host string, timeout time.Duration) *Client {
	host = strings.TrimSuffix(host, "/")

	// resty 会自动从环境变量读取代理配置（HTTP_PROXY, HTTPS_PROXY）
	client := resty.New().
		SetBaseURL(host).
		SetTimeout(timeout).
		SetRetryCount(0)

	return &Client{client: client}
}

// Host 返回基础 URL
func (c *Client) Host() string { return c.client.BaseURL }

// 仅设置本次请求的 Header（不要改 client 级 Header）
func (c *Client) newRequest(ctx context.Context) *resty.Request {
	r := c.client.R()
	if ctx != nil {
		r.SetContext(ctx)
	}
	r.SetHeader("User-Agent", "goalpaca")
	return r
}

// Do 发送请求
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	rc := c.newRequest(ctx)
	for k, v := range req.Headers {
		rc.SetHeader(k, v)
	}
	if len(req.Query) > 0 {
		rc.SetQueryParamsFromValues(req.Query)
	}
	if req.Body != nil {
		rc.SetBody(req.Body)
	}

	method := strings.ToUpper(req.Method)
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return nil, errors.Errorf("unsupported method: %s", req.Method)
	}

	resp, err := rc.Execute(method, req.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, req.Path)
	}
	return &Response{
		Status:     resp.StatusCode(),
		StatusText: statusText(resp.StatusCode(), resp.Status()),
		Body:       resp.Body(),
		Duration:   resp.Time(),
	}, nil
}

// statusText 从 "404 Not Found" 中取出文本部分
func statusText(code int, status string) string {
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if text == "" {
		return http.StatusText(code)
	}
	return text
}
