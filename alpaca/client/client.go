// Package client 是交易 REST 接口的类型化客户端：端点描述 + 统一调用入口 + 各资源模块。
package client

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/betbot/goalpaca/pkg/config"
	"github.com/betbot/goalpaca/pkg/logger"
	sdkhttp "github.com/betbot/goalpaca/pkg/sdk/http"
)

const (
	HeaderKeyID     = "APCA-API-KEY-ID"
	HeaderSecretKey = "APCA-API-SECRET-KEY"
)

// Client 交易接口客户端。构造后只读，可被多个 goroutine 并发使用。
type Client struct {
	cfg       config.Config
	transport sdkhttp.Transport
	log       *logrus.Entry

	Account    *AccountModule
	Assets     *AssetsModule
	Orders     *OrdersModule
	Positions  *PositionsModule
	Watchlists *WatchlistsModule
	Time       *TimeModule
	History    *HistoryModule
}

// Option 构造选项
type Option func(*Client)

// WithLogger 设置请求跟踪日志（仅 Debug 级别输出）
func WithLogger(entry *logrus.Entry) Option {
	return func(c *Client) {
		if entry != nil {
			c.log = entry
		}
	}
}

// WithTransport 替换底层传输，主要用于测试
func WithTransport(t sdkhttp.Transport) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// New 创建客户端。cfg 在此刻被复制，之后不再读取环境变量。
func New(cfg config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "alpaca client")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultTimeout
	}
	c := &Client{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = sdkhttp.NewClient(cfg.URL(config.Trading), cfg.Timeout)
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	c.log = c.log.WithField("component", "alpaca")

	c.Account = &AccountModule{c: c}
	c.Assets = &AssetsModule{c: c}
	c.Orders = &OrdersModule{c: c}
	c.Positions = &PositionsModule{c: c}
	c.Watchlists = &WatchlistsModule{c: c}
	c.Time = &TimeModule{c: c}
	c.History = &HistoryModule{c: c}
	return c, nil
}

// Config 返回客户端使用的配置副本
func (c *Client) Config() config.Config { return c.cfg }

// Paper 是否为模拟盘
func (c *Client) Paper() bool { return c.cfg.Paper }

func (c *Client) authHeaders() map[string]string {
	return map[string]string{
		"Accept":        "application/json",
		HeaderKeyID:     c.cfg.Key,
		HeaderSecretKey: c.cfg.Secret,
	}
}
