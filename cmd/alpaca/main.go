// Command alpaca 交易接口命令行：查看账户、资产、订单、持仓、自选列表与市场时钟。
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/betbot/goalpaca/alpaca/client"
	"github.com/betbot/goalpaca/pkg/config"
	"github.com/betbot/goalpaca/pkg/logger"
)

type rootOptions struct {
	configFile string
	paper      bool
	live       bool
	logLevel   string
	logFile    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("错误: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "alpaca",
		Short:         "Alpaca 交易接口命令行",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "配置文件（.yaml/.yml/.json），环境变量优先")
	root.PersistentFlags().BoolVar(&opts.paper, "paper", false, "强制使用模拟盘")
	root.PersistentFlags().BoolVar(&opts.live, "live", false, "强制使用实盘")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "日志级别: debug, info, warn, error")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "日志文件路径（按大小滚动）")
	root.MarkFlagsMutuallyExclusive("paper", "live")

	registerAccountCmd(root, opts)
	registerAssetsCmd(root, opts)
	registerOrdersCmd(root, opts)
	registerPositionsCmd(root, opts)
	registerWatchlistsCmd(root, opts)
	registerTimeCmds(root, opts)

	return root
}

// newClient 按 配置文件 -> 环境变量 -> 命令行参数 的顺序合成配置并创建客户端
func newClient(opts *rootOptions) (*client.Client, error) {
	cfg, err := config.LoadFromFile(opts.configFile)
	if err != nil {
		return nil, err
	}
	switch {
	case opts.paper:
		cfg.Paper = true
	case opts.live:
		cfg.Paper = false
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputFile: cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}); err != nil {
		return nil, errors.Wrap(err, "初始化日志失败")
	}

	log := logger.WithFields(logrus.Fields{"paper": cfg.Paper, "account_key": maskKey(cfg.Key)})
	log.Debugf("交易接口: %s", cfg.URL(config.Trading))
	return client.New(cfg, client.WithLogger(log))
}

// maskKey 日志中只保留 key 的末四位
func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
