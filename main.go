package main

import (
	"context"
	"embed"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"

	"level-proxy/internal/app"
	"level-proxy/internal/config"
)

//go:embed all:public
var publicFiles embed.FS

func main() {
	configPath := flag.String("config", config.DefaultPath, "配置文件路径（YAML）")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		// 此时还没有按配置初始化日志，沿用默认 tint 输出
		slog.New(tint.NewHandler(os.Stderr, nil)).Error("配置加载失败", "error", err)
		os.Exit(1)
	}

	// 设置简洁的中文日志系统
	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      logLevel(cfg.Log.Level),
		TimeFormat: "15:04:05",
		NoColor:    cfg.Log.NoColor,
	}))
	slog.SetDefault(logger)
	slog.Info("✓ 配置加载完成", "上游", cfg.Upstream, "端口", cfg.Port)

	// 创建应用实例
	application, err := app.NewApp(cfg)
	if err != nil {
		slog.Error("应用初始化失败", "error", err)
		os.Exit(1)
	}

	// 使用 embed.FS 提供静态文件服务
	staticFS, err := fs.Sub(publicFiles, "public")
	if err != nil {
		slog.Error("无法创建静态文件子系统", "error", err)
		os.Exit(1)
	}

	// 设置路由
	application.SetupRoutes(staticFS)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 启动服务器
	if err := application.Run(ctx); err != nil {
		slog.Error("服务器异常退出", "error", err)
		os.Exit(1)
	}
	slog.Info("服务器已关闭")
}

func logLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
