package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"level-proxy/internal/config"
	"level-proxy/internal/handlers"
	"level-proxy/internal/models"
	"level-proxy/internal/pkg/httpx"
	"level-proxy/internal/pkg/imageproxy"
	"level-proxy/internal/pkg/imageref"
	"level-proxy/internal/pkg/upstream"
)

// App 应用程序结构体，包含所有依赖
type App struct {
	Config   *config.Config
	Adapter  upstream.Adapter
	Handlers *handlers.Handlers

	mux *http.ServeMux
}

// NewApp 创建新的应用实例：构造出站 client、选定上游适配器
func NewApp(cfg *config.Config) (*App, error) {
	imageClient, err := httpx.NewClient(httpx.Options{
		Timeout:  cfg.ImageTimeout,
		ProxyURL: cfg.Proxy,
		Headers:  map[string]string{"User-Agent": httpx.SimpleUserAgent},
	})
	if err != nil {
		return nil, fmt.Errorf("构造图片 client 失败: %w", err)
	}
	metaClient, err := httpx.NewClient(httpx.Options{
		Timeout:  cfg.MetadataTimeout,
		ProxyURL: cfg.Proxy,
	})
	if err != nil {
		return nil, fmt.Errorf("构造元数据 client 失败: %w", err)
	}

	adapter, err := selectAdapter(cfg, metaClient)
	if err != nil {
		return nil, err
	}

	fetcher := imageproxy.NewFetcher(imageClient, cfg.MaxImageBytes)
	return &App{
		Config:   cfg,
		Adapter:  adapter,
		Handlers: handlers.NewHandlers(fetcher, adapter),
		mux:      http.NewServeMux(),
	}, nil
}

// selectAdapter 启动时按配置选定唯一的上游
func selectAdapter(cfg *config.Config, client *http.Client) (upstream.Adapter, error) {
	defaults := models.DefaultsFor(cfg.Locale)
	reg, err := upstream.NewRegistry(
		upstream.StageAdapter{Host: cfg.StageHost, Region: cfg.Region, Client: client, Defaults: defaults},
		upstream.MiyousheAdapter{Host: cfg.MiyousheHost, Region: cfg.Region, Client: client, Defaults: defaults},
	)
	if err != nil {
		return nil, err
	}
	adapter, ok := reg.Get(cfg.Upstream)
	if !ok {
		return nil, fmt.Errorf("未知的上游 %q", cfg.Upstream)
	}
	return adapter, nil
}

// SetupRoutes 设置路由
func (a *App) SetupRoutes(staticFS fs.FS) {
	a.mux.HandleFunc(imageref.PathPrefix, a.withMiddleware(a.Handlers.Image.ProxyImage))
	a.mux.HandleFunc("/guid", a.withMiddleware(a.Handlers.Level.GetLevel))
	a.mux.HandleFunc("/healthz", a.withMiddleware(a.Handlers.Health.Check))

	// 其余路径交给静态资源，未命中时返回 404.html
	a.mux.HandleFunc("/", a.withMiddleware(newStaticHandler(staticFS).ServeHTTP))
}

// Handler 返回根 handler（测试中直接使用）
func (a *App) Handler() http.Handler {
	return a.mux
}

// Run 启动应用，ctx 取消后优雅退出
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr(),
		Handler:           a.mux,
		ReadHeaderTimeout: 10 * time.Second,
		// 写超时需覆盖最慢的一次上游调用
		WriteTimeout: a.Config.MetadataTimeout + a.Config.ImageTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("🚀 服务器启动", "地址", fmt.Sprintf("http://localhost%s", a.Config.Addr()), "上游", a.Adapter.Name())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("正在关闭服务器")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
