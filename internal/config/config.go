package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"level-proxy/internal/models"
	"level-proxy/internal/pkg/imageproxy"
	"level-proxy/internal/pkg/upstream"
)

// 上游名称
const (
	UpstreamStage    = "stage"
	UpstreamMiyoushe = "miyoushe"
)

// DefaultPath 默认配置文件位置
var DefaultPath = filepath.Join("config", "config.yaml")

// 日志配置
type LogConfig struct {
	// 级别 - debug/info/warn/error
	Level string `yaml:"级别" env:"LEVEL_PROXY_LOG_LEVEL"`
	// 禁用颜色 - 输出到文件或日志平台时建议开启
	NoColor bool `yaml:"禁用颜色" env:"LEVEL_PROXY_LOG_NO_COLOR"`
}

// 应用配置结构体
type Config struct {
	// 端口号 - 应用程序监听的端口号
	Port int `yaml:"端口" env:"LEVEL_PROXY_PORT"`
	// 上游 - stage 或 miyoushe，每个部署只对接一个
	Upstream string `yaml:"上游" env:"LEVEL_PROXY_UPSTREAM"`
	// stage接口地址
	StageHost string `yaml:"stage地址" env:"LEVEL_PROXY_STAGE_HOST"`
	// 米游社接口地址
	MiyousheHost string `yaml:"米游社地址" env:"LEVEL_PROXY_MIYOUSHE_HOST"`
	// 区服 - 默认官服 cn_gf01
	Region string `yaml:"区服" env:"LEVEL_PROXY_REGION"`
	// 图片超时
	ImageTimeout time.Duration `yaml:"图片超时" env:"LEVEL_PROXY_IMAGE_TIMEOUT"`
	// 元数据超时
	MetadataTimeout time.Duration `yaml:"元数据超时" env:"LEVEL_PROXY_METADATA_TIMEOUT"`
	// 图片大小上限（字节）
	MaxImageBytes int64 `yaml:"图片大小上限" env:"LEVEL_PROXY_MAX_IMAGE_BYTES"`
	// 代理地址 - 出站请求使用的代理服务器地址
	Proxy string `yaml:"代理地址" env:"LEVEL_PROXY_PROXY"`
	// 语言 - 默认文案使用的语言（zh/en）
	Locale string `yaml:"语言" env:"LEVEL_PROXY_LOCALE"`
	// 日志
	Log LogConfig `yaml:"日志"`
}

// Default 返回内置默认配置
func Default() *Config {
	return &Config{
		Port:            3000,
		Upstream:        UpstreamStage,
		StageHost:       upstream.DefaultStageHost,
		MiyousheHost:    upstream.DefaultMiyousheHost,
		Region:          upstream.DefaultRegion,
		ImageTimeout:    10 * time.Second,
		MetadataTimeout: 15 * time.Second,
		MaxImageBytes:   imageproxy.DefaultMaxBytes,
		Locale:          "zh",
		Log:             LogConfig{Level: "info"},
	}
}

// Load 依次应用：内置默认值 -> YAML 文件（不存在则跳过）-> 环境变量，最后校验
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeYAML(path); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeYAML 把文件中出现的字段覆盖到当前配置上
func (c *Config) mergeYAML(path string) error {
	file, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("读取配置文件 %q 失败: %w", path, err)
	}
	if err := yaml.Unmarshal(file, c); err != nil {
		return fmt.Errorf("解析配置文件 %q 失败: %w", path, err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Upstream = strings.ToLower(strings.TrimSpace(c.Upstream))
	c.Proxy = strings.TrimSpace(c.Proxy)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

// Validate 校验字段合法性
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("端口无效: %d", c.Port)
	}
	switch c.Upstream {
	case UpstreamStage, UpstreamMiyoushe:
	default:
		return fmt.Errorf("未知的上游 %q（可选 %s/%s）", c.Upstream, UpstreamStage, UpstreamMiyoushe)
	}
	if c.ImageTimeout <= 0 || c.MetadataTimeout <= 0 {
		return errors.New("超时必须大于0")
	}
	if c.MaxImageBytes <= 0 {
		return errors.New("图片大小上限必须大于0")
	}
	if _, ok := models.ParseLocale(c.Locale); !ok {
		return fmt.Errorf("不支持的语言 %q", c.Locale)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("未知的日志级别 %q", c.Log.Level)
	}
	return nil
}

// Addr 返回监听地址
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
