package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("写入配置失败：%v", err)
	}
	return p
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if cfg.Port != 3000 || cfg.Upstream != UpstreamStage {
		t.Fatalf("默认值不符：%+v", cfg)
	}
	if cfg.ImageTimeout != 10*time.Second || cfg.MetadataTimeout != 15*time.Second {
		t.Fatalf("默认超时不符：%v/%v", cfg.ImageTimeout, cfg.MetadataTimeout)
	}
	if cfg.Region != "cn_gf01" {
		t.Fatalf("默认区服不符：%q", cfg.Region)
	}
}

func TestLoad_YAML(t *testing.T) {
	p := writeYAML(t, `
端口: 8080
上游: Miyoushe
米游社地址: http://127.0.0.1:9000
元数据超时: 5s
语言: en
日志:
  级别: debug
  禁用颜色: true
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if cfg.Port != 8080 || cfg.Upstream != UpstreamMiyoushe || cfg.MiyousheHost != "http://127.0.0.1:9000" {
		t.Fatalf("YAML 未生效：%+v", cfg)
	}
	if cfg.MetadataTimeout != 5*time.Second {
		t.Fatalf("超时未生效：%v", cfg.MetadataTimeout)
	}
	if cfg.ImageTimeout != 10*time.Second {
		t.Fatalf("未出现的字段应保留默认值：%v", cfg.ImageTimeout)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.NoColor || cfg.Locale != "en" {
		t.Fatalf("嵌套字段未生效：%+v", cfg)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	p := writeYAML(t, "端口: 8080\n上游: stage\n")
	t.Setenv("LEVEL_PROXY_PORT", "9090")
	t.Setenv("LEVEL_PROXY_UPSTREAM", "miyoushe")
	t.Setenv("LEVEL_PROXY_IMAGE_TIMEOUT", "3s")

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if cfg.Port != 9090 || cfg.Upstream != UpstreamMiyoushe || cfg.ImageTimeout != 3*time.Second {
		t.Fatalf("环境变量应覆盖文件：%+v", cfg)
	}
}

func TestLoad_EnvParseError(t *testing.T) {
	t.Setenv("LEVEL_PROXY_PORT", "not-an-int")
	_, err := Load("")
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("期望 parse env 错误，实际 %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	p := writeYAML(t, "端口: [1, 2\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("非法 YAML 应报错")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*Config)
	}{
		{"未知上游", func(c *Config) { c.Upstream = "bilibili" }},
		{"端口越界", func(c *Config) { c.Port = 70000 }},
		{"超时为0", func(c *Config) { c.ImageTimeout = 0 }},
		{"图片上限为0", func(c *Config) { c.MaxImageBytes = 0 }},
		{"不支持的语言", func(c *Config) { c.Locale = "!!" }},
		{"日志级别", func(c *Config) { c.Log.Level = "trace" }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.modify(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s：期望校验失败", tc.name)
		}
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("默认配置应通过校验：%v", err)
	}
}
