// Package config 加载服务与引擎配置（YAML）。
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/retailrec/cf"
	"github.com/rushteam/retailrec/mba"
	"github.com/rushteam/retailrec/recommend"
)

// Config 是进程级配置。零值字段在 Load 时回填默认值。
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
		// MaxResults 是响应条数上限（传输层截断），<= 0 表示不限制
		MaxResults int `yaml:"max_results"`
		// MaxCartItems 是购物车去重后允许的最大物品数：
		// 子集枚举是 O(2^n)，边界必须设限
		MaxCartItems int `yaml:"max_cart_items"`
	} `yaml:"server"`

	Data struct {
		// Path 是训练集 CSV 路径
		Path string `yaml:"path"`
	} `yaml:"data"`

	Mining struct {
		MinSupport float64 `yaml:"min_support"`
		MinLift    float64 `yaml:"min_lift"`
	} `yaml:"mining"`

	Report struct {
		MinSupport    float64 `yaml:"min_support"`
		MinConfidence float64 `yaml:"min_confidence"`
	} `yaml:"report"`

	Blend struct {
		AlphaHeavy     float64 `yaml:"alpha_heavy"`
		AlphaLight     float64 `yaml:"alpha_light"`
		HeavyThreshold int     `yaml:"heavy_threshold"`
		TopN           int     `yaml:"top_n"`
	} `yaml:"blend"`

	Redis struct {
		// Addr 为空时不接入 Redis，使用内存存储
		Addr string `yaml:"addr"`
		DB   int    `yaml:"db"`
	} `yaml:"redis"`

	Filter struct {
		// Blocklist 是内存屏蔽名单
		Blocklist []string `yaml:"blocklist"`
		// BlocklistKey 是存储中的名单 key（配合 Redis 使用）
		BlocklistKey string `yaml:"blocklist_key"`
		// Expr 是 CEL 剔除表达式，空串表示不启用
		Expr string `yaml:"expr"`
	} `yaml:"filter"`
}

// Default 返回带默认值的配置。
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Addr = ":8000"
	cfg.Server.MaxCartItems = 20
	cfg.Data.Path = "data/raw/train.csv"
	cfg.Mining.MinSupport = mba.DefaultOptions().MinSupport
	cfg.Mining.MinLift = mba.DefaultOptions().MinThreshold
	cfg.Report.MinSupport = mba.ReportOptions().MinSupport
	cfg.Report.MinConfidence = mba.ReportOptions().MinThreshold
	cfg.Blend.AlphaHeavy = recommend.DefaultAlphaHeavy
	cfg.Blend.AlphaLight = recommend.DefaultAlphaLight
	cfg.Blend.HeavyThreshold = recommend.DefaultHeavyThreshold
	cfg.Blend.TopN = cf.DefaultTopN
	return cfg
}

// Load 读取 YAML 配置文件，未设置的字段保留默认值。
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MiningOptions 返回推荐路径的规则挖掘参数。
func (c *Config) MiningOptions() mba.Options {
	return mba.Options{
		MinSupport:   c.Mining.MinSupport,
		Metric:       mba.MetricLift,
		MinThreshold: c.Mining.MinLift,
	}
}

// ReportingOptions 返回离线分析路径的规则挖掘参数。
func (c *Config) ReportingOptions() mba.Options {
	return mba.Options{
		MinSupport:   c.Report.MinSupport,
		Metric:       mba.MetricConfidence,
		MinThreshold: c.Report.MinConfidence,
	}
}
