// Package config 从 YAML 和命令行参数加载 texatlas 配置
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/disintegration/imaging"
	"gopkg.in/yaml.v3"

	"texatlas/atlas"
	"texatlas/rectpack"
)

// ErrInvalidConfig 由 Validate 返回
var ErrInvalidConfig = errors.New("invalid config")

// AtlasSizes 可选的图集最大尺寸
var AtlasSizes = []int{256, 512, 1024, 2048, 4096, 8192}

// Config 命令行工具的全部配置
type Config struct {
	Pack    PackConfig    `yaml:"pack"`
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// PackConfig 打包配置
type PackConfig struct {
	MaxSize    int    `yaml:"max_size"`
	Padding    int    `yaml:"padding"`
	Algorithm  string `yaml:"algorithm"`
	Variant    string `yaml:"variant"`
	Order      string `yaml:"order"` // height, area, perimeter, diff, maxside
	PowerOfTwo bool   `yaml:"power_of_two"`
	Origin     string `yaml:"origin"`
}

// InputConfig 贴图输入配置
type InputConfig struct {
	Dir  string `yaml:"dir"`
	Sort bool   `yaml:"sort"` // 按文件名自然排序，否则保持目录顺序
}

// OutputConfig 图集与元数据输出配置
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Name   string `yaml:"name"`
	Format string `yaml:"format"` // 图集图片扩展名: png, jpg, bmp, tif
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Pack: PackConfig{
			MaxSize:    2048,
			Padding:    atlas.DefaultPadding,
			Algorithm:  "shelf",
			PowerOfTwo: true,
			Origin:     atlas.BottomLeft.String(),
		},
		Input: InputConfig{
			Dir:  "textures",
			Sort: true,
		},
		Output: OutputConfig{
			Dir:    "output",
			Name:   "atlas",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load 在默认配置上读取配置文件，路径为空时返回默认配置
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// SaveTo 以 YAML 写出配置，自动创建父目录
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate 检查打包器无法使用的配置值
func (c *Config) Validate() error {
	if !slices.Contains(AtlasSizes, c.Pack.MaxSize) {
		return fmt.Errorf("%w: max_size %d not in %v", ErrInvalidConfig, c.Pack.MaxSize, AtlasSizes)
	}
	if c.Pack.Padding < 0 {
		return fmt.Errorf("%w: padding %d", ErrInvalidConfig, c.Pack.Padding)
	}
	if _, err := c.Heuristic(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := rectpack.ResolveSort(c.Pack.Order); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := atlas.ParseOrigin(c.Pack.Origin); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Output.Name == "" {
		return fmt.Errorf("%w: empty output name", ErrInvalidConfig)
	}
	if _, err := imaging.FormatFromExtension(c.Output.Format); err != nil {
		return fmt.Errorf("%w: output format %q", ErrInvalidConfig, c.Output.Format)
	}
	return nil
}

// AtlasFile 图集文件名，如 "atlas.png"
func (c *Config) AtlasFile() string {
	return c.Output.Name + "." + c.Output.Format
}

// ManifestFile 元数据文件名，如 "atlas.json"
func (c *Config) ManifestFile() string {
	return c.Output.Name + ".json"
}

// Heuristic 解析配置的算法和变体
func (c *Config) Heuristic() (rectpack.Heuristic, error) {
	return rectpack.ResolveAlgorithm(c.Pack.Algorithm, c.Pack.Variant)
}

// AtlasOptions 把打包配置转换为打包参数
func (c *Config) AtlasOptions() (atlas.Options, error) {
	if err := c.Validate(); err != nil {
		return atlas.Options{}, err
	}
	heuristic, _ := c.Heuristic()
	order, _ := rectpack.ResolveSort(c.Pack.Order)
	origin, _ := atlas.ParseOrigin(c.Pack.Origin)
	opts := atlas.DefaultOptions(c.Pack.MaxSize, c.Pack.Padding)
	opts.Heuristic = heuristic
	opts.Sort = order
	opts.PowerOfTwo = c.Pack.PowerOfTwo
	opts.Origin = origin
	return opts, nil
}
