package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dushixiang/ejpatch/internal/patches"
	"github.com/go-errors/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const DefaultFile = "ejpatch.yaml"

type Config struct {
	// Root 前端项目根目录，补丁路径都相对于它
	Root    string                 `yaml:"root" validate:"required"`
	Log     LogConfig              `yaml:"log"`
	Patches map[string]PatchConfig `yaml:"patches" validate:"dive"`
}

type LogConfig struct {
	Level      string `yaml:"level" validate:"oneof=debug info warn error"`
	Filename   string `yaml:"filename"`
	MaxSize    int    `yaml:"max-size" validate:"gte=0"`
	MaxBackups int    `yaml:"max-backups" validate:"gte=0"`
	MaxAge     int    `yaml:"max-age" validate:"gte=0"`
	Compress   bool   `yaml:"compress"`
}

type PatchConfig struct {
	Path    string `yaml:"path" validate:"required"`
	Enabled *bool  `yaml:"enabled"`
}

// IsEnabled 未配置时默认启用
func (p PatchConfig) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// Default 默认配置，补丁路径取注册表中的默认值
func Default() *Config {
	c := &Config{
		Root: ".",
		Log: LogConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		},
		Patches: map[string]PatchConfig{},
	}
	for _, p := range patches.All() {
		c.Patches[p.Name] = PatchConfig{Path: p.DefaultPath}
	}
	return c
}

// Load 读取配置文件并与默认配置合并。文件不存在且未显式指定时使用默认配置
func Load(fs afero.Fs, path string) (*Config, error) {
	c := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return c, c.Validate()
		}
		return nil, errors.WrapPrefix(err, "读取配置文件失败", 0)
	}

	// 直接解码到默认配置上，文件中出现的字段（包括 0 和 false）覆盖默认值；
	// patches 是 map，yaml 会为每个条目重新解码，需单独合并以保留默认路径
	defaults := c.Patches
	c.Patches = nil
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.WrapPrefix(err, "解析配置文件失败", 0)
	}
	file := c.Patches
	c.Patches = defaults
	c.mergePatches(file)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) mergePatches(patches map[string]PatchConfig) {
	for name, p := range patches {
		current := c.Patches[name]
		if p.Path != "" {
			current.Path = p.Path
		}
		if p.Enabled != nil {
			current.Enabled = p.Enabled
		}
		c.Patches[name] = current
	}
}

var validate = validator.New()

// Validate 校验配置：字段约束、补丁名称必须已注册、启用的补丁不能指向同一文件
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.WrapPrefix(err, "配置校验失败", 0)
	}

	owners := make(map[string]string)
	for name, p := range c.Patches {
		if _, ok := patches.Lookup(name); !ok {
			return errors.Errorf("配置校验失败: 未知补丁 %s", name)
		}
		if !p.IsEnabled() {
			continue
		}
		key := filepath.Clean(p.Path)
		if other, ok := owners[key]; ok {
			first, second := other, name
			if second < first {
				first, second = second, first
			}
			return errors.Errorf("配置校验失败: 补丁 %s 与 %s 指向同一文件 %s", first, second, key)
		}
		owners[key] = name
	}
	return nil
}

// Patch 返回补丁配置
func (c *Config) Patch(name string) (PatchConfig, error) {
	p, ok := c.Patches[name]
	if !ok {
		return PatchConfig{}, errors.Errorf("未配置补丁 %s", name)
	}
	return p, nil
}

// SetLevel 命令行覆盖日志级别
func (c *Config) SetLevel(level string) {
	if level = strings.TrimSpace(level); level != "" {
		c.Log.Level = strings.ToLower(level)
	}
}
