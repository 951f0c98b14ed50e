// Package config 负责加载 config.toml 与环境变量覆盖。
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// FileName 配置文件名
const FileName = "config.toml"

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Report ReportConfig `toml:"report"`
	Export ExportConfig `toml:"export"`
	Upload UploadConfig `toml:"upload"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port        int  `toml:"port"`
	DevMode     bool `toml:"dev_mode"`
	OpenBrowser bool `toml:"open_browser"`
}

// ReportConfig 报告默认值
type ReportConfig struct {
	DefaultCompany string `toml:"default_company"`
	DefaultFormat  string `toml:"default_format"`
}

// ExportConfig 导出配置
type ExportConfig struct {
	DownloadTTLMinutes int `toml:"download_ttl_minutes"`
}

// UploadConfig 上传限制
type UploadConfig struct {
	MaxSizeMB int `toml:"max_size_mb"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string // 实际读取的文件，未找到时为空
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        20262,
			DevMode:     false,
			OpenBrowser: true,
		},
		Report: ReportConfig{
			DefaultCompany: "Your Company",
			DefaultFormat:  "xlsx",
		},
		Export: ExportConfig{DownloadTTLMinutes: 10},
		Upload: UploadConfig{MaxSizeMB: 16},
		Log:    LogConfig{Level: "info"},
	}
}

// DownloadTTL 下载链接有效期
func (c *AppConfig) DownloadTTL() time.Duration {
	return time.Duration(c.Export.DownloadTTLMinutes) * time.Minute
}

// MaxUploadBytes 上传文件大小上限
func (c *AppConfig) MaxUploadBytes() int64 {
	return int64(c.Upload.MaxSizeMB) << 20
}

// SlogLevel 解析日志级别
func (c *AppConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// Validate 校验配置取值
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Export.DownloadTTLMinutes <= 0 {
		errs = append(errs, errors.New("export.download_ttl_minutes must be positive"))
	}
	if c.Upload.MaxSizeMB <= 0 {
		errs = append(errs, errors.New("upload.max_size_mb must be positive"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverMap, ok := raw["server"].(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// SearchPaths 配置文件查找顺序：可执行文件目录，其次 XDG 配置目录
func SearchPaths() []string {
	var paths []string
	if exeDir, err := GetExeDir(); err == nil {
		paths = append(paths, filepath.Join(exeDir, FileName))
	} else {
		paths = append(paths, FileName)
	}
	if p, err := xdg.SearchConfigFile(filepath.Join("kpidash", FileName)); err == nil {
		paths = append(paths, p)
	}
	return paths
}

// LoadConfigWithInfo 按默认查找顺序加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	return LoadFrom(SearchPaths()...)
}

// LoadConfig 加载配置
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// LoadFrom 读取第一个存在的配置文件，再应用环境变量覆盖
func LoadFrom(paths ...string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, info, err
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("parse %s: %w", p, err)
		}
		info.Path = p
		info.PortSpecified = isPortSpecifiedInToml(data)
		break
	}

	// 环境变量覆盖
	if v := strings.TrimSpace(os.Getenv("KPIDASH_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, info, fmt.Errorf("KPIDASH_PORT: %w", err)
		}
		config.Server.Port = port
		info.PortSpecified = true
	}
	if v := strings.TrimSpace(os.Getenv("KPIDASH_LOG_LEVEL")); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv("KPIDASH_DEFAULT_COMPANY"); v != "" {
		config.Report.DefaultCompany = v
	}

	if err := config.Validate(); err != nil {
		return nil, info, err
	}
	return config, info, nil
}
