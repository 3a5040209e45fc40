package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// FarmConfigPath 是嵌入资源中农场配置文件的路径
const FarmConfigPath = "data/farm.yaml"

// FarmConfig 农场场景配置
type FarmConfig struct {
	Window   WindowConfig   `yaml:"window"`   // 窗口设置
	Camera   CameraConfig   `yaml:"camera"`   // 摄像机设置
	Render   RenderConfig   `yaml:"render"`   // 绘制设置
	Spectate SpectateConfig `yaml:"spectate"` // 观战推送设置
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width     int    `yaml:"width"`     // 窗口宽度(像素)
	Height    int    `yaml:"height"`    // 窗口高度(像素)
	Title     string `yaml:"title"`     // 窗口标题
	Resizable bool   `yaml:"resizable"` // 是否允许调整窗口大小
}

// CameraConfig 摄像机配置
// 逻辑屏幕保持窗口宽高比，并保证至少显示 MinWidth x MinHeight 的世界区域
type CameraConfig struct {
	MinWidth  float64 `yaml:"minWidth"`
	MinHeight float64 `yaml:"minHeight"`
}

// RenderConfig 绘制配置
type RenderConfig struct {
	Background  string  `yaml:"background"`  // 背景颜色 "#rrggbb"
	PlayerColor string  `yaml:"playerColor"` // 玩家颜色
	PigColor    string  `yaml:"pigColor"`    // 小猪颜色
	PlayerSize  float64 `yaml:"playerSize"`  // 玩家方块边长(世界单位)
	PigSize     float64 `yaml:"pigSize"`     // 小猪方块边长(世界单位)
}

// SpectateConfig 观战推送配置
type SpectateConfig struct {
	BroadcastEvery int `yaml:"broadcastEvery"` // 推送间隔(帧)
}

// DefaultFarmConfig 返回默认配置（与 data/farm.yaml 一致）
func DefaultFarmConfig() *FarmConfig {
	return &FarmConfig{
		Window: WindowConfig{
			Width:  640,
			Height: 460,
			Title:  "Pig Farm",
		},
		Camera: CameraConfig{
			MinWidth:  256,
			MinHeight: 144,
		},
		Render: RenderConfig{
			Background:  "#ffffff",
			PlayerColor: "#3a6ea5",
			PigColor:    "#f4a7b9",
			PlayerSize:  16,
			PigSize:     12,
		},
		Spectate: SpectateConfig{
			BroadcastEvery: 6,
		},
	}
}

// LoadFarmConfig 从 YAML 文件加载农场配置
func LoadFarmConfig(filePath string) (*FarmConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read farm config file: %w", err)
	}
	return ParseFarmConfig(data)
}

// ParseFarmConfig 解析 YAML 数据
// 未出现的字段保留默认值
func ParseFarmConfig(data []byte) (*FarmConfig, error) {
	config := DefaultFarmConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse farm config YAML: %w", err)
	}

	if err := validateFarmConfig(config); err != nil {
		return nil, fmt.Errorf("invalid farm config: %w", err)
	}

	return config, nil
}

// validateFarmConfig 验证配置的有效性
func validateFarmConfig(config *FarmConfig) error {
	if config.Window.Width <= 0 || config.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", config.Window.Width, config.Window.Height)
	}

	if config.Camera.MinWidth <= 0 || config.Camera.MinHeight <= 0 {
		return fmt.Errorf("camera min size must be positive, got %.1fx%.1f", config.Camera.MinWidth, config.Camera.MinHeight)
	}

	for name, value := range map[string]string{
		"background":  config.Render.Background,
		"playerColor": config.Render.PlayerColor,
		"pigColor":    config.Render.PigColor,
	} {
		if _, err := ParseHexColor(value); err != nil {
			return fmt.Errorf("render.%s: %w", name, err)
		}
	}

	if config.Render.PlayerSize <= 0 || config.Render.PigSize <= 0 {
		return fmt.Errorf("render sizes must be positive")
	}

	if config.Spectate.BroadcastEvery < 1 {
		return fmt.Errorf("spectate.broadcastEvery must be >= 1, got %d", config.Spectate.BroadcastEvery)
	}

	return nil
}

// Viewport 计算逻辑屏幕尺寸
//
// 参数：
//   - outsideWidth, outsideHeight: 实际窗口尺寸
//
// 返回：
//   - width, height: 逻辑屏幕尺寸（保持窗口宽高比，且不小于最小可视区域）
func (c CameraConfig) Viewport(outsideWidth, outsideHeight int) (float64, float64) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return c.MinWidth, c.MinHeight
	}

	aspect := float64(outsideWidth) / float64(outsideHeight)
	if aspect > c.MinWidth/c.MinHeight {
		// 窗口更宽：高度固定为最小高度，宽度随比例扩展
		return c.MinHeight * aspect, c.MinHeight
	}
	// 窗口更高：宽度固定为最小宽度
	return c.MinWidth, c.MinWidth / aspect
}

// ParseHexColor 解析 "#rrggbb" 格式的颜色
func ParseHexColor(s string) (color.RGBA, error) {
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("color must be in #rrggbb format, got %q", s)
	}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// HexColor 解析已经过验证的颜色，失败时返回黑色
func HexColor(s string) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return c
}
