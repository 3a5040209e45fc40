// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/pigfarm/pkg/config"
	"github.com/decker502/pigfarm/pkg/embedded"
	"github.com/decker502/pigfarm/pkg/game"
	"github.com/decker502/pigfarm/pkg/scenes"
	"github.com/decker502/pigfarm/pkg/spectate"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 农场配置文件路径，为空时使用嵌入的 data/farm.yaml（未嵌入则用默认值）
	ConfigPath string
	// SpectateAddr 观战服务监听地址（如 ":8080"），为空则不启动
	SpectateAddr string
	// NoSettings 不读写用户设置（只用默认值）
	NoSettings bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	farmConfig      *config.FarmConfig
	hub             *spectate.Hub
	cancel          context.CancelFunc

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	farmConfig, err := LoadFarmConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("农场配置加载失败: %w", err)
	}
	log.Printf("[Config] Farm config: window %dx%d, camera %.0fx%.0f",
		farmConfig.Window.Width, farmConfig.Window.Height, farmConfig.Camera.MinWidth, farmConfig.Camera.MinHeight)

	// 用户设置（gdata 不可用时降级为内存设置）
	var settingsManager *game.SettingsManager
	if cfg.NoSettings {
		settingsManager, _ = game.NewSettingsManager(nil)
	} else {
		settingsManager, _ = game.NewSettingsManager(game.OpenSettingsStorage(game.SettingsAppName))
	}

	// 音频：提示音
	audioContext := audio.NewContext(game.AudioSampleRate)
	audioManager := game.NewAudioManager(audioContext, settingsManager)
	log.Printf("[App] AudioManager initialized")

	a := &App{
		settingsManager: settingsManager,
		farmConfig:      farmConfig,
	}

	// 观战服务
	var publisher game.SnapshotPublisher
	if cfg.SpectateAddr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		a.hub = spectate.NewHub()
		a.cancel = cancel
		publisher = a.hub
		go func() {
			if err := a.hub.Serve(ctx, cfg.SpectateAddr); err != nil {
				log.Printf("[App] Spectate server stopped: %v", err)
			}
		}()
	}

	sinks := game.NoticeFanout{game.LogNoticeSink{}, audioManager}

	// 创建场景管理器，每次 Restart 开始新的一局
	a.sceneManager = game.NewSceneManager()
	a.sceneManager.SetSceneFactory(func() game.Scene {
		return scenes.NewFarmScene(settingsManager, farmConfig, sinks, publisher)
	})
	if !a.sceneManager.Restart() {
		return nil, fmt.Errorf("无法创建农场场景")
	}

	return a, nil
}

// LoadFarmConfig 按优先级加载农场配置：
// 指定文件 > 嵌入的 data/farm.yaml > 内置默认值
func LoadFarmConfig(path string) (*config.FarmConfig, error) {
	if path != "" {
		return config.LoadFarmConfig(path)
	}
	if embedded.IsInitialized() {
		data, err := embedded.ReadFile(config.FarmConfigPath)
		if err != nil {
			return nil, err
		}
		return config.ParseFarmConfig(data)
	}
	return config.DefaultFarmConfig(), nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.farmConfig.Window.Width, a.farmConfig.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.farmConfig.Window.Width, a.farmConfig.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// toggleFullscreen 切换全屏并记录到用户设置
func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settingsManager.SetFullscreen(ebiten.IsFullscreen())
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	// 像素风方块，使用最近邻保持边缘清晰
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 保持窗口宽高比，且至少显示摄像机配置的世界区域
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := a.farmConfig.Camera.Viewport(outsideWidth, outsideHeight)
	return int(w), int(h)
}

// FarmConfig 返回使用中的农场配置
func (a *App) FarmConfig() *config.FarmConfig {
	return a.farmConfig
}

// Settings 返回用户设置
func (a *App) Settings() *game.SettingsManager {
	return a.settingsManager
}

// Close 退出时保存设置并停止观战服务
func (a *App) Close() {
	if !a.sceneManager.SaveOnExit() {
		log.Printf("[App] Settings were not saved")
	}
	if a.cancel != nil {
		a.cancel()
		<-a.hub.Done()
	}
}
