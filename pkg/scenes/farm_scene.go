package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/pigfarm/pkg/config"
	"github.com/decker502/pigfarm/pkg/game"
	"github.com/decker502/pigfarm/pkg/input"
	"github.com/decker502/pigfarm/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HUD 布局
const (
	HUDMarginX     = 4
	HUDMarginY     = 2
	HUDLineSpacing = 14
)

// FarmScene 农场场景
// 每个 tick 读取按键、推进一帧，并绘制玩家、小猪和余额
type FarmScene struct {
	driver          *systems.FrameDriver
	settingsManager *game.SettingsManager
	lastNotice      *game.Notice // 最近一条通知（HUD 显示）
	keys            KeyMap
	publisher       SnapshotPublisher // 观战推送（可为 nil）
	broadcastEvery  int
	focused         bool

	background  color.RGBA
	playerColor color.RGBA
	pigColor    color.RGBA
	playerSize  float64
	pigSize     float64

	// 以下默认使用 ebiten，测试时替换
	isKeyPressed func(ebiten.Key) bool
	isFocused    func() bool
	touchCount   func() int
}

// NewFarmScene 创建新的农场场景（新的一局：余额 100，一个玩家在原点）
//
// 参数：
//   - settings: 用户设置（按键绑定），可为 nil 使用默认绑定
//   - farmCfg: 农场配置（颜色、尺寸、推送间隔）
//   - sink: 额外的通知接收者（日志、音效），可为 nil
//   - publisher: 观战推送，可为 nil
func NewFarmScene(settings *game.SettingsManager, farmCfg *config.FarmConfig, sink game.NoticeSink, publisher SnapshotPublisher) *FarmScene {
	bindings, _ := game.ParseKeyBindings(game.DefaultKeyBindings())
	if settings != nil {
		bindings = settings.KeyBindings()
	}
	keys, err := ResolveKeyBindings(bindings)
	if err != nil {
		log.Printf("[FarmScene] Warning: %v (using default key bindings)", err)
		defaults, _ := game.ParseKeyBindings(game.DefaultKeyBindings())
		keys, _ = ResolveKeyBindings(defaults)
	}

	scene := &FarmScene{
		settingsManager: settings,
		keys:            keys,
		publisher:       publisher,
		broadcastEvery:  farmCfg.Spectate.BroadcastEvery,
		focused:         true,
		background:      config.HexColor(farmCfg.Render.Background),
		playerColor:     config.HexColor(farmCfg.Render.PlayerColor),
		pigColor:        config.HexColor(farmCfg.Render.PigColor),
		playerSize:      farmCfg.Render.PlayerSize,
		pigSize:         farmCfg.Render.PigSize,
		isKeyPressed:    ebiten.IsKeyPressed,
		isFocused:       ebiten.IsFocused,
		touchCount:      activeTouches,
	}

	hud := game.NoticeFunc(func(n game.Notice) {
		scene.lastNotice = &n
	})
	scene.driver = systems.NewFrameDriver(game.NewSession(), game.NoticeFanout{hud, sink})
	return scene
}

// Driver 返回帧驱动器
func (s *FarmScene) Driver() *systems.FrameDriver {
	return s.driver
}

// Update 推进一帧
func (s *FarmScene) Update(deltaTime float64) {
	var held input.ActionSet
	if s.isFocused() {
		s.focused = true
		held = s.keys.Held(s.isKeyPressed)
		// 触摸屏：按住屏幕等同于按住购买键
		if s.touchCount() > 0 {
			held = held.With(input.ActionSpawn)
		}
	} else if s.focused {
		// 失去焦点时收不到松开事件，清空输入历史
		s.focused = false
		s.driver.ResetInput()
		log.Printf("[FarmScene] Window lost focus, input reset")
	}

	s.driver.Step(deltaTime, held)
	s.publish()
}

// publish 每 broadcastEvery 帧推送一次快照
func (s *FarmScene) publish() {
	if s.publisher == nil || s.broadcastEvery <= 0 {
		return
	}
	world := s.driver.World()
	if world.Frame()%uint64(s.broadcastEvery) != 0 {
		return
	}
	s.publisher.Publish(world.Snapshot())
}

// Draw 绘制场景
// 世界原点在屏幕中心，Y 轴向上
func (s *FarmScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)

	bounds := screen.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	snap := s.driver.World().Snapshot()

	// 小猪在玩家下层
	for _, pig := range snap.Pigs {
		s.drawSquare(screen, w, h, pig.X, pig.Y, s.pigSize, s.pigColor)
	}
	for _, player := range snap.Players {
		s.drawSquare(screen, w, h, player.X, player.Y, s.playerSize, s.playerColor)
	}

	s.drawHUD(screen, snap)
}

// drawSquare 以世界坐标为中心绘制方块
func (s *FarmScene) drawSquare(screen *ebiten.Image, w, h, x, y, size float64, clr color.RGBA) {
	sx, sy := WorldToScreen(x, y, w, h)
	half := size / 2
	vector.DrawFilledRect(screen, float32(sx-half), float32(sy-half), float32(size), float32(size), clr, false)
}

// drawHUD 绘制余额和最近一条通知
func (s *FarmScene) drawHUD(screen *ebiten.Image, snap game.WorldSnapshot) {
	ebitenutil.DebugPrintAt(screen, HUDText(snap), HUDMarginX, HUDMarginY)
	if line := s.NoticeLine(); line != "" {
		ebitenutil.DebugPrintAt(screen, line, HUDMarginX, HUDMarginY+HUDLineSpacing)
	}
}

// NoticeLine 返回 HUD 第二行文本
// 只提示购买失败，买卖结果已经体现在余额上
func (s *FarmScene) NoticeLine() string {
	if s.lastNotice == nil {
		return ""
	}
	switch s.lastNotice.Kind {
	case game.NoticeInsufficientBalance:
		return "Not enough money"
	case game.NoticeNoPlayer, game.NoticeAmbiguousPlayer:
		return s.lastNotice.String()
	default:
		return ""
	}
}

// SaveOnExit 实现 game.Saveable，退出时保存用户设置
func (s *FarmScene) SaveOnExit() bool {
	if s.settingsManager == nil {
		return true
	}
	if err := s.settingsManager.Save(); err != nil {
		log.Printf("[FarmScene] Failed to save settings: %v", err)
		return false
	}
	return true
}

// activeTouches 当前触点数量
func activeTouches() int {
	return len(ebiten.AppendTouchIDs(nil))
}

// WorldToScreen 世界坐标转屏幕坐标
// 世界原点位于屏幕中心，世界 Y 轴向上，屏幕 Y 轴向下
func WorldToScreen(x, y, screenW, screenH float64) (float64, float64) {
	return screenW/2 + x, screenH/2 - y
}

// HUDText 返回 HUD 文本
func HUDText(snap game.WorldSnapshot) string {
	return fmt.Sprintf("Money: $%.2f  Pigs: %d", snap.Balance, len(snap.Pigs))
}
