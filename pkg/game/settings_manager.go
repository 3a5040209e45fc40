package game

import (
	"fmt"
	"log"
	"sort"

	"github.com/decker502/pigfarm/pkg/input"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 用户设置
// 只保存偏好（音效、显示、按键），不保存任何游戏进度
type GameSettings struct {
	// 音频设置
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0
	SoundEnabled bool    `yaml:"soundEnabled"` // 音效开关

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏

	// 按键绑定：动作名 -> 按键名列表（如 "move-up": ["W", "ArrowUp"]）
	// 按键名由各前端解释（ebiten 按键名 / 终端字符）
	KeyBindings map[string][]string `yaml:"keyBindings"`
}

// DefaultKeyBindings 返回默认按键绑定
func DefaultKeyBindings() map[string][]string {
	return map[string][]string{
		input.ActionMoveUp.String():    {"W", "ArrowUp"},
		input.ActionMoveDown.String():  {"S", "ArrowDown"},
		input.ActionMoveLeft.String():  {"A", "ArrowLeft"},
		input.ActionMoveRight.String(): {"D", "ArrowRight"},
		input.ActionSpawn.String():     {"Space"},
	}
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundVolume:  0.8,
		SoundEnabled: true,
		Fullscreen:   false,
		KeyBindings:  DefaultKeyBindings(),
	}
}

// SettingsManager 设置管理器
// 负责用户设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GameSettings  // 当前设置
}

// 存储路径常量
const (
	// SettingsAppName 是 gdata 存储使用的应用名
	SettingsAppName = "pigfarm"

	settingsObject   = "settings"
	settingsProperty = "global"
)

// OpenSettingsStorage 打开 gdata 存储
// 失败时返回 nil（降级模式），游戏仍可运行
func OpenSettingsStorage(appName string) *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		return nil
	}
	return manager
}

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 如果加载设置失败返回错误（不影响创建）
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
//
// 返回：
//   - error: 如果反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	// 检查设置文件是否存在
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 以默认值为底，缺失的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if _, err := ParseKeyBindings(loaded.KeyBindings); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("invalid key bindings: %w", err)
	}

	loaded.SoundVolume = clampVolume(loaded.SoundVolume)
	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetSoundVolume 设置音效音量
//
// 音量值会被限制在 0.0 ~ 1.0 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 设置音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetKeyBinding 设置某个动作的按键
//
// 参数：
//   - action: 动作
//   - keys: 按键名列表，为空时恢复该动作的默认绑定
func (sm *SettingsManager) SetKeyBinding(action input.Action, keys []string) {
	if sm.settings.KeyBindings == nil {
		sm.settings.KeyBindings = DefaultKeyBindings()
	}
	if len(keys) == 0 {
		sm.settings.KeyBindings[action.String()] = DefaultKeyBindings()[action.String()]
		return
	}
	sm.settings.KeyBindings[action.String()] = append([]string(nil), keys...)
}

// KeyBindings 返回按动作索引的按键绑定
// 设置中缺少的动作使用默认绑定
func (sm *SettingsManager) KeyBindings() map[input.Action][]string {
	bindings, err := ParseKeyBindings(sm.settings.KeyBindings)
	if err != nil {
		// Load 已经校验过，这里只会在运行时写入了非法动作名时发生
		log.Printf("[SettingsManager] Warning: %v (using defaults)", err)
		bindings, _ = ParseKeyBindings(DefaultKeyBindings())
	}
	return bindings
}

// ParseKeyBindings 将动作名解析为 input.Action，缺失的动作补默认值
func ParseKeyBindings(raw map[string][]string) (map[input.Action][]string, error) {
	result := make(map[input.Action][]string, len(raw))

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action, err := input.ParseAction(name)
		if err != nil {
			return nil, err
		}
		result[action] = raw[name]
	}

	defaults := DefaultKeyBindings()
	for _, action := range input.AllActions() {
		if len(result[action]) == 0 {
			result[action] = defaults[action.String()]
		}
	}
	return result, nil
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
