package scenes

import (
	"fmt"

	"github.com/decker502/pigfarm/pkg/input"
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyMap 动作到 ebiten 按键的映射
type KeyMap map[input.Action][]ebiten.Key

// ResolveKeyBindings 把设置中的按键名解析为 ebiten.Key
// 按键名使用 ebiten 的命名（"W"、"ArrowUp"、"Space"、"Enter" 等）
func ResolveKeyBindings(bindings map[input.Action][]string) (KeyMap, error) {
	keys := make(KeyMap, len(bindings))
	for action, names := range bindings {
		for _, name := range names {
			var key ebiten.Key
			if err := key.UnmarshalText([]byte(name)); err != nil {
				return nil, fmt.Errorf("action %s: unknown key %q: %w", action, name, err)
			}
			keys[action] = append(keys[action], key)
		}
	}
	return keys, nil
}

// Held 返回当前按住的动作集合
// isPressed 通常是 ebiten.IsKeyPressed，测试时可替换
func (m KeyMap) Held(isPressed func(ebiten.Key) bool) input.ActionSet {
	var held input.ActionSet
	for _, action := range input.AllActions() {
		for _, key := range m[action] {
			if isPressed(key) {
				held = held.With(action)
				break
			}
		}
	}
	return held
}
