package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Saveable 是一个可选接口，场景在程序退出时保存用户设置
//
// 注意：只保存偏好设置，农场状态（余额、小猪）不跨进程保留
type Saveable interface {
	// SaveOnExit 在场景退出时保存
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}
