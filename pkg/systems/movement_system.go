package systems

import (
	"github.com/decker502/pigfarm/pkg/components"
	"github.com/decker502/pigfarm/pkg/ecs"
	"github.com/decker502/pigfarm/pkg/game"
	"github.com/decker502/pigfarm/pkg/input"
)

// MovementSystem 根据方向输入移动玩家
type MovementSystem struct {
	world *game.WorldState
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(world *game.WorldState) *MovementSystem {
	return &MovementSystem{world: world}
}

// Update 按住的每个方向独立累加 ±speed*deltaTime
//
// 斜向移动时两个轴分别累加，不做归一化（斜向位移比单方向更大）。
// 没有按键时不改变位置。
func (s *MovementSystem) Update(deltaTime float64, in input.Snapshot) {
	s.world.Players().Each(func(_ ecs.EntityID, p *components.PlayerComponent) {
		step := p.Speed * deltaTime

		if in.Pressed(input.ActionMoveUp) {
			p.Position.Y += step
		}
		if in.Pressed(input.ActionMoveDown) {
			p.Position.Y -= step
		}
		if in.Pressed(input.ActionMoveRight) {
			p.Position.X += step
		}
		if in.Pressed(input.ActionMoveLeft) {
			p.Position.X -= step
		}
	})
}
