package entities

import (
	"github.com/decker502/pigfarm/pkg/components"
	"github.com/decker502/pigfarm/pkg/ecs"
	"github.com/decker502/pigfarm/pkg/game"
)

// NewPigEntity 创建一只小猪实体
// 参数:
//   - world: 世界状态
//   - pos: 生成位置(玩家当前位置)
//   - lifetime: 存活时间(秒)
//
// 新小猪带 Fresh 标记，生命周期系统从下一帧开始计时。
//
// 返回: 创建的实体ID
func NewPigEntity(world *game.WorldState, pos components.PositionComponent, lifetime float64) ecs.EntityID {
	return world.InsertPig(&components.PigComponent{
		Position: pos,
		Lifetime: components.NewLifetimeComponent(lifetime),
		Fresh:    true,
	})
}

// NewPlayerEntity 创建玩家实体
// 参数:
//   - world: 世界状态
//   - x, y: 初始位置
//   - speed: 移动速度(单位/秒)
//
// 返回: 创建的实体ID
func NewPlayerEntity(world *game.WorldState, x, y, speed float64) ecs.EntityID {
	return world.AddPlayer(&components.PlayerComponent{
		Position: components.PositionComponent{X: x, Y: y},
		Speed:    speed,
	})
}
