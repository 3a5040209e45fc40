package systems

import (
	"log"

	"github.com/decker502/pigfarm/pkg/game"
	"github.com/decker502/pigfarm/pkg/input"
)

// FrameDriver 每帧按固定顺序运行各个系统：移动 → 购买 → 生命周期
//
// 所有系统在同一个 goroutine 中同步执行，每个系统运行完毕后才开始下一个。
// 任何系统的失败都不会中断帧循环。
type FrameDriver struct {
	world    *game.WorldState
	tracker  *input.Tracker
	movement *MovementSystem
	spawn    *PigSpawnSystem
	lifetime *LifetimeSystem
}

// NewFrameDriver 为世界创建帧驱动器
// notices 接收所有系统发出的通知，可为 nil
func NewFrameDriver(world *game.WorldState, notices game.NoticeSink) *FrameDriver {
	log.Printf("[FrameDriver] Initialized: balance=%.2f, players=%d", world.Balance(), world.Players().Len())
	return &FrameDriver{
		world:    world,
		tracker:  input.NewTracker(),
		movement: NewMovementSystem(world),
		spawn:    NewPigSpawnSystem(world, notices),
		lifetime: NewLifetimeSystem(world, notices),
	}
}

// World 返回驱动的世界
func (d *FrameDriver) World() *game.WorldState {
	return d.world
}

// Step 推进一帧
//
// 参数：
//   - deltaTime: 距离上一帧的时间(秒)，必须大于0
//   - held: 本帧按住的动作
//
// 返回：
//   - input.Snapshot: 本帧使用的输入快照（包含上升沿）
func (d *FrameDriver) Step(deltaTime float64, held input.ActionSet) input.Snapshot {
	if deltaTime <= 0 {
		log.Printf("[FrameDriver] WARNING: skipping frame with non-positive deltaTime %v", deltaTime)
		return input.NewSnapshot(held, 0)
	}

	snap := d.tracker.Advance(held)

	d.movement.Update(deltaTime, snap)
	d.spawn.Update(snap)
	d.lifetime.Update(deltaTime)

	d.world.AdvanceFrame()
	return snap
}

// ResetInput 清除输入历史（窗口失去焦点时调用）
func (d *FrameDriver) ResetInput() {
	d.tracker.Reset()
}
