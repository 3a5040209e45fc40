package systems

import (
	"github.com/decker502/pigfarm/pkg/config"
	"github.com/decker502/pigfarm/pkg/game"
)

// LifetimeSystem 管理小猪的生命周期
// 到期的小猪在同一帧内卖出（加钱）并删除
type LifetimeSystem struct {
	world   *game.WorldState
	notices game.NoticeSink
	reward  float64 // 卖出收益
}

// NewLifetimeSystem 创建一个新的生命周期系统
// notices 可为 nil（不发送通知）
func NewLifetimeSystem(world *game.WorldState, notices game.NoticeSink) *LifetimeSystem {
	return &LifetimeSystem{
		world:   world,
		notices: notices,
		reward:  config.PigReward,
	}
}

// Update 更新所有小猪的生命周期
// 本帧刚买下的小猪（Fresh）只清除标记，从下一次 Update 开始计时
// 返回本帧卖出的小猪数量
func (s *LifetimeSystem) Update(deltaTime float64) int {
	pigs := s.world.Pigs()

	for _, id := range pigs.IDs() {
		pig, ok := pigs.Get(id)
		if !ok {
			continue
		}
		if pig.Fresh {
			pig.Fresh = false
			continue
		}

		// 未到期的小猪留到以后的帧
		if !pig.Lifetime.Tick(deltaTime) {
			continue
		}

		// 到期：标记待删除，并立即结算
		pigs.DestroyEntity(id)
		s.world.Credit(s.reward)
		if s.notices != nil {
			s.notices.Notify(game.Notice{Kind: game.NoticePigSold, Balance: s.world.Balance(), Pig: id})
		}
	}

	// 同一帧内删除所有已结算的小猪
	return pigs.RemoveMarkedEntities()
}
