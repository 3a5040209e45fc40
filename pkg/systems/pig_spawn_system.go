package systems

import (
	"errors"

	"github.com/decker502/pigfarm/pkg/config"
	"github.com/decker502/pigfarm/pkg/ecs"
	"github.com/decker502/pigfarm/pkg/entities"
	"github.com/decker502/pigfarm/pkg/game"
	"github.com/decker502/pigfarm/pkg/input"
)

// PigSpawnSystem 处理购买小猪
type PigSpawnSystem struct {
	world    *game.WorldState
	notices  game.NoticeSink
	cost     float64 // 小猪价格
	lifetime float64 // 小猪存活时间(秒)
}

// NewPigSpawnSystem 创建小猪生成系统
// notices 可为 nil（不发送通知）
func NewPigSpawnSystem(world *game.WorldState, notices game.NoticeSink) *PigSpawnSystem {
	return &PigSpawnSystem{
		world:    world,
		notices:  notices,
		cost:     config.PigCost,
		lifetime: config.PigLifetime,
	}
}

// Update 只在购买键刚按下的那一帧尝试购买
// 按住不放不会重复购买
func (s *PigSpawnSystem) Update(in input.Snapshot) {
	if !in.JustPressed(input.ActionSpawn) {
		return
	}
	// 失败已经通过通知报告，本帧继续
	_, _ = s.Spawn()
}

// Spawn 在玩家位置购买一只小猪
//
// 返回：
//   - ecs.EntityID: 新小猪的ID；余额不足时为 ecs.InvalidEntity
//   - error: game.ErrNoPlayer 或 game.ErrAmbiguousPlayer，此时不修改任何状态
//
// 余额不足不是错误：返回 (ecs.InvalidEntity, nil) 并发出提示通知。
func (s *PigSpawnSystem) Spawn() (ecs.EntityID, error) {
	pos, err := s.world.PlayerPosition()
	if err != nil {
		kind := game.NoticeNoPlayer
		if errors.Is(err, game.ErrAmbiguousPlayer) {
			kind = game.NoticeAmbiguousPlayer
		}
		s.notify(game.Notice{Kind: kind, Balance: s.world.Balance(), Err: err})
		return ecs.InvalidEntity, err
	}

	if s.world.Balance() < s.cost {
		s.notify(game.Notice{Kind: game.NoticeInsufficientBalance, Balance: s.world.Balance()})
		return ecs.InvalidEntity, nil
	}

	// 扣款与创建同时完成
	s.world.Debit(s.cost)
	id := entities.NewPigEntity(s.world, pos, s.lifetime)

	s.notify(game.Notice{Kind: game.NoticePigSpawned, Balance: s.world.Balance(), Pig: id})
	return id, nil
}

func (s *PigSpawnSystem) notify(n game.Notice) {
	if s.notices != nil {
		s.notices.Notify(n)
	}
}
