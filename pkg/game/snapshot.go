package game

import (
	"github.com/decker502/pigfarm/pkg/components"
	"github.com/decker502/pigfarm/pkg/ecs"
)

// WorldSnapshot 提供给渲染端和观战端的只读世界视图
type WorldSnapshot struct {
	Frame   uint64       `json:"frame"`
	Balance float64      `json:"balance"`
	Players []PlayerView `json:"players"`
	Pigs    []PigView    `json:"pigs"`
}

// PlayerView 玩家视图
type PlayerView struct {
	ID ecs.EntityID `json:"id"`
	X  float64      `json:"x"`
	Y  float64      `json:"y"`
}

// PigView 小猪视图
type PigView struct {
	ID        ecs.EntityID `json:"id"`
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	Remaining float64      `json:"remaining"` // 剩余存活时间(秒)
}

// Snapshot 复制当前世界状态
// 返回值不引用世界内部数据，可以安全地交给其他 goroutine
func (ws *WorldState) Snapshot() WorldSnapshot {
	snap := WorldSnapshot{
		Frame:   ws.frame,
		Balance: ws.balance,
		Players: make([]PlayerView, 0, ws.players.Len()),
		Pigs:    make([]PigView, 0, ws.pigs.Len()),
	}

	ws.players.Each(func(id ecs.EntityID, p *components.PlayerComponent) {
		snap.Players = append(snap.Players, PlayerView{ID: id, X: p.Position.X, Y: p.Position.Y})
	})
	ws.pigs.Each(func(id ecs.EntityID, p *components.PigComponent) {
		snap.Pigs = append(snap.Pigs, PigView{
			ID:        id,
			X:         p.Position.X,
			Y:         p.Position.Y,
			Remaining: p.Lifetime.Remaining(),
		})
	})

	return snap
}

// SnapshotPublisher 接收世界快照（观战推送）
type SnapshotPublisher interface {
	Publish(snapshot WorldSnapshot)
}
