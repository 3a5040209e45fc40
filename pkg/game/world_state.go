package game

import (
	"errors"

	"github.com/decker502/pigfarm/pkg/components"
	"github.com/decker502/pigfarm/pkg/config"
	"github.com/decker502/pigfarm/pkg/ecs"
)

var (
	// ErrNoPlayer 世界中没有玩家
	ErrNoPlayer = errors.New("no player")
	// ErrAmbiguousPlayer 世界中有多个玩家
	ErrAmbiguousPlayer = errors.New("more than one player")
)

// WorldState 存储一个会话的全部游戏状态
//
// 它只负责存储，不做任何业务校验：
// 余额是否足够、玩家是否唯一等判断都由各个系统完成。
// WorldState 通过指针显式传入每个系统，不使用全局变量。
type WorldState struct {
	players *ecs.Store[components.PlayerComponent]
	pigs    *ecs.Store[components.PigComponent]
	balance float64
	frame   uint64
}

// NewWorldState 创建空世界（没有玩家），余额为 balance
func NewWorldState(balance float64) *WorldState {
	return &WorldState{
		players: ecs.NewStore[components.PlayerComponent](),
		pigs:    ecs.NewStore[components.PigComponent](),
		balance: balance,
	}
}

// NewSession 创建标准会话：初始余额，并在原点放置一个玩家
func NewSession() *WorldState {
	ws := NewWorldState(config.StartingBalance)
	ws.AddPlayer(&components.PlayerComponent{Speed: config.PlayerSpeed})
	return ws
}

// AddPlayer 添加玩家实体
func (ws *WorldState) AddPlayer(p *components.PlayerComponent) ecs.EntityID {
	return ws.players.CreateEntity(p)
}

// RemovePlayer 删除玩家实体
func (ws *WorldState) RemovePlayer(id ecs.EntityID) bool {
	return ws.players.Remove(id)
}

// Players 返回玩家集合
func (ws *WorldState) Players() *ecs.Store[components.PlayerComponent] {
	return ws.players
}

// SinglePlayer 返回唯一的玩家
//
// 返回：
//   - ErrNoPlayer: 没有玩家
//   - ErrAmbiguousPlayer: 玩家数量大于1
func (ws *WorldState) SinglePlayer() (ecs.EntityID, *components.PlayerComponent, error) {
	switch ws.players.Len() {
	case 0:
		return ecs.InvalidEntity, nil, ErrNoPlayer
	case 1:
		id := ws.players.IDs()[0]
		p, _ := ws.players.Get(id)
		return id, p, nil
	default:
		return ecs.InvalidEntity, nil, ErrAmbiguousPlayer
	}
}

// PlayerPosition 返回唯一玩家的位置
func (ws *WorldState) PlayerPosition() (components.PositionComponent, error) {
	_, p, err := ws.SinglePlayer()
	if err != nil {
		return components.PositionComponent{}, err
	}
	return p.Position, nil
}

// Balance 返回当前余额
func (ws *WorldState) Balance() float64 {
	return ws.balance
}

// Credit 增加余额
func (ws *WorldState) Credit(amount float64) {
	ws.balance += amount
}

// Debit 扣除余额（不检查是否足够，由调用方保证）
func (ws *WorldState) Debit(amount float64) {
	ws.balance -= amount
}

// Pigs 返回小猪集合
func (ws *WorldState) Pigs() *ecs.Store[components.PigComponent] {
	return ws.pigs
}

// InsertPig 添加小猪实体
func (ws *WorldState) InsertPig(p *components.PigComponent) ecs.EntityID {
	return ws.pigs.CreateEntity(p)
}

// RemovePig 删除小猪实体
func (ws *WorldState) RemovePig(id ecs.EntityID) bool {
	return ws.pigs.Remove(id)
}

// Frame 返回已完成的帧数
func (ws *WorldState) Frame() uint64 {
	return ws.frame
}

// AdvanceFrame 帧计数加一（由帧驱动器在每帧结束时调用）
func (ws *WorldState) AdvanceFrame() {
	ws.frame++
}
