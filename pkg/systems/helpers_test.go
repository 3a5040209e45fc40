package systems

import (
	"github.com/decker502/pigfarm/pkg/config"
	"github.com/decker502/pigfarm/pkg/entities"
	"github.com/decker502/pigfarm/pkg/game"
	"github.com/decker502/pigfarm/pkg/input"
)

// newTestWorld 创建带一个玩家的测试世界
func newTestWorld(balance float64, x, y float64) *game.WorldState {
	ws := game.NewWorldState(balance)
	entities.NewPlayerEntity(ws, x, y, config.PlayerSpeed)
	return ws
}

// held 构造只有按住状态的快照
func held(actions ...input.Action) input.Snapshot {
	return input.NewSnapshot(input.NewActionSet(actions...), 0)
}

// justPressed 构造刚按下的快照
func justPressed(actions ...input.Action) input.Snapshot {
	set := input.NewActionSet(actions...)
	return input.NewSnapshot(set, set)
}

// nearlyEqual 浮点比较
func nearlyEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}
