package components

// PlayerComponent 标记实体为玩家角色
// 一个会话中应当只有一个玩家
type PlayerComponent struct {
	Position PositionComponent
	Speed    float64 // 移动速度(单位/秒)
}
