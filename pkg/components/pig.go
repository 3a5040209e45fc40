package components

// PigComponent 标记实体为小猪
// 花钱购买后在玩家位置生成，到期后自动卖出
type PigComponent struct {
	Position PositionComponent
	Lifetime LifetimeComponent
	// Fresh 表示本帧刚买下
	// 生命周期系统第一次遇到它时只清除标记、不计时
	Fresh bool
}
