package components

// PositionComponent 存储实体的世界坐标
// 世界坐标原点位于摄像机中心，Y轴向上
type PositionComponent struct {
	X float64
	Y float64
}
