package components

import (
	"math"
	"time"
)

// LifetimeComponent 管理实体的生命周期
// 用于自动清理存在时间达到上限的实体(如小猪)
//
// 计时以纳秒整数累加，每帧的 deltaTime 先四舍五入到纳秒。
// 60Hz 下 120 帧恰好累计到 2 秒，不会因浮点误差多活一帧。
type LifetimeComponent struct {
	MaxLifetime     time.Duration // 最大生命周期
	CurrentLifetime time.Duration // 当前已存在时间
	IsExpired       bool          // 是否已过期
}

// SecondsToDuration 把秒数转换为纳秒计时（四舍五入）
func SecondsToDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// NewLifetimeComponent 创建一个从零开始计时的生命周期组件
// maxLifetime 单位为秒
func NewLifetimeComponent(maxLifetime float64) LifetimeComponent {
	return LifetimeComponent{MaxLifetime: SecondsToDuration(maxLifetime)}
}

// Tick 推进计时并返回是否已过期
func (l *LifetimeComponent) Tick(deltaTime float64) bool {
	l.CurrentLifetime += SecondsToDuration(deltaTime)
	if l.CurrentLifetime >= l.MaxLifetime {
		l.IsExpired = true
	}
	return l.IsExpired
}

// Remaining 返回剩余时间(秒)，最小为0
func (l *LifetimeComponent) Remaining() float64 {
	remaining := l.MaxLifetime - l.CurrentLifetime
	if remaining < 0 {
		return 0
	}
	return remaining.Seconds()
}
