package game

import (
	"fmt"
	"log"

	"github.com/decker502/pigfarm/pkg/config"
	"github.com/decker502/pigfarm/pkg/ecs"
)

// NoticeKind 通知类型
type NoticeKind int

const (
	// NoticePigSpawned 买下一只小猪（信息）
	NoticePigSpawned NoticeKind = iota
	// NoticeInsufficientBalance 余额不足，未购买（信息）
	NoticeInsufficientBalance
	// NoticePigSold 小猪到期卖出（信息）
	NoticePigSold
	// NoticeNoPlayer 购买时没有玩家（错误）
	NoticeNoPlayer
	// NoticeAmbiguousPlayer 购买时有多个玩家（错误）
	NoticeAmbiguousPlayer
)

// String 返回通知类型名称
func (k NoticeKind) String() string {
	switch k {
	case NoticePigSpawned:
		return "PigSpawned"
	case NoticeInsufficientBalance:
		return "InsufficientBalance"
	case NoticePigSold:
		return "PigSold"
	case NoticeNoPlayer:
		return "NoPlayer"
	case NoticeAmbiguousPlayer:
		return "AmbiguousPlayer"
	default:
		return fmt.Sprintf("NoticeKind(%d)", int(k))
	}
}

// Notice 系统发出的一条通知
type Notice struct {
	Kind    NoticeKind
	Balance float64      // 通知发出时的余额
	Pig     ecs.EntityID // 相关的小猪（生成或卖出时）
	Err     error        // 错误类通知的原因
}

// IsError 是否为错误类通知
func (n Notice) IsError() bool {
	return n.Kind == NoticeNoPlayer || n.Kind == NoticeAmbiguousPlayer
}

// String 返回可读的通知文本，每种情况都可区分
func (n Notice) String() string {
	switch n.Kind {
	case NoticePigSpawned:
		return fmt.Sprintf("Spent $%.0f on pig #%d, remaining money: $%.2f", config.PigCost, n.Pig, n.Balance)
	case NoticeInsufficientBalance:
		return fmt.Sprintf("Not enough money to buy a pig, remaining balance: $%.2f", n.Balance)
	case NoticePigSold:
		return fmt.Sprintf("Pig #%d sold for $%.0f, current money: $%.2f", n.Pig, config.PigReward, n.Balance)
	case NoticeNoPlayer:
		return "Error: there is no player"
	case NoticeAmbiguousPlayer:
		return "Error: there is more than one player"
	default:
		return n.Kind.String()
	}
}

// NoticeSink 接收系统通知
type NoticeSink interface {
	Notify(n Notice)
}

// NoticeFunc 函数适配器
type NoticeFunc func(n Notice)

// Notify 实现 NoticeSink
func (f NoticeFunc) Notify(n Notice) {
	f(n)
}

// LogNoticeSink 将通知写入标准日志
type LogNoticeSink struct{}

// Notify 实现 NoticeSink
func (LogNoticeSink) Notify(n Notice) {
	if n.IsError() {
		log.Printf("[Economy] ERROR: %s", n)
		return
	}
	log.Printf("[Economy] %s", n)
}

// NoticeRecorder 记录所有通知（测试与界面提示使用）
type NoticeRecorder struct {
	Notices []Notice
}

// Notify 实现 NoticeSink
func (r *NoticeRecorder) Notify(n Notice) {
	r.Notices = append(r.Notices, n)
}

// Count 统计某种通知的数量
func (r *NoticeRecorder) Count(kind NoticeKind) int {
	count := 0
	for _, n := range r.Notices {
		if n.Kind == kind {
			count++
		}
	}
	return count
}

// Last 返回最后一条通知
func (r *NoticeRecorder) Last() (Notice, bool) {
	if len(r.Notices) == 0 {
		return Notice{}, false
	}
	return r.Notices[len(r.Notices)-1], true
}

// Reset 清空记录
func (r *NoticeRecorder) Reset() {
	r.Notices = r.Notices[:0]
}

// NoticeFanout 将通知分发给多个接收者
type NoticeFanout []NoticeSink

// Notify 实现 NoticeSink
func (f NoticeFanout) Notify(n Notice) {
	for _, sink := range f {
		if sink != nil {
			sink.Notify(n)
		}
	}
}
