package input

import "time"

// Snapshot 某一帧的只读输入快照
type Snapshot struct {
	pressed     ActionSet
	justPressed ActionSet
}

// NewSnapshot 直接构造快照（测试和回放使用）
func NewSnapshot(pressed, justPressed ActionSet) Snapshot {
	return Snapshot{pressed: pressed, justPressed: justPressed}
}

// Pressed 动作在本帧是否处于按住状态
func (s Snapshot) Pressed(a Action) bool {
	return s.pressed.Has(a)
}

// JustPressed 动作是否在本帧刚刚按下（上升沿）
func (s Snapshot) JustPressed(a Action) bool {
	return s.justPressed.Has(a)
}

// PressedSet 返回按住的动作集合
func (s Snapshot) PressedSet() ActionSet {
	return s.pressed
}

// Tracker 记录上一帧的按住状态并计算上升沿
type Tracker struct {
	previous ActionSet
}

// NewTracker 创建输入跟踪器
func NewTracker() *Tracker {
	return &Tracker{}
}

// Advance 提交本帧按住的动作，返回带上升沿的快照
// 每帧必须且只能调用一次
func (t *Tracker) Advance(held ActionSet) Snapshot {
	snap := Snapshot{
		pressed:     held,
		justPressed: held &^ t.previous,
	}
	t.previous = held
	return snap
}

// Reset 清除历史（如窗口失去焦点后），下一帧按住的动作会重新产生上升沿
func (t *Tracker) Reset() {
	t.previous = 0
}

// 终端按键保持窗口
// 首次事件之后要等待终端的首次重复延迟（通常 250~500ms），
// 进入自动重复后只需覆盖重复间隔（通常 30~50ms）。
const (
	DefaultInitialHold = 550 * time.Millisecond
	DefaultRepeatHold  = 120 * time.Millisecond
)

// HoldTracker 将只有"按下"事件的输入源（终端）转换为按住状态
//
// 终端不会报告按键抬起，因此在最后一次事件之后的一段时间内视为按住。
// 按住期间终端的自动重复事件会不断刷新时间，不会产生新的上升沿。
type HoldTracker struct {
	initial time.Duration
	repeat  time.Duration
	keys    [actionCount]holdState
}

type holdState struct {
	last     time.Time
	repeated bool
}

// NewHoldTracker 创建按住状态跟踪器
func NewHoldTracker(initial, repeat time.Duration) *HoldTracker {
	return &HoldTracker{initial: initial, repeat: repeat}
}

// Press 记录一次按键事件
func (h *HoldTracker) Press(a Action, now time.Time) {
	if a < 0 || a >= actionCount {
		return
	}
	st := &h.keys[a]
	st.repeated = h.active(st, now)
	st.last = now
}

// Release 立即释放动作
func (h *HoldTracker) Release(a Action) {
	if a < 0 || a >= actionCount {
		return
	}
	h.keys[a] = holdState{}
}

// Held 返回在 now 时刻视为按住的动作集合
func (h *HoldTracker) Held(now time.Time) ActionSet {
	var held ActionSet
	for a := Action(0); a < actionCount; a++ {
		if h.active(&h.keys[a], now) {
			held = held.With(a)
		}
	}
	return held
}

func (h *HoldTracker) active(st *holdState, now time.Time) bool {
	if st.last.IsZero() {
		return false
	}
	window := h.initial
	if st.repeated {
		window = h.repeat
	}
	return now.Sub(st.last) <= window
}
