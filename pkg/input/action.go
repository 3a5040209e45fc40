// Package input 提供与输入设备无关的动作快照
//
// 各个前端（ebiten 窗口、tcell 终端）只负责报告"当前按住了哪些动作"，
// 由 Tracker 统一计算"刚刚按下"的上升沿，保证每次离散按键只触发一次。
package input

import (
	"fmt"
	"strings"
)

// Action 逻辑输入动作
type Action int

const (
	ActionMoveUp Action = iota
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionSpawn

	actionCount
)

var actionNames = [actionCount]string{
	ActionMoveUp:    "move-up",
	ActionMoveDown:  "move-down",
	ActionMoveLeft:  "move-left",
	ActionMoveRight: "move-right",
	ActionSpawn:     "spawn",
}

// String 返回动作名称（用于配置文件和日志）
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction 根据名称解析动作，忽略大小写和首尾空白
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown input action %q", name)
}

// AllActions 返回所有动作（按定义顺序）
func AllActions() []Action {
	actions := make([]Action, 0, actionCount)
	for a := Action(0); a < actionCount; a++ {
		actions = append(actions, a)
	}
	return actions
}

// ActionSet 动作集合（位集）
type ActionSet uint8

// NewActionSet 由若干动作构造集合
func NewActionSet(actions ...Action) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

// With 返回加入动作后的集合
func (s ActionSet) With(a Action) ActionSet {
	if a < 0 || a >= actionCount {
		return s
	}
	return s | 1<<uint(a)
}

// Has 检查集合是否包含动作
func (s ActionSet) Has(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return s&(1<<uint(a)) != 0
}

// String 返回可读形式，如 "{move-up,spawn}"
func (s ActionSet) String() string {
	names := make([]string, 0, actionCount)
	for _, a := range AllActions() {
		if s.Has(a) {
			names = append(names, a.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}
