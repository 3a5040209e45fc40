package main

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/decker502/pigfarm/pkg/input"
	"github.com/gdamore/tcell/v2"
)

// termKey 终端按键：特殊键用 key，字符键用 KeyRune + r（小写）
type termKey struct {
	key tcell.Key
	r   rune
}

// namedKeys 与 ebiten 按键名对应的终端按键
var namedKeys = map[string]termKey{
	"space":      {tcell.KeyRune, ' '},
	"enter":      {tcell.KeyEnter, 0},
	"tab":        {tcell.KeyTab, 0},
	"arrowup":    {tcell.KeyUp, 0},
	"arrowdown":  {tcell.KeyDown, 0},
	"arrowleft":  {tcell.KeyLeft, 0},
	"arrowright": {tcell.KeyRight, 0},
}

// parseTermKey 把设置中的按键名转换为终端按键
// 单个字母或数字按字符匹配（不区分大小写）
func parseTermKey(name string) (termKey, error) {
	if k, ok := namedKeys[strings.ToLower(name)]; ok {
		return k, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return termKey{tcell.KeyRune, unicode.ToLower(r)}, nil
		}
	}
	return termKey{}, fmt.Errorf("key %q has no terminal equivalent", name)
}

// keyActions 终端按键到动作的映射
type keyActions map[termKey][]input.Action

// resolveTermBindings 解析按键绑定，终端无法表示的按键被跳过
func resolveTermBindings(bindings map[input.Action][]string) (keyActions, []error) {
	result := make(keyActions)
	var skipped []error
	for _, action := range input.AllActions() {
		for _, name := range bindings[action] {
			k, err := parseTermKey(name)
			if err != nil {
				skipped = append(skipped, fmt.Errorf("%s: %w", action, err))
				continue
			}
			result[k] = append(result[k], action)
		}
	}
	return result, skipped
}

// lookup 返回事件对应的动作
func (m keyActions) lookup(ev *tcell.EventKey) []input.Action {
	k := termKey{key: ev.Key()}
	if ev.Key() == tcell.KeyRune {
		k.r = unicode.ToLower(ev.Rune())
	}
	return m[k]
}

// isQuit 退出键：q、Esc、Ctrl-C
func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
