package main

import (
	"fmt"
	"math"

	"github.com/decker502/pigfarm/pkg/game"
)

// 一个终端字符格对应的世界尺寸（字符格大约是 1:2 的长方形）
const (
	cellWorldWidth  = 8.0
	cellWorldHeight = 16.0
)

// worldToCell 世界坐标转字符格坐标
// 世界原点在可绘制区域中心（最后一行是状态栏），Y 轴向上
func worldToCell(x, y float64, width, height int) (int, int) {
	fieldHeight := height - 1
	col := width/2 + int(math.Round(x/cellWorldWidth))
	row := fieldHeight/2 - int(math.Round(y/cellWorldHeight))
	return col, row
}

// inField 字符格是否在可绘制区域内
func inField(col, row, width, height int) bool {
	return col >= 0 && col < width && row >= 0 && row < height-1
}

// statusLine 状态栏文本
func statusLine(snap game.WorldSnapshot, last *game.Notice) string {
	line := fmt.Sprintf(" Money: $%.2f  Pigs: %d  [WASD/arrows move, Space buys, q quits]", snap.Balance, len(snap.Pigs))
	if last != nil {
		line = fmt.Sprintf(" Money: $%.2f  Pigs: %d  %s", snap.Balance, len(snap.Pigs), last)
	}
	return line
}
