package main

import (
	"log"
	"time"

	"github.com/decker502/pigfarm/pkg/game"
	"github.com/decker502/pigfarm/pkg/input"
	"github.com/decker502/pigfarm/pkg/systems"
	"github.com/gdamore/tcell/v2"
)

// frameInterval 帧间隔（60 Hz）
const frameInterval = time.Second / 60

// Terminal 终端前端：读取按键事件、驱动帧循环并绘制
type Terminal struct {
	screen    tcell.Screen
	driver    *systems.FrameDriver
	keys      keyActions
	hold      *input.HoldTracker
	publisher game.SnapshotPublisher
	every     int
	last      *game.Notice

	playerStyle tcell.Style
	pigStyle    tcell.Style
	statusStyle tcell.Style
}

// NewTerminal 创建终端前端（新的一局）
func NewTerminal(screen tcell.Screen, keys keyActions, sink game.NoticeSink, publisher game.SnapshotPublisher, broadcastEvery int) *Terminal {
	t := &Terminal{
		screen:      screen,
		keys:        keys,
		hold:        input.NewHoldTracker(input.DefaultInitialHold, input.DefaultRepeatHold),
		publisher:   publisher,
		every:       broadcastEvery,
		playerStyle: tcell.StyleDefault.Foreground(tcell.ColorSteelBlue).Bold(true),
		pigStyle:    tcell.StyleDefault.Foreground(tcell.ColorPink),
		statusStyle: tcell.StyleDefault.Reverse(true),
	}

	status := game.NoticeFunc(func(n game.Notice) {
		t.last = &n
	})
	t.driver = systems.NewFrameDriver(game.NewSession(), game.NoticeFanout{status, sink})
	return t
}

// handleKey 处理一个按键事件，返回 false 表示退出
func (t *Terminal) handleKey(ev *tcell.EventKey, now time.Time) bool {
	if isQuit(ev) {
		return false
	}
	for _, action := range t.keys.lookup(ev) {
		t.hold.Press(action, now)
	}
	return true
}

// handleFocus 处理终端焦点变化
// 失去焦点后收不到按键事件，释放所有保持中的动作并清空输入历史
func (t *Terminal) handleFocus(focused bool) {
	if focused {
		return
	}
	for _, action := range input.AllActions() {
		t.hold.Release(action)
	}
	t.driver.ResetInput()
	log.Printf("[TUI] Terminal lost focus, input reset")
}

// step 推进一帧
func (t *Terminal) step(deltaTime float64, now time.Time) {
	t.driver.Step(deltaTime, t.hold.Held(now))

	world := t.driver.World()
	if t.publisher != nil && t.every > 0 && world.Frame()%uint64(t.every) == 0 {
		t.publisher.Publish(world.Snapshot())
	}
}

// draw 绘制一帧
func (t *Terminal) draw() {
	t.screen.Clear()
	width, height := t.screen.Size()
	snap := t.driver.World().Snapshot()

	for _, pig := range snap.Pigs {
		if col, row := worldToCell(pig.X, pig.Y, width, height); inField(col, row, width, height) {
			t.screen.SetContent(col, row, 'P', nil, t.pigStyle)
		}
	}
	for _, player := range snap.Players {
		if col, row := worldToCell(player.X, player.Y, width, height); inField(col, row, width, height) {
			t.screen.SetContent(col, row, '@', nil, t.playerStyle)
		}
	}

	line := []rune(statusLine(snap, t.last))
	for col := 0; col < width; col++ {
		r := ' '
		if col < len(line) {
			r = line[col]
		}
		t.screen.SetContent(col, height-1, r, nil, t.statusStyle)
	}

	t.screen.Show()
}

// Run 运行事件循环直到退出键
func (t *Terminal) Run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				// 屏幕已关闭
				close(events)
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !t.handleKey(ev, time.Now()) {
					return
				}
			case *tcell.EventFocus:
				t.handleFocus(ev.Focused)
			case *tcell.EventResize:
				t.screen.Sync()
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			t.step(dt, now)
			t.draw()
		}
	}
}
