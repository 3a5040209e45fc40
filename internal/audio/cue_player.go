// Package audio 为终端前端播放经济提示音（gopxl/beep）
//
// 桌面前端使用 ebiten 自己的音频上下文，两者不能在同一进程共存，
// 所以终端前端单独走 beep 的 speaker。
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/decker502/pigfarm/pkg/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
	// cueAmplitude 提示音振幅（满幅的比例）
	cueAmplitude = 0.3
)

// CuePlayer 把通知转换为提示音，实现 game.NoticeSink
// 未初始化时所有播放都被忽略
type CuePlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewCuePlayer 创建提示音播放器
// volume 取值 0.0 ~ 1.0
func NewCuePlayer(volume float64) *CuePlayer {
	return &CuePlayer{
		mixer:  &beep.Mixer{},
		volume: clamp01(volume),
	}
}

// Initialize 打开音频设备
func (cp *CuePlayer) Initialize() error {
	cp.mu.Lock()
	defer cp.mu.Unlock()

	if cp.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(cp.mixer)
	cp.initialized = true
	return nil
}

// Cleanup 停止所有提示音
func (cp *CuePlayer) Cleanup() {
	cp.mu.Lock()
	defer cp.mu.Unlock()

	if !cp.initialized {
		return
	}

	speaker.Lock()
	cp.mixer.Clear()
	speaker.Unlock()
	cp.initialized = false
}

// Notify 实现 game.NoticeSink
func (cp *CuePlayer) Notify(n game.Notice) {
	cp.Play(n.Kind)
}

// Play 播放通知对应的提示音，返回是否开始播放
func (cp *CuePlayer) Play(kind game.NoticeKind) bool {
	cp.mu.Lock()
	defer cp.mu.Unlock()

	if !cp.initialized || cp.volume == 0 {
		return false
	}

	streamer, err := CueStreamer(kind, cp.volume)
	if err != nil {
		return false
	}

	speaker.Lock()
	cp.mixer.Add(streamer)
	speaker.Unlock()
	return true
}

// CueStreamer 生成通知对应的有限长度正弦提示音
func CueStreamer(kind game.NoticeKind, volume float64) (beep.Streamer, error) {
	tone, ok := game.CueFor(kind)
	if !ok {
		return nil, fmt.Errorf("no cue for %v", kind)
	}

	sine, err := generators.SineTone(sampleRate, tone.Frequency)
	if err != nil {
		return nil, fmt.Errorf("sine tone %.2fHz: %w", tone.Frequency, err)
	}

	// Gain 按 (1 + Gain) 缩放
	gain := &effects.Gain{
		Streamer: sine,
		Gain:     cueAmplitude*clamp01(volume) - 1,
	}
	return beep.Take(sampleRate.N(tone.Duration), gain), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
