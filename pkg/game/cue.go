package game

import (
	"encoding/binary"
	"math"
	"time"
)

// CueTone 提示音参数
type CueTone struct {
	Frequency float64       // 频率（Hz）
	Duration  time.Duration // 时长
}

// cueTones 每种通知对应的提示音
// 买入用中音，卖出用高音，失败类用低音
var cueTones = map[NoticeKind]CueTone{
	NoticePigSpawned:          {Frequency: 523.25, Duration: 80 * time.Millisecond},
	NoticePigSold:             {Frequency: 783.99, Duration: 120 * time.Millisecond},
	NoticeInsufficientBalance: {Frequency: 220.00, Duration: 150 * time.Millisecond},
	NoticeNoPlayer:            {Frequency: 110.00, Duration: 200 * time.Millisecond},
	NoticeAmbiguousPlayer:     {Frequency: 110.00, Duration: 200 * time.Millisecond},
}

// CueFor 返回通知对应的提示音，未知类型返回 false
func CueFor(kind NoticeKind) (CueTone, bool) {
	tone, ok := cueTones[kind]
	return tone, ok
}

// Samples 返回该提示音在给定采样率下的采样数
func (c CueTone) Samples(sampleRate int) int {
	return int(c.Duration.Seconds() * float64(sampleRate))
}

// SynthesizePCM 生成 16 位小端、双声道的正弦波 PCM 数据
// 末尾 10% 做线性淡出，避免爆音
func (c CueTone) SynthesizePCM(sampleRate int) []byte {
	n := c.Samples(sampleRate)
	buf := make([]byte, n*4)
	fadeStart := n - n/10

	for i := 0; i < n; i++ {
		amp := 0.3
		if i >= fadeStart && n > fadeStart {
			amp *= float64(n-i) / float64(n-fadeStart)
		}
		v := amp * math.Sin(2*math.Pi*c.Frequency*float64(i)/float64(sampleRate))
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], s)
		binary.LittleEndian.PutUint16(buf[i*4+2:], s)
	}
	return buf
}
