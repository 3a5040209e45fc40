package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioSampleRate 桌面端音频上下文的采样率
const AudioSampleRate = 48000

// AudioManager 音频管理器
// 职责：
//   - 把经济通知转换为提示音（实现 NoticeSink）
//   - 与设置联动：自动应用 SettingsManager 中的音效开关和音量
//
// 提示音在首次使用时合成并缓存为 PCM，没有任何外部音频资源。
type AudioManager struct {
	context         *audio.Context               // 音频上下文，为 nil 时静音
	settingsManager *SettingsManager             // 设置管理器（可为 nil）
	cuePCM          map[NoticeKind][]byte        // 已合成的提示音 PCM 缓存
	players         map[NoticeKind]*audio.Player // 提示音播放器缓存
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文（可为 nil，此时所有播放都被忽略）
//   - sm: SettingsManager 实例（可为 nil，使用默认音量）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		cuePCM:          make(map[NoticeKind][]byte),
		players:         make(map[NoticeKind]*audio.Player),
	}
}

// Notify 实现 NoticeSink
func (am *AudioManager) Notify(n Notice) {
	am.PlayCue(n.Kind)
}

// Enabled 当前是否允许播放音效
func (am *AudioManager) Enabled() bool {
	if am.settingsManager == nil {
		return true
	}
	return am.settingsManager.GetSettings().SoundEnabled
}

// Volume 当前音效音量
func (am *AudioManager) Volume() float64 {
	if am.settingsManager == nil {
		return DefaultSettings().SoundVolume
	}
	return am.settingsManager.GetSettings().SoundVolume
}

// PlayCue 播放通知对应的提示音
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlayCue(kind NoticeKind) bool {
	if !am.Enabled() {
		return false
	}
	if am.context == nil {
		return false
	}

	player := am.getPlayer(kind)
	if player == nil {
		return false
	}

	// 每种提示音只有一个播放器，重新播放会从头开始
	// 同一帧卖出多只小猪时只听到一声
	player.SetVolume(am.Volume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind cue %v: %v", kind, err)
	}
	player.Play()
	return true
}

// cuePCMFor 返回（必要时合成）提示音 PCM
func (am *AudioManager) cuePCMFor(kind NoticeKind) []byte {
	if pcm, ok := am.cuePCM[kind]; ok {
		return pcm
	}
	tone, ok := CueFor(kind)
	if !ok {
		return nil
	}
	pcm := tone.SynthesizePCM(AudioSampleRate)
	am.cuePCM[kind] = pcm
	return pcm
}

// getPlayer 获取或创建提示音播放器（每种通知一个）
func (am *AudioManager) getPlayer(kind NoticeKind) *audio.Player {
	if player, ok := am.players[kind]; ok {
		return player
	}

	pcm := am.cuePCMFor(kind)
	if pcm == nil {
		log.Printf("[AudioManager] Warning: no cue for %v", kind)
		return nil
	}

	player := am.context.NewPlayerFromBytes(pcm)
	am.players[kind] = player
	return player
}
