package game

import (
	"encoding/binary"
	"testing"
	"time"
)

func TestCueForEveryNoticeKind(t *testing.T) {
	kinds := []NoticeKind{
		NoticePigSpawned,
		NoticeInsufficientBalance,
		NoticePigSold,
		NoticeNoPlayer,
		NoticeAmbiguousPlayer,
	}
	for _, kind := range kinds {
		tone, ok := CueFor(kind)
		if !ok {
			t.Errorf("no cue for %v", kind)
			continue
		}
		if tone.Frequency <= 0 || tone.Duration <= 0 {
			t.Errorf("cue for %v has invalid parameters: %+v", kind, tone)
		}
	}

	if _, ok := CueFor(NoticeKind(99)); ok {
		t.Error("unknown kind should have no cue")
	}

	spawned, _ := CueFor(NoticePigSpawned)
	sold, _ := CueFor(NoticePigSold)
	if sold.Frequency <= spawned.Frequency {
		t.Error("sale cue should be higher than purchase cue")
	}
}

func TestSynthesizePCM(t *testing.T) {
	tone := CueTone{Frequency: 440, Duration: 100 * time.Millisecond}
	pcm := tone.SynthesizePCM(48000)

	if want := 4800 * 4; len(pcm) != want {
		t.Fatalf("len(pcm) = %d, want %d", len(pcm), want)
	}

	// 第一个采样是 sin(0) = 0
	if binary.LittleEndian.Uint16(pcm[0:]) != 0 {
		t.Error("first sample should be silent")
	}

	// 左右声道相同
	for i := 0; i < len(pcm); i += 4 {
		if pcm[i] != pcm[i+2] || pcm[i+1] != pcm[i+3] {
			t.Fatalf("channels differ at frame %d", i/4)
		}
	}

	// 振幅不超过 0.3 满幅
	amp := 0.3
	limit := int16(amp*32767) + 1
	for i := 0; i < len(pcm); i += 4 {
		v := int16(binary.LittleEndian.Uint16(pcm[i:]))
		if v > limit || v < -limit {
			t.Fatalf("sample %d = %d exceeds amplitude limit", i/4, v)
		}
	}
}

func TestAudioManagerWithoutContext(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)

	if am.PlayCue(NoticePigSpawned) {
		t.Error("PlayCue without audio context should not play")
	}
	// Notify 不应 panic
	am.Notify(Notice{Kind: NoticePigSold})
}

func TestAudioManagerHonorsSettings(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)

	if !am.Enabled() {
		t.Error("sound should be enabled by default")
	}
	if am.Volume() != 0.8 {
		t.Errorf("Volume() = %v, want 0.8", am.Volume())
	}

	sm.SetSoundEnabled(false)
	sm.SetSoundVolume(0.25)
	if am.Enabled() {
		t.Error("Enabled() should follow settings")
	}
	if am.Volume() != 0.25 {
		t.Errorf("Volume() = %v, want 0.25", am.Volume())
	}

	noSettings := NewAudioManager(nil, nil)
	if !noSettings.Enabled() || noSettings.Volume() != 0.8 {
		t.Error("nil settings should use defaults")
	}
}

func TestAudioManagerCachesPCM(t *testing.T) {
	am := NewAudioManager(nil, nil)
	first := am.cuePCMFor(NoticePigSold)
	second := am.cuePCMFor(NoticePigSold)
	if len(first) == 0 || &first[0] != &second[0] {
		t.Error("cue PCM should be synthesized once and cached")
	}
	if am.cuePCMFor(NoticeKind(42)) != nil {
		t.Error("unknown kind should have no PCM")
	}
}
