package game

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestNoticeMessagesDistinguishable(t *testing.T) {
	notices := []Notice{
		{Kind: NoticePigSpawned, Balance: 90, Pig: 1},
		{Kind: NoticeInsufficientBalance, Balance: 5},
		{Kind: NoticePigSold, Balance: 105, Pig: 1},
		{Kind: NoticeNoPlayer, Err: ErrNoPlayer},
		{Kind: NoticeAmbiguousPlayer, Err: ErrAmbiguousPlayer},
	}

	seen := make(map[string]NoticeKind)
	for _, n := range notices {
		msg := n.String()
		if prev, dup := seen[msg]; dup {
			t.Errorf("%v and %v share message %q", prev, n.Kind, msg)
		}
		seen[msg] = n.Kind
	}

	if !strings.Contains(notices[0].String(), "90.00") {
		t.Errorf("spawn notice should report new balance: %q", notices[0].String())
	}
	if !strings.Contains(notices[2].String(), "105.00") {
		t.Errorf("sold notice should report new balance: %q", notices[2].String())
	}
}

func TestNoticeIsError(t *testing.T) {
	tests := []struct {
		kind NoticeKind
		want bool
	}{
		{NoticePigSpawned, false},
		{NoticeInsufficientBalance, false},
		{NoticePigSold, false},
		{NoticeNoPlayer, true},
		{NoticeAmbiguousPlayer, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := (Notice{Kind: tt.kind}).IsError(); got != tt.want {
				t.Errorf("IsError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogNoticeSink(t *testing.T) {
	var buf bytes.Buffer
	original := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(original)

	LogNoticeSink{}.Notify(Notice{Kind: NoticeNoPlayer, Err: ErrNoPlayer})
	LogNoticeSink{}.Notify(Notice{Kind: NoticeInsufficientBalance, Balance: 5})

	out := buf.String()
	if !strings.Contains(out, "[Economy] ERROR: Error: there is no player") {
		t.Errorf("error notice not logged as error: %q", out)
	}
	if !strings.Contains(out, "Not enough money") {
		t.Errorf("info notice missing: %q", out)
	}
}

func TestNoticeRecorderAndFanout(t *testing.T) {
	a := &NoticeRecorder{}
	b := &NoticeRecorder{}
	calls := 0
	fan := NoticeFanout{a, nil, b, NoticeFunc(func(Notice) { calls++ })}

	fan.Notify(Notice{Kind: NoticePigSpawned})
	fan.Notify(Notice{Kind: NoticePigSold})

	if len(a.Notices) != 2 || len(b.Notices) != 2 || calls != 2 {
		t.Fatalf("fanout delivered a=%d b=%d func=%d", len(a.Notices), len(b.Notices), calls)
	}
	if a.Count(NoticePigSold) != 1 {
		t.Errorf("Count(PigSold) = %d, want 1", a.Count(NoticePigSold))
	}
	last, ok := b.Last()
	if !ok || last.Kind != NoticePigSold {
		t.Errorf("Last() = %+v, %v", last, ok)
	}

	a.Reset()
	if _, ok := a.Last(); ok {
		t.Error("Reset should clear notices")
	}
}
