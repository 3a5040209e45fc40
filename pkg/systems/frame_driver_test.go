package systems

import (
	"math/rand"
	"testing"
	"time"

	"github.com/decker502/pigfarm/pkg/components"
	"github.com/decker502/pigfarm/pkg/ecs"
	"github.com/decker502/pigfarm/pkg/game"
	"github.com/decker502/pigfarm/pkg/input"
)

var spawnKey = input.NewActionSet(input.ActionSpawn)

// TestScenarioBuyAndSell 余额100，买一只猪后为90；2.5秒后卖出，余额105
func TestScenarioBuyAndSell(t *testing.T) {
	ws := game.NewSession()
	rec := &game.NoticeRecorder{}
	d := NewFrameDriver(ws, rec)

	d.Step(1.0/60.0, spawnKey)

	if ws.Balance() != 90 {
		t.Fatalf("balance after spawn = %v, want 90", ws.Balance())
	}
	if ws.Pigs().Len() != 1 {
		t.Fatalf("pigs after spawn = %d, want 1", ws.Pigs().Len())
	}
	pig, _ := ws.Pigs().Get(ws.Pigs().IDs()[0])
	if pig.Lifetime.Remaining() != 2.0 {
		t.Errorf("remaining after spawn frame = %v, want 2.0", pig.Lifetime.Remaining())
	}

	for i := 0; i < 5; i++ {
		d.Step(0.5, 0)
	}

	if ws.Pigs().Len() != 0 {
		t.Errorf("pig should be sold after 2.5s, pigs = %d", ws.Pigs().Len())
	}
	if ws.Balance() != 105 {
		t.Errorf("balance after sale = %v, want 105", ws.Balance())
	}
	if rec.Count(game.NoticePigSpawned) != 1 || rec.Count(game.NoticePigSold) != 1 {
		t.Errorf("notices = %+v", rec.Notices)
	}
}

// TestScenarioSixtyHertz 60Hz 下小猪在购买帧之后的第 120 帧卖出
func TestScenarioSixtyHertz(t *testing.T) {
	ws := game.NewSession()
	d := NewFrameDriver(ws, nil)
	const dt = 1.0 / 60.0

	d.Step(dt, spawnKey)
	frames := 0
	for ws.Pigs().Len() > 0 && frames < 200 {
		d.Step(dt, 0)
		frames++
	}
	if frames != 120 {
		t.Errorf("pig removed %d frames after the spawn frame, want 120", frames)
	}
	if ws.Balance() != 105 {
		t.Errorf("balance = %v, want 105", ws.Balance())
	}
}

// TestScenarioInsufficientBalance 余额5时按下购买键不生成小猪
func TestScenarioInsufficientBalance(t *testing.T) {
	ws := newTestWorld(5, 0, 0)
	rec := &game.NoticeRecorder{}
	d := NewFrameDriver(ws, rec)

	d.Step(1.0/60.0, spawnKey)

	if ws.Pigs().Len() != 0 || ws.Balance() != 5 {
		t.Errorf("pigs=%d balance=%v, want 0 and 5", ws.Pigs().Len(), ws.Balance())
	}
	if rec.Count(game.NoticeInsufficientBalance) != 1 {
		t.Errorf("expected InsufficientBalance notice, got %+v", rec.Notices)
	}
}

// TestScenarioNoPlayer 没有玩家时按下购买键只报告错误
func TestScenarioNoPlayer(t *testing.T) {
	ws := game.NewWorldState(100)
	rec := &game.NoticeRecorder{}
	d := NewFrameDriver(ws, rec)

	d.Step(1.0/60.0, spawnKey)

	if ws.Pigs().Len() != 0 || ws.Balance() != 100 {
		t.Errorf("state mutated: pigs=%d balance=%v", ws.Pigs().Len(), ws.Balance())
	}
	if rec.Count(game.NoticeNoPlayer) != 1 {
		t.Errorf("expected NoPlayer notice, got %+v", rec.Notices)
	}

	// 帧循环继续运行
	d.Step(1.0/60.0, 0)
	if ws.Frame() != 2 {
		t.Errorf("frame = %d, want 2", ws.Frame())
	}
}

func TestHeldSpawnKeyFiresOnce(t *testing.T) {
	ws := game.NewSession()
	d := NewFrameDriver(ws, nil)

	for i := 0; i < 30; i++ {
		d.Step(1.0/60.0, spawnKey)
	}
	if ws.Pigs().Len() != 1 {
		t.Fatalf("holding spawn for 30 frames should buy one pig, got %d", ws.Pigs().Len())
	}

	// 松开再按下
	d.Step(1.0/60.0, 0)
	d.Step(1.0/60.0, spawnKey)
	if ws.Pigs().Len() != 2 {
		t.Errorf("second discrete press should buy another pig, got %d", ws.Pigs().Len())
	}
}

func TestSpawnAtPositionAfterMovementSameFrame(t *testing.T) {
	ws := game.NewSession()
	d := NewFrameDriver(ws, nil)

	// 同一帧先移动再购买，小猪出现在移动后的位置
	d.Step(0.1, input.NewActionSet(input.ActionMoveUp, input.ActionMoveRight, input.ActionSpawn))

	pos, _ := ws.PlayerPosition()
	if !nearlyEqual(pos.X, 30) || !nearlyEqual(pos.Y, 30) {
		t.Fatalf("player = (%v, %v), want (30, 30)", pos.X, pos.Y)
	}
	pig, _ := ws.Pigs().Get(ws.Pigs().IDs()[0])
	if pig.Position != pos {
		t.Errorf("pig position %+v should equal player position %+v", pig.Position, pos)
	}
}

func TestNonPositiveDeltaSkipsFrame(t *testing.T) {
	ws := game.NewSession()
	d := NewFrameDriver(ws, nil)

	d.Step(0, spawnKey)
	d.Step(-1, spawnKey)

	if ws.Frame() != 0 || ws.Pigs().Len() != 0 {
		t.Errorf("invalid frames must be skipped, frame=%d pigs=%d", ws.Frame(), ws.Pigs().Len())
	}

	// 跳过的帧不消耗上升沿
	d.Step(0.1, spawnKey)
	if ws.Pigs().Len() != 1 {
		t.Errorf("first valid frame should see the rising edge, pigs=%d", ws.Pigs().Len())
	}
}

func TestResetInputRearmsSpawn(t *testing.T) {
	ws := game.NewSession()
	d := NewFrameDriver(ws, nil)

	d.Step(0.1, spawnKey)
	d.ResetInput()
	d.Step(0.1, spawnKey)

	if ws.Pigs().Len() != 2 {
		t.Errorf("after ResetInput a held key counts as a new press, pigs=%d", ws.Pigs().Len())
	}
}

// TestEconomyProperties 随机帧序列下检查经济不变量
//
//   - 余额始终 >= 0
//   - 余额 = 100 - 10*买入数 + 15*卖出数
//   - 每只小猪在累计时间首次达到 2.0 秒的那一帧被删除
func TestEconomyProperties(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))

		ws := game.NewSession()
		sold := make(map[ecs.EntityID]bool)
		spawned := make(map[ecs.EntityID]bool)
		sink := game.NoticeFunc(func(n game.Notice) {
			switch n.Kind {
			case game.NoticePigSpawned:
				spawned[n.Pig] = true
			case game.NoticePigSold:
				if !spawned[n.Pig] {
					t.Fatalf("seed %d: pig %d sold without being bought", seed, n.Pig)
				}
				if sold[n.Pig] {
					t.Fatalf("seed %d: pig %d credited twice", seed, n.Pig)
				}
				sold[n.Pig] = true
			}
		})
		d := NewFrameDriver(ws, sink)

		// 每只小猪从出生下一帧开始累计的时间
		aged := make(map[ecs.EntityID]time.Duration)

		for frame := 0; frame < 600; frame++ {
			dt := 0.005 + rng.Float64()*0.1
			var keys input.ActionSet
			for _, a := range input.AllActions() {
				if rng.Intn(3) == 0 {
					keys = keys.With(a)
				}
			}

			alive := ws.Pigs().IDs()
			d.Step(dt, keys)

			for _, id := range alive {
				aged[id] += components.SecondsToDuration(dt)
				pig, stillAlive := ws.Pigs().Get(id)
				if stillAlive {
					if aged[id] >= 2*time.Second {
						t.Fatalf("seed %d: pig %d alive after %v", seed, id, aged[id])
					}
					if pig.Lifetime.CurrentLifetime != aged[id] {
						t.Fatalf("seed %d: pig %d lifetime %v, tracked %v", seed, id, pig.Lifetime.CurrentLifetime, aged[id])
					}
				} else if aged[id] < 2*time.Second {
					t.Fatalf("seed %d: pig %d removed after only %v", seed, id, aged[id])
				}
			}

			if ws.Balance() < 0 {
				t.Fatalf("seed %d: balance negative: %v", seed, ws.Balance())
			}
			want := 100 - 10*float64(len(spawned)) + 15*float64(len(sold))
			if !nearlyEqual(ws.Balance(), want) {
				t.Fatalf("seed %d frame %d: balance %v, ledger says %v", seed, frame, ws.Balance(), want)
			}
			if ws.Pigs().Len() != len(spawned)-len(sold) {
				t.Fatalf("seed %d: %d pigs alive, want %d", seed, ws.Pigs().Len(), len(spawned)-len(sold))
			}
		}
	}
}
