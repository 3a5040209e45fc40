package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
	saved        bool
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// plainScene 不实现 Saveable
type plainScene struct{}

func (plainScene) Update(float64) {}
func (plainScene) Draw(*ebiten.Image) {}

func (m *MockScene) SaveOnExit() bool {
	m.saved = true
	return true
}

func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

func TestSceneManagerUpdateAndDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 0.016
	sm.Update(deltaTime)
	sm.Draw(nil)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerNoScene 没有场景时 Update/Draw 不应 panic
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016)
	sm.Draw(nil)
	if !sm.SaveOnExit() {
		t.Error("SaveOnExit without scene should succeed")
	}
}

func TestSceneManagerSwitchBetweenScenes(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	scene2 := &MockScene{}

	sm.SwitchTo(scene1)
	sm.Update(0.016)

	if !scene1.updateCalled {
		t.Error("Scene1's Update was not called")
	}
	if scene2.updateCalled {
		t.Error("Scene2's Update should not have been called yet")
	}

	sm.SwitchTo(scene2)
	sm.Update(0.016)

	if !scene2.updateCalled {
		t.Error("Scene2's Update was not called after switching")
	}
}

func TestSceneManagerRestart(t *testing.T) {
	sm := NewSceneManager()
	if sm.Restart() {
		t.Fatal("Restart without factory should fail")
	}

	created := 0
	sm.SetSceneFactory(func() Scene {
		created++
		return &MockScene{}
	})

	first := &MockScene{}
	sm.SwitchTo(first)
	if !sm.Restart() {
		t.Fatal("Restart with factory should succeed")
	}
	if created != 1 {
		t.Errorf("factory called %d times, want 1", created)
	}
	if sm.GetCurrentScene() == Scene(first) {
		t.Error("Restart should replace the current scene")
	}

	sm.SetSceneFactory(func() Scene { return nil })
	current := sm.GetCurrentScene()
	if sm.Restart() {
		t.Error("Restart should fail when factory returns nil")
	}
	if sm.GetCurrentScene() != current {
		t.Error("failed Restart must keep the current scene")
	}
}

func TestSceneManagerSaveOnExit(t *testing.T) {
	sm := NewSceneManager()
	scene := &MockScene{}
	sm.SwitchTo(scene)

	if !sm.SaveOnExit() || !scene.saved {
		t.Error("Saveable scene should be saved on exit")
	}

	sm.SwitchTo(plainScene{})
	if !sm.SaveOnExit() {
		t.Error("non-Saveable scene should report success")
	}
}
