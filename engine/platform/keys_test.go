package platform

import (
	"testing"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/veandco/go-sdl2/sdl"
)

func TestButtonIndex(t *testing.T) {
	tests := []struct {
		name   string
		button uint8
		want   int
	}{
		{"left", sdl.BUTTON_LEFT, 0},
		{"right", sdl.BUTTON_RIGHT, 1},
		{"middle", sdl.BUTTON_MIDDLE, 2},
		{"x1", sdl.BUTTON_X1, 3},
		{"x2", sdl.BUTTON_X2, 4},
		{"unmapped sixth button", sdl.BUTTON_X2 + 1, -1},
		{"zero", 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buttonIndex(tt.button); got != tt.want {
				t.Errorf("buttonIndex(%d) = %d, want %d", tt.button, got, tt.want)
			}
		})
	}
}

func TestPressMask(t *testing.T) {
	var mask uint32
	mask = pressMask(mask, 0, true)
	mask = pressMask(mask, 2, true)
	if mask != 0b101 {
		t.Fatalf("mask = %#b, want 0b101", mask)
	}
	mask = pressMask(mask, 0, false)
	if mask != 0b100 {
		t.Fatalf("mask = %#b after release, want 0b100", mask)
	}
	// Releasing an already-clear bit is a no-op.
	if got := pressMask(mask, 1, false); got != mask {
		t.Errorf("mask = %#b, want unchanged %#b", got, mask)
	}
	// Unknown buttons map to -1 and must not disturb the mask.
	if got := pressMask(mask, -1, true); got != mask {
		t.Errorf("mask = %#b after unmapped press, want unchanged %#b", got, mask)
	}
}

func TestLeaveTracker(t *testing.T) {
	t.Run("re-enter cancels pending leave", func(t *testing.T) {
		var tr leaveTracker
		tr.Arm(10)
		tr.Cancel()
		if tr.Fire(11) {
			t.Error("cancelled leave still fired")
		}
	})

	t.Run("re-enter in the next poll batch cancels", func(t *testing.T) {
		var tr leaveTracker
		// Iteration N: the poll batch holds the leave; the frame
		// publish that follows must not fire it yet.
		tr.Arm(10)
		if tr.Fire(10) {
			t.Fatal("leave fired in the iteration that polled it")
		}
		// Iteration N+1: the matching enter arrives in the next batch.
		tr.Cancel()
		if tr.Fire(11) {
			t.Error("cancelled leave still fired")
		}
	})

	t.Run("does not fire on the arming frame", func(t *testing.T) {
		var tr leaveTracker
		tr.Arm(10)
		if tr.Fire(10) {
			t.Error("leave fired on the frame that armed it")
		}
		if !tr.Fire(11) {
			t.Error("leave did not fire on the next frame")
		}
	})

	t.Run("fires exactly once", func(t *testing.T) {
		var tr leaveTracker
		tr.Arm(10)
		if !tr.Fire(11) {
			t.Fatal("leave did not fire")
		}
		if tr.Fire(12) {
			t.Error("leave fired twice")
		}
	})

	t.Run("unarmed never fires", func(t *testing.T) {
		var tr leaveTracker
		if tr.Fire(1) {
			t.Error("unarmed tracker fired")
		}
	})
}

func TestFramebufferScale(t *testing.T) {
	tests := []struct {
		name                   string
		winW, winH, drawW, drawH int32
		wantX, wantY           float32
	}{
		{"1:1", 800, 600, 800, 600, 1, 1},
		{"retina 2x", 800, 600, 1600, 1200, 2, 2},
		{"anisotropic", 800, 600, 1200, 600, 1.5, 1},
		{"minimized window", 0, 0, 0, 0, 1, 1},
		{"zero drawable", 800, 600, 0, 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := framebufferScale(tt.winW, tt.winH, tt.drawW, tt.drawH)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("framebufferScale = (%v,%v), want (%v,%v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestCursorShape(t *testing.T) {
	tests := []struct {
		cursor imgui.MouseCursorID
		want   sdl.SystemCursor
	}{
		{imgui.MouseCursorArrow, sdl.SYSTEM_CURSOR_ARROW},
		{imgui.MouseCursorTextInput, sdl.SYSTEM_CURSOR_IBEAM},
		{imgui.MouseCursorResizeNS, sdl.SYSTEM_CURSOR_SIZENS},
		{imgui.MouseCursorResizeEW, sdl.SYSTEM_CURSOR_SIZEWE},
		{imgui.MouseCursorHand, sdl.SYSTEM_CURSOR_HAND},
		{99, sdl.SYSTEM_CURSOR_ARROW},
	}
	for _, tt := range tests {
		if got := cursorShape(tt.cursor); got != tt.want {
			t.Errorf("cursorShape(%d) = %v, want %v", tt.cursor, got, tt.want)
		}
	}
}

func TestKeyMapScancodesInBounds(t *testing.T) {
	for key, scancode := range imguiKeyMap {
		if int(scancode) >= maxScancodes {
			t.Errorf("key %d maps to scancode %d, beyond the key-down array", key, scancode)
		}
	}
}

func TestKeyMapCoversBothEnterKeys(t *testing.T) {
	if got := imguiKeyMap[imgui.KeyEnter]; got != sdl.SCANCODE_RETURN {
		t.Errorf("KeyEnter maps to %d, want SCANCODE_RETURN", got)
	}
	if got := imguiKeyMap[imgui.KeyKeyPadEnter]; got != sdl.SCANCODE_KP_ENTER {
		t.Errorf("KeyKeyPadEnter maps to %d, want SCANCODE_KP_ENTER", got)
	}
}
