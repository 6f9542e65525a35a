package platform

import (
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/veandco/go-sdl2/sdl"
)

// SDL reports at most this many distinct scancodes; the GUI library's
// key-down array is sized to match, so any scancode below the limit can
// be forwarded as-is even when it has no named mapping.
const maxScancodes = 512

// imguiKeyMap routes the GUI library's named keys through SDL scancodes.
// Scancodes are layout independent, which keeps editing shortcuts on the
// same physical keys across keyboard layouts.
var imguiKeyMap = map[int]sdl.Scancode{
	imgui.KeyTab:         sdl.SCANCODE_TAB,
	imgui.KeyLeftArrow:   sdl.SCANCODE_LEFT,
	imgui.KeyRightArrow:  sdl.SCANCODE_RIGHT,
	imgui.KeyUpArrow:     sdl.SCANCODE_UP,
	imgui.KeyDownArrow:   sdl.SCANCODE_DOWN,
	imgui.KeyPageUp:      sdl.SCANCODE_PAGEUP,
	imgui.KeyPageDown:    sdl.SCANCODE_PAGEDOWN,
	imgui.KeyHome:        sdl.SCANCODE_HOME,
	imgui.KeyEnd:         sdl.SCANCODE_END,
	imgui.KeyInsert:      sdl.SCANCODE_INSERT,
	imgui.KeyDelete:      sdl.SCANCODE_DELETE,
	imgui.KeyBackspace:   sdl.SCANCODE_BACKSPACE,
	imgui.KeySpace:       sdl.SCANCODE_SPACE,
	imgui.KeyEnter:       sdl.SCANCODE_RETURN,
	imgui.KeyKeyPadEnter: sdl.SCANCODE_KP_ENTER,
	imgui.KeyEscape:      sdl.SCANCODE_ESCAPE,
	imgui.KeyA:           sdl.SCANCODE_A,
	imgui.KeyC:           sdl.SCANCODE_C,
	imgui.KeyV:           sdl.SCANCODE_V,
	imgui.KeyX:           sdl.SCANCODE_X,
	imgui.KeyY:           sdl.SCANCODE_Y,
	imgui.KeyZ:           sdl.SCANCODE_Z,
}

func installKeyMap(io imgui.IO) {
	for key, scancode := range imguiKeyMap {
		io.KeyMap(key, int(scancode))
	}
}

// buttonIndex maps an SDL mouse button code to the GUI library's mouse
// ordinal. Unknown buttons return -1 and are ignored by the caller.
func buttonIndex(button uint8) int {
	switch button {
	case sdl.BUTTON_LEFT:
		return 0
	case sdl.BUTTON_RIGHT:
		return 1
	case sdl.BUTTON_MIDDLE:
		return 2
	case sdl.BUTTON_X1:
		return 3
	case sdl.BUTTON_X2:
		return 4
	}
	return -1
}

// pressMask updates the pressed-button bitmask for a button ordinal.
func pressMask(mask uint32, index int, down bool) uint32 {
	if index < 0 || index > 31 {
		return mask
	}
	if down {
		return mask | 1<<uint(index)
	}
	return mask &^ (1 << uint(index))
}

// cursorShape maps the GUI library's cursor enum to an SDL system cursor.
func cursorShape(cursor imgui.MouseCursorID) sdl.SystemCursor {
	switch cursor {
	case imgui.MouseCursorTextInput:
		return sdl.SYSTEM_CURSOR_IBEAM
	case imgui.MouseCursorResizeAll:
		return sdl.SYSTEM_CURSOR_SIZEALL
	case imgui.MouseCursorResizeNS:
		return sdl.SYSTEM_CURSOR_SIZENS
	case imgui.MouseCursorResizeEW:
		return sdl.SYSTEM_CURSOR_SIZEWE
	case imgui.MouseCursorResizeNESW:
		return sdl.SYSTEM_CURSOR_SIZENESW
	case imgui.MouseCursorResizeNWSE:
		return sdl.SYSTEM_CURSOR_SIZENWSE
	case imgui.MouseCursorHand:
		return sdl.SYSTEM_CURSOR_HAND
	}
	return sdl.SYSTEM_CURSOR_ARROW
}

// leaveTracker defers a window-leave signal by one frame so that a leave
// immediately followed by a re-enter (overlapping regions, window edges)
// does not hide the pointer for a frame.
type leaveTracker struct {
	fireFrame uint64
}

// Arm schedules the leave signal for the frame after the current one.
func (t *leaveTracker) Arm(frame uint64) { t.fireFrame = frame + 1 }

func (t *leaveTracker) Cancel() { t.fireFrame = 0 }

// Fire reports whether the deferred signal is due on the given frame,
// disarming the tracker when it is.
func (t *leaveTracker) Fire(frame uint64) bool {
	if t.fireFrame == 0 || frame < t.fireFrame {
		return false
	}
	t.fireFrame = 0
	return true
}

// framebufferScale reports device pixels per logical unit. Returns 1:1
// when either surface reports a zero dimension (minimized window).
func framebufferScale(winW, winH, drawW, drawH int32) (float32, float32) {
	if winW <= 0 || winH <= 0 || drawW <= 0 || drawH <= 0 {
		return 1, 1
	}
	return float32(drawW) / float32(winW), float32(drawH) / float32(winH)
}
