package platform

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"time"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/behindcurtain3/sdlimgui/engine/core"
)

// lastCursor value before any cursor has been applied. Distinct from
// imgui.MouseCursorNone, which is a valid "hide the cursor" request.
const cursorUnset imgui.MouseCursorID = -2

// SDL owns the native window and renderer and translates SDL events into
// the GUI library's input model. Exactly one native window is tracked;
// events addressed to any other window id are rejected.
type SDL struct {
	io       imgui.IO
	log      *slog.Logger
	window   *sdl.Window
	windowID uint32
	renderer *sdl.Renderer

	shouldStop bool
	lastFrame  time.Time
	frame      uint64
	scale      [2]float32

	// input session state
	hoveredWindowID uint32
	pendingLeave    leaveTracker
	buttonMask      uint32
	touchActive     bool

	cursors    [imgui.MouseCursorCount]*sdl.Cursor
	lastCursor imgui.MouseCursorID
	textInput  bool

	onResize func(w, h int)
}

var _ core.Platform = (*SDL)(nil)

// NewSDL initializes SDL video, creates the window and its accelerated
// renderer, and wires the GUI library's key map and clipboard.
// Must be called on the main thread.
func NewSDL(io imgui.IO, cfg core.Config, logger *slog.Logger) (*SDL, error) {
	runtime.LockOSThread()
	if logger == nil {
		logger = slog.Default()
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("init SDL: %w", err)
	}

	window, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height),
		sdl.WINDOW_RESIZABLE|sdl.WINDOW_ALLOW_HIGHDPI)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("create window: %w", err)
	}
	windowID, err := window.GetID()
	if err != nil {
		_ = window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("query window id: %w", err)
	}

	flags := uint32(sdl.RENDERER_ACCELERATED)
	if cfg.VSync {
		flags |= sdl.RENDERER_PRESENTVSYNC
	}
	renderer, err := sdl.CreateRenderer(window, -1, flags)
	if err != nil {
		_ = window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	if info, err := renderer.GetInfo(); err == nil {
		logger.Info("SDL renderer", "driver", info.Name)
	}

	p := &SDL{
		io:         io,
		log:        logger,
		window:     window,
		windowID:   windowID,
		renderer:   renderer,
		scale:      [2]float32{1, 1},
		lastCursor: cursorUnset,
	}
	if dw, dh, err := renderer.GetOutputSize(); err == nil {
		w, h := window.GetSize()
		p.scale[0], p.scale[1] = framebufferScale(w, h, dw, dh)
	}
	installKeyMap(io)
	io.SetClipboard(clipboard{})
	return p, nil
}

// Renderer exposes the native renderer for the draw backend and for the
// application's own background drawing.
func (p *SDL) Renderer() *sdl.Renderer { return p.renderer }

func (p *SDL) SetResizeCallback(cb func(w, h int)) { p.onResize = cb }

func (p *SDL) ShouldStop() bool { return p.shouldStop }

func (p *SDL) PostRender() { p.renderer.Present() }

// DisplaySize is the window size in logical units.
func (p *SDL) DisplaySize() [2]float32 {
	w, h := p.window.GetSize()
	return [2]float32{float32(w), float32(h)}
}

// FramebufferSize is the drawable size in device pixels, derived from
// the display size and the per-frame scale.
func (p *SDL) FramebufferSize() [2]float32 {
	size := p.DisplaySize()
	return [2]float32{size[0] * p.scale[0], size[1] * p.scale[1]}
}

// ProcessEvents drains the SDL event queue and dispatches each event to
// the input translator.
func (p *SDL) ProcessEvents() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		p.processEvent(ev)
	}
}

// processEvent maps one native event to zero or one input-model effect.
// Events for foreign windows and unrecognized inputs report false; no
// event is ever an error.
func (p *SDL) processEvent(ev sdl.Event) bool {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		p.shouldStop = true
		return true

	case *sdl.MouseMotionEvent:
		if e.WindowID != p.windowID {
			return false
		}
		// SDL routes touch through the mouse path with a sentinel
		// device id; remember the source so cursor-shape updates can
		// be suppressed while a finger drives the pointer.
		p.touchActive = e.Which == sdl.TOUCH_MOUSEID
		p.hoveredWindowID = e.WindowID
		p.io.SetMousePosition(imgui.Vec2{X: float32(e.X), Y: float32(e.Y)})
		return true

	case *sdl.MouseWheelEvent:
		if e.WindowID != p.windowID {
			return false
		}
		// SDL's horizontal axis is inverted relative to the GUI
		// library's scroll convention.
		p.io.AddMouseWheelDelta(-float32(e.X), float32(e.Y))
		return true

	case *sdl.MouseButtonEvent:
		if e.WindowID != p.windowID {
			return false
		}
		index := buttonIndex(e.Button)
		if index < 0 {
			return false
		}
		down := e.Type == sdl.MOUSEBUTTONDOWN
		p.buttonMask = pressMask(p.buttonMask, index, down)
		p.io.SetMouseButtonDown(index, down)
		return true

	case *sdl.TextInputEvent:
		if e.WindowID != p.windowID {
			return false
		}
		p.io.AddInputCharacters(e.GetText())
		return true

	case *sdl.KeyboardEvent:
		if e.WindowID != p.windowID {
			return false
		}
		scancode := int(e.Keysym.Scancode)
		if scancode >= 0 && scancode < maxScancodes {
			if e.Type == sdl.KEYDOWN {
				p.io.KeyPress(scancode)
			} else {
				p.io.KeyRelease(scancode)
			}
		}
		p.updateKeyModifiers()
		return true

	case *sdl.WindowEvent:
		if e.WindowID != p.windowID {
			return false
		}
		switch e.Event {
		case sdl.WINDOWEVENT_ENTER:
			p.hoveredWindowID = e.WindowID
			p.pendingLeave.Cancel()
		case sdl.WINDOWEVENT_LEAVE:
			p.pendingLeave.Arm(p.frame)
		case sdl.WINDOWEVENT_FOCUS_LOST:
			p.releasePointerButtons()
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			// The event payload is in logical points; resize consumers
			// cache device-pixel geometry, so re-query the drawable.
			if p.onResize != nil {
				if dw, dh, err := p.renderer.GetOutputSize(); err == nil {
					p.onResize(int(dw), int(dh))
				}
			}
		case sdl.WINDOWEVENT_CLOSE:
			p.shouldStop = true
		}
		return true
	}
	return false
}

// NewFrame publishes per-frame input state to the GUI library. Called
// once per loop iteration before the GUI frame begins.
func (p *SDL) NewFrame() {
	now := time.Now()
	if p.lastFrame.IsZero() {
		p.io.SetDeltaTime(1.0 / 60.0)
	} else if dt := float32(now.Sub(p.lastFrame).Seconds()); dt > 0 {
		p.io.SetDeltaTime(dt)
	} else {
		p.io.SetDeltaTime(1.0 / 60.0)
	}
	p.lastFrame = now

	w, h := p.window.GetSize()
	if w > 0 && h > 0 {
		p.io.SetDisplaySize(imgui.Vec2{X: float32(w), Y: float32(h)})
	}
	if dw, dh, err := p.renderer.GetOutputSize(); err == nil {
		p.scale[0], p.scale[1] = framebufferScale(w, h, dw, dh)
	}

	if p.pendingLeave.Fire(p.frame) {
		p.hoveredWindowID = 0
		p.io.SetMousePosition(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
	}

	p.syncTextInput()
	p.syncCursor()

	// Advance only after the Fire check: a leave armed during this
	// iteration's event poll must survive one more full poll, so that a
	// re-enter in the next batch can still cancel it.
	p.frame++
}

// updateKeyModifiers merges the left and right modifier variants into
// the GUI library's single ctrl/shift/alt/super flags.
func (p *SDL) updateKeyModifiers() {
	mod := sdl.GetModState()
	pick := func(mask sdl.Keymod, scancode sdl.Scancode) int {
		if mod&mask != 0 {
			return int(scancode)
		}
		return 0
	}
	p.io.KeyShift(pick(sdl.KMOD_LSHIFT, sdl.SCANCODE_LSHIFT), pick(sdl.KMOD_RSHIFT, sdl.SCANCODE_RSHIFT))
	p.io.KeyCtrl(pick(sdl.KMOD_LCTRL, sdl.SCANCODE_LCTRL), pick(sdl.KMOD_RCTRL, sdl.SCANCODE_RCTRL))
	p.io.KeyAlt(pick(sdl.KMOD_LALT, sdl.SCANCODE_LALT), pick(sdl.KMOD_RALT, sdl.SCANCODE_RALT))
	p.io.KeySuper(pick(sdl.KMOD_LGUI, sdl.SCANCODE_LGUI), pick(sdl.KMOD_RGUI, sdl.SCANCODE_RGUI))
}

// releasePointerButtons drops every tracked pressed button, e.g. when
// the window loses OS focus mid-drag.
func (p *SDL) releasePointerButtons() {
	for i := 0; i < 5; i++ {
		if p.buttonMask&(1<<uint(i)) != 0 {
			p.io.SetMouseButtonDown(i, false)
		}
	}
	p.buttonMask = 0
}

// syncTextInput toggles SDL text input to match the GUI library's
// request. Edge triggered: SDL pops up on-screen keyboards on some
// platforms, so the call is only issued when the state changes.
func (p *SDL) syncTextInput() {
	want := p.io.WantTextInput()
	if want == p.textInput {
		return
	}
	if want {
		sdl.StartTextInput()
	} else {
		sdl.StopTextInput()
	}
	p.textInput = want
}

// syncCursor applies the GUI library's requested cursor shape, issuing
// native calls only when the shape differs from the last applied one.
func (p *SDL) syncCursor() {
	if p.touchActive {
		return
	}
	want := imgui.MouseCursor()
	if want == p.lastCursor {
		return
	}
	if want == imgui.MouseCursorNone {
		_, _ = sdl.ShowCursor(sdl.DISABLE)
	} else {
		sdl.SetCursor(p.systemCursor(want))
		_, _ = sdl.ShowCursor(sdl.ENABLE)
	}
	p.lastCursor = want
}

// systemCursor returns the native cursor for a GUI cursor id, creating
// it on first use.
func (p *SDL) systemCursor(cursor imgui.MouseCursorID) *sdl.Cursor {
	if cursor < 0 || int(cursor) >= len(p.cursors) {
		cursor = imgui.MouseCursorArrow
	}
	if p.cursors[cursor] == nil {
		p.cursors[cursor] = sdl.CreateSystemCursor(cursorShape(cursor))
	}
	return p.cursors[cursor]
}

// Dispose releases native resources in reverse-acquisition order:
// cursors, renderer, window, then the SDL video subsystem.
func (p *SDL) Dispose() {
	for i, c := range p.cursors {
		if c != nil {
			sdl.FreeCursor(c)
			p.cursors[i] = nil
		}
	}
	if p.renderer != nil {
		_ = p.renderer.Destroy()
		p.renderer = nil
	}
	if p.window != nil {
		_ = p.window.Destroy()
		p.window = nil
	}
	sdl.Quit()
}

// clipboard bridges the GUI library's copy/paste to the SDL clipboard.
type clipboard struct{}

func (clipboard) Text() (string, error) { return sdl.GetClipboardText() }

func (clipboard) SetText(value string) { _ = sdl.SetClipboardText(value) }
