package core

import (
	"time"

	"github.com/inkyblackness/imgui-go/v4"
)

// App defines the application hooks driven once per frame.
type App interface {
	OnStart(e *Engine) error // called once after window/renderer init
	OnUI(e *Engine)          // build GUI content between NewFrame and Render
	OnBackground(e *Engine)  // native drawing underneath the UI
	OnShutdown(e *Engine)    // before exit
}

// Engine exposes core services to the App.
type Engine struct {
	Platform Platform
	Renderer Renderer
	start    time.Time
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Platform abstracts the native window: event polling, input translation
// into the GUI library, and presentation.
type Platform interface {
	// ProcessEvents drains pending native events and feeds them to the
	// GUI library's input state.
	ProcessEvents()
	// NewFrame publishes per-frame input state (delta time, display
	// size, deferred pointer-leave, cursor shape, text-input mode).
	NewFrame()
	// PostRender presents the backbuffer.
	PostRender()
	ShouldStop() bool
	DisplaySize() [2]float32
	FramebufferSize() [2]float32
	// SetResizeCallback registers a window-resize hook; the reported
	// dimensions are in device pixels.
	SetResizeCallback(cb func(w, h int))
	Dispose()
}

// Renderer abstracts the draw-command translation backend.
type Renderer interface {
	// NewFrame creates device objects that must exist before the GUI
	// library begins a frame (font atlas upload on first call).
	NewFrame()
	// PreRender clears the backbuffer to the given color.
	PreRender(clear [4]float32)
	// Render translates one frame of finalized draw data into native
	// draw calls. Per-command failures are reported, not fatal.
	Render(displaySize, framebufferSize [2]float32, drawData imgui.DrawData)
	// Resize recomputes cached full-window geometry after a window
	// size change. Dimensions are in device pixels.
	Resize(w, h int)
	Dispose()
}

// Config for the engine run.
type Config struct {
	Title      string     `toml:"title"`
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	VSync      bool       `toml:"vsync"`
	ClearColor [4]float32 `toml:"clear_color"` // RGBA
}
