package core

import (
	"log"
	"runtime"
	"time"

	"github.com/inkyblackness/imgui-go/v4"
)

// Run executes the main loop: poll input, build a GUI frame, translate
// the resulting draw data, present. It returns when the platform
// observes a close/quit signal.
//
// Everything runs sequentially on one OS thread; neither the native
// layer nor the GUI library tolerates concurrent access to a context.
func Run(app App, cfg Config, p Platform, r Renderer) error {
	// Native windowing requires the main OS thread.
	runtime.LockOSThread()

	fb := p.FramebufferSize()
	r.Resize(int(fb[0]), int(fb[1]))
	p.SetResizeCallback(func(w, h int) {
		if w < 1 || h < 1 {
			return
		}
		r.Resize(w, h)
	})

	eng := &Engine{Platform: p, Renderer: r, start: time.Now()}
	if err := app.OnStart(eng); err != nil {
		return err
	}

	for !p.ShouldStop() {
		p.ProcessEvents()
		p.NewFrame()
		r.NewFrame()

		imgui.NewFrame()
		app.OnUI(eng)
		imgui.Render()

		r.PreRender(cfg.ClearColor)
		app.OnBackground(eng)
		r.Render(p.DisplaySize(), p.FramebufferSize(), imgui.RenderedDrawData())

		p.PostRender()
	}

	app.OnShutdown(eng)
	log.Println("Engine exit")
	return nil
}
