package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"unsafe"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/behindcurtain3/sdlimgui/engine/assets"
	"github.com/behindcurtain3/sdlimgui/engine/colors"
	"github.com/behindcurtain3/sdlimgui/engine/core"
	"github.com/behindcurtain3/sdlimgui/engine/gfx/sdlrenderer"
	"github.com/behindcurtain3/sdlimgui/engine/platform"
)

const bgTexSize = 256

// demo exercises the backend: widgets for the input paths, an Image for
// the user-texture path, and native drawing underneath the UI.
type demo struct {
	log  *slog.Logger
	plat *platform.SDL
	rend *sdlrenderer.Renderer

	bgTex *sdl.Texture
	bgID  imgui.TextureID

	name     string
	slider   float32
	clicks   int
	showDemo bool
}

func (d *demo) OnStart(e *core.Engine) error {
	w, h := bgTexSize, bgTexSize
	pixels := assets.Checkerboard(w, h, 32,
		color.RGBA{R: 38, G: 50, B: 56, A: 255},
		color.RGBA{R: 55, G: 71, B: 79, A: 255})

	// A real background image takes precedence over the checker.
	if iw, ih, data, err := assets.LoadPNG("background.png"); err == nil {
		w, h, pixels = iw, ih, data
	}

	tex, err := d.plat.Renderer().CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STATIC,
		int32(w), int32(h))
	if err != nil {
		return fmt.Errorf("create background texture: %w", err)
	}
	if len(pixels) == 0 || len(pixels) < w*h*4 {
		_ = tex.Destroy()
		return fmt.Errorf("background pixels truncated: %d bytes for %dx%d", len(pixels), w, h)
	}
	if err := tex.Update(nil, unsafe.Pointer(&pixels[0]), w*4); err != nil {
		_ = tex.Destroy()
		return fmt.Errorf("upload background texture: %w", err)
	}
	d.bgTex = tex
	d.bgID = d.rend.BindTexture(tex)
	d.slider = 0.5
	return nil
}

func (d *demo) OnUI(e *core.Engine) {
	if imgui.Begin("Sandbox") {
		imgui.Text(fmt.Sprintf("%.1f ms/frame (%.0f FPS)",
			1000.0/imgui.CurrentIO().Framerate(), imgui.CurrentIO().Framerate()))
		if imgui.Button("Click me") {
			d.clicks++
		}
		imgui.Text(fmt.Sprintf("clicks: %d", d.clicks))
		imgui.SliderFloat("sweep", &d.slider, 0, 1)
		imgui.InputText("name", &d.name)
		imgui.Checkbox("demo window", &d.showDemo)
		imgui.Image(d.bgID, imgui.Vec2{X: 128, Y: 128})
	}
	imgui.End()

	if d.showDemo {
		imgui.ShowDemoWindow(&d.showDemo)
	}
}

// OnBackground draws native content under the UI: the tiled background
// texture and an animated sweep bar, both with plain SDL calls.
func (d *demo) OnBackground(e *core.Engine) {
	r := d.plat.Renderer()
	fb := d.plat.FramebufferSize()

	if d.bgTex != nil {
		dst := sdl.Rect{
			X: int32(fb[0]) - bgTexSize - 16,
			Y: int32(fb[1]) - bgTexSize - 16,
			W: bgTexSize, H: bgTexSize,
		}
		if err := r.Copy(d.bgTex, nil, &dst); err != nil {
			d.log.Warn("background copy failed", "err", err)
		}
	}

	phase := float32(math.Sin(e.Uptime().Seconds()))*0.5 + 0.5
	cr, cg, cb, ca := colors.Green.WithAlpha(0.6).RGBA8()
	_ = r.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	_ = r.SetDrawColor(cr, cg, cb, ca)
	bar := sdl.Rect{
		X: 16, Y: int32(fb[1]) - 24,
		W: int32(phase * d.slider * (fb[0] - 32)), H: 8,
	}
	if bar.W > 0 {
		_ = r.FillRect(&bar)
	}
}

func (d *demo) OnShutdown(e *core.Engine) {
	if d.bgTex != nil {
		d.rend.UnbindTexture(d.bgID)
		_ = d.bgTex.Destroy()
		d.bgTex = nil
	}
}
