package sdlrenderer

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/behindcurtain3/sdlimgui/engine/core"
)

// Renderer translates the GUI library's per-frame draw data into SDL
// 2D-renderer draw calls. It owns the font atlas texture and the
// registry that maps opaque texture ids to native textures; every other
// renderer resource belongs to the caller.
type Renderer struct {
	io     imgui.IO
	log    *slog.Logger
	native *sdl.Renderer

	textures  map[imgui.TextureID]*sdl.Texture
	nextID    imgui.TextureID
	fontTexID imgui.TextureID

	// full-window rect used as the render-clear baseline; recomputed
	// on window resize.
	clearRect sdl.Rect

	unknownTex map[imgui.TextureID]bool
}

var _ core.Renderer = (*Renderer)(nil)

// New wraps an SDL renderer as the GUI draw backend.
func New(native *sdl.Renderer, io imgui.IO, logger *slog.Logger) (*Renderer, error) {
	if native == nil {
		return nil, fmt.Errorf("sdlrenderer: nil native renderer")
	}
	if logger == nil {
		logger = slog.Default()
	}
	r := &Renderer{
		io:         io,
		log:        logger,
		native:     native,
		textures:   make(map[imgui.TextureID]*sdl.Texture),
		nextID:     1,
		unknownTex: make(map[imgui.TextureID]bool),
	}
	if w, h, err := native.GetOutputSize(); err == nil {
		r.clearRect = sdl.Rect{W: w, H: h}
	}
	return r, nil
}

// NewFrame creates device objects that must exist before the GUI library
// begins a frame. The font atlas is built exactly once, on the first
// frame; a failed upload is reported and retried next frame.
func (r *Renderer) NewFrame() {
	if r.fontTexID == 0 {
		if err := r.createFontTexture(); err != nil {
			r.log.Error("font atlas upload failed", "err", err)
		}
	}
}

// createFontTexture rasterizes the GUI library's default font into an
// RGBA bitmap, uploads it as a static texture with linear filtering and
// alpha blending, and publishes its registry id as the atlas texture.
func (r *Renderer) createFontTexture() error {
	img := r.io.Fonts().TextureDataRGBA32()
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("font atlas has no pixels")
	}

	tex, err := r.native.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STATIC,
		int32(img.Width), int32(img.Height))
	if err != nil {
		return fmt.Errorf("create font texture %dx%d: %w", img.Width, img.Height, err)
	}
	if err := tex.Update(nil, img.Pixels, img.Width*4); err != nil {
		_ = tex.Destroy()
		return fmt.Errorf("upload font texture: %w", err)
	}
	_ = tex.SetBlendMode(sdl.BLENDMODE_BLEND)
	_ = tex.SetScaleMode(sdl.ScaleModeLinear)

	id := r.BindTexture(tex)
	r.io.Fonts().SetTextureID(id)
	r.fontTexID = id
	r.log.Info("font atlas uploaded", "width", img.Width, "height", img.Height)
	return nil
}

// BindTexture registers a native texture and returns the opaque id the
// GUI library uses to reference it in draw commands. The registry keeps
// native pointers out of the GUI library's opaque handles.
func (r *Renderer) BindTexture(tex *sdl.Texture) imgui.TextureID {
	id := r.nextID
	r.nextID++
	r.textures[id] = tex
	return id
}

// UnbindTexture forgets a previously bound texture. The caller keeps
// ownership of the native texture.
func (r *Renderer) UnbindTexture(id imgui.TextureID) {
	delete(r.textures, id)
}

// Resize recomputes the cached full-window rect used by PreRender.
func (r *Renderer) Resize(w, h int) {
	r.clearRect = sdl.Rect{X: 0, Y: 0, W: int32(w), H: int32(h)}
}

// PreRender clears the backbuffer to the given color within the cached
// full-window rect.
func (r *Renderer) PreRender(clear [4]float32) {
	_ = r.native.SetDrawColor(colorByte(clear[0]), colorByte(clear[1]), colorByte(clear[2]), colorByte(clear[3]))
	if err := r.native.FillRect(&r.clearRect); err != nil {
		r.log.Warn("backbuffer clear failed", "err", err)
	}
}

// Render issues native draw calls for one frame of finalized draw data.
// The native renderer's viewport/clip state is snapshotted first and
// restored afterwards, so surrounding application drawing is unaffected.
func (r *Renderer) Render(displaySize, framebufferSize [2]float32, drawData imgui.DrawData) {
	fbWidth, fbHeight := framebufferSize[0], framebufferSize[1]
	if fbWidth <= 0 || fbHeight <= 0 {
		return
	}
	lists := drawData.CommandLists()
	if len(lists) == 0 {
		return
	}

	scaleX, scaleY := float32(1), float32(1)
	if displaySize[0] > 0 && displaySize[1] > 0 {
		scaleX = fbWidth / displaySize[0]
		scaleY = fbHeight / displaySize[1]
	}

	entrySize, posOffset, uvOffset, colOffset := imgui.VertexBufferLayout()
	layout := vertexLayout{stride: entrySize, posOffset: posOffset, uvOffset: uvOffset, colOffset: colOffset}
	indexSize := imgui.IndexBufferLayout()

	snap := r.snapshotState()
	_ = r.native.SetViewport(nil)
	_ = r.native.SetClipRect(nil)
	_ = r.native.SetDrawBlendMode(sdl.BLENDMODE_BLEND)

	for _, list := range lists {
		vtxPtr, _ := list.VertexBuffer()
		idxPtr, _ := list.IndexBuffer()

		indexOffset := 0
		for _, cmd := range list.Commands() {
			elemCount := cmd.ElementCount()
			if cmd.HasUserCallback() {
				// The SDL 2D renderer exposes no state a user draw
				// callback could drive; skip the command but keep
				// the index cursor aligned.
				r.log.Warn("user draw callback skipped")
				indexOffset += elemCount
				continue
			}
			if elemCount == 0 {
				continue
			}

			clipRect := cmd.ClipRect()
			clip, ok := clampClip(clipRect.X, clipRect.Y, clipRect.Z, clipRect.W,
				scaleX, scaleY, fbWidth, fbHeight)
			if !ok {
				indexOffset += elemCount
				continue
			}

			verts, indices := rebuildBatch(vtxPtr, layout,
				unsafe.Add(idxPtr, indexOffset*indexSize), indexSize, elemCount,
				scaleX, scaleY)

			_ = r.native.SetClipRect(&clip)
			tex := r.resolveTexture(cmd.TextureID())
			if err := r.native.RenderGeometry(tex, verts, indices); err != nil {
				r.log.Warn("draw command failed", "elements", elemCount, "err", err)
			}
			indexOffset += elemCount
		}
	}

	r.restoreState(snap, int32(fbWidth), int32(fbHeight))
}

// resolveTexture maps an opaque texture id back to its native texture.
// Unknown ids render untextured and are reported once per id.
func (r *Renderer) resolveTexture(id imgui.TextureID) *sdl.Texture {
	tex, ok := r.textures[id]
	if !ok && !r.unknownTex[id] {
		r.unknownTex[id] = true
		r.log.Warn("draw command references unknown texture", "id", id)
	}
	return tex
}

// Dispose destroys the font atlas texture. Safe to call even when the
// atlas was never built.
func (r *Renderer) Dispose() {
	if r.fontTexID == 0 {
		return
	}
	if tex := r.textures[r.fontTexID]; tex != nil {
		_ = tex.Destroy()
	}
	delete(r.textures, r.fontTexID)
	r.io.Fonts().SetTextureID(0)
	r.fontTexID = 0
}

// stateSnapshot captures the renderer state mutated during translation.
type stateSnapshot struct {
	viewport    sdl.Rect
	clip        sdl.Rect
	clipEnabled bool
}

func (r *Renderer) snapshotState() stateSnapshot {
	return stateSnapshot{
		viewport:    r.native.GetViewport(),
		clip:        r.native.GetClipRect(),
		clipEnabled: r.native.IsClipEnabled(),
	}
}

func (r *Renderer) restoreState(s stateSnapshot, fbW, fbH int32) {
	_ = r.native.SetViewport(restoreRect(s.viewport, fbW, fbH))
	if s.clipEnabled {
		_ = r.native.SetClipRect(&s.clip)
	} else {
		_ = r.native.SetClipRect(nil)
	}
}

// restoreRect returns nil when the captured viewport was the default
// full-output rect, so restoring resets the state instead of pinning
// the old default as an explicit override.
func restoreRect(v sdl.Rect, fbW, fbH int32) *sdl.Rect {
	if v.X == 0 && v.Y == 0 && v.W == fbW && v.H == fbH {
		return nil
	}
	return &v
}

func colorByte(f float32) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f * 255)
}
