package sdlrenderer

import (
	"testing"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/veandco/go-sdl2/sdl"
)

func TestRestoreRect(t *testing.T) {
	tests := []struct {
		name     string
		v        sdl.Rect
		fbW, fbH int32
		wantNil  bool
	}{
		{"default full output", sdl.Rect{X: 0, Y: 0, W: 800, H: 600}, 800, 600, true},
		{"explicit sub-rect", sdl.Rect{X: 10, Y: 20, W: 100, H: 50}, 800, 600, false},
		{"full size but offset", sdl.Rect{X: 10, Y: 0, W: 800, H: 600}, 800, 600, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := restoreRect(tt.v, tt.fbW, tt.fbH)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("restoreRect = %+v, want nil", *got)
				}
				return
			}
			if got == nil {
				t.Fatal("restoreRect = nil, want explicit rect")
			}
			if *got != tt.v {
				t.Errorf("restoreRect = %+v, want %+v", *got, tt.v)
			}
		})
	}
}

func TestResizeRecomputesClearRect(t *testing.T) {
	r := &Renderer{}
	r.Resize(800, 600)
	r.Resize(400, 300)
	want := sdl.Rect{X: 0, Y: 0, W: 400, H: 300}
	if r.clearRect != want {
		t.Errorf("clearRect = %+v, want %+v", r.clearRect, want)
	}
}

func TestColorByte(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{0, 0},
		{1, 255},
		{0.5, 127},
		{-1, 0},
		{2, 255},
	}
	for _, tt := range tests {
		if got := colorByte(tt.in); got != tt.want {
			t.Errorf("colorByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTextureRegistry(t *testing.T) {
	r := &Renderer{
		textures:   make(map[imgui.TextureID]*sdl.Texture),
		nextID:     1,
		unknownTex: make(map[imgui.TextureID]bool),
	}
	id := r.BindTexture(nil)
	if id == 0 {
		t.Fatal("BindTexture returned the reserved zero id")
	}
	id2 := r.BindTexture(nil)
	if id2 == id {
		t.Fatal("BindTexture reused an id")
	}
	r.UnbindTexture(id)
	if _, ok := r.textures[id]; ok {
		t.Error("UnbindTexture left the id registered")
	}
}
