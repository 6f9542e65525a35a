package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/inkyblackness/imgui-go/v4"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/behindcurtain3/sdlimgui/engine/core"
	"github.com/behindcurtain3/sdlimgui/engine/gfx/sdlrenderer"
	"github.com/behindcurtain3/sdlimgui/engine/platform"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := core.LoadConfig("sandbox.toml")
	if err != nil {
		log.Fatal(err)
	}

	ctx := imgui.CreateContext(nil)
	defer ctx.Destroy()
	io := imgui.CurrentIO()
	io.Fonts().AddFontFromMemoryTTFV(goregular.TTF, 16, imgui.DefaultFontConfig, imgui.EmptyGlyphRanges)

	plat, err := platform.NewSDL(io, cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer plat.Dispose()

	rend, err := sdlrenderer.New(plat.Renderer(), io, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer rend.Dispose()

	app := &demo{log: logger, plat: plat, rend: rend}
	if err := core.Run(app, cfg, plat, rend); err != nil {
		log.Fatal(err)
	}
}
