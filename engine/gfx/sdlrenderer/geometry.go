package sdlrenderer

import (
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

// vertexLayout describes the byte layout of the GUI library's vertex
// records, as reported by its vertex-buffer layout query.
type vertexLayout struct {
	stride    int
	posOffset int
	uvOffset  int
	colOffset int
}

// decodeColor splits a packed 0xAABBGGRR vertex color into byte channels.
func decodeColor(packed uint32) sdl.Color {
	return sdl.Color{
		R: uint8(packed),
		G: uint8(packed >> 8),
		B: uint8(packed >> 16),
		A: uint8(packed >> 24),
	}
}

// readIndex reads the i-th entry of an index sub-range. The GUI library
// emits 16-bit indices by default but can be compiled for 32-bit.
func readIndex(data unsafe.Pointer, indexSize, i int) int {
	addr := unsafe.Add(data, i*indexSize)
	if indexSize == 2 {
		return int(*(*uint16)(addr))
	}
	return int(*(*uint32)(addr))
}

// rebuildBatch extracts the minimal contiguous vertex run referenced by
// one draw command and rewrites the command's indices relative to that
// run. The native renderer takes flat vertex/index arrays with no
// base-vertex offset, so submitting the shared buffer directly would
// re-upload every vertex below the referenced range on each call.
//
// vtx points at the start of the list's shared vertex buffer; idx points
// at the command's first index. Positions are converted from logical
// units to device pixels with scaleX/scaleY.
func rebuildBatch(vtx unsafe.Pointer, layout vertexLayout, idx unsafe.Pointer, indexSize, elemCount int, scaleX, scaleY float32) ([]sdl.Vertex, []int32) {
	if elemCount <= 0 {
		return nil, nil
	}

	minIdx := readIndex(idx, indexSize, 0)
	maxIdx := minIdx
	for i := 1; i < elemCount; i++ {
		v := readIndex(idx, indexSize, i)
		if v < minIdx {
			minIdx = v
		}
		if v > maxIdx {
			maxIdx = v
		}
	}

	verts := make([]sdl.Vertex, maxIdx-minIdx+1)
	for i := range verts {
		rec := unsafe.Add(vtx, (minIdx+i)*layout.stride)
		pos := (*[2]float32)(unsafe.Add(rec, layout.posOffset))
		uv := (*[2]float32)(unsafe.Add(rec, layout.uvOffset))
		col := *(*uint32)(unsafe.Add(rec, layout.colOffset))
		verts[i] = sdl.Vertex{
			Position: sdl.FPoint{X: pos[0] * scaleX, Y: pos[1] * scaleY},
			Color:    decodeColor(col),
			TexCoord: sdl.FPoint{X: uv[0], Y: uv[1]},
		}
	}

	indices := make([]int32, elemCount)
	for i := range indices {
		indices[i] = int32(readIndex(idx, indexSize, i) - minIdx)
	}
	return verts, indices
}

// clampClip transforms a clip rectangle from GUI logical coordinates
// (x1,y1)-(x2,y2) into device pixels and clamps it to the framebuffer.
// ok is false when the clipped region is empty.
func clampClip(x1, y1, x2, y2, scaleX, scaleY, fbW, fbH float32) (rect sdl.Rect, ok bool) {
	x1 *= scaleX
	y1 *= scaleY
	x2 *= scaleX
	y2 *= scaleY
	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 > fbW {
		x2 = fbW
	}
	if y2 > fbH {
		y2 = fbH
	}
	if x2 <= x1 || y2 <= y1 {
		return sdl.Rect{}, false
	}
	return sdl.Rect{X: int32(x1), Y: int32(y1), W: int32(x2 - x1), H: int32(y2 - y1)}, true
}
