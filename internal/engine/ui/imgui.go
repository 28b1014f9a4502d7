// Package ui owns the window through the cimgui-go SDL backend and exposes
// imgui's key and mouse state as an input source.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/motorino/internal/engine/input"
	"github.com/Faultbox/motorino/internal/logger"
)

// Backend wraps the ImGui SDL backend. It creates the window and GL
// context and drives the frame loop.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
}

// NewBackend creates the window and initialises OpenGL.
func NewBackend(title string, width, height int) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetBgColor(imgui.NewVec4(0, 0, 0, 1))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	logger.Named("ui").Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))
	return b, nil
}

// Run calls frame once per frame inside an imgui frame until the window
// closes.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// DrawableSize returns the window size in pixels, accounting for HiDPI
// scaling. Valid only inside a frame.
func DrawableSize() (width, height int) {
	io := imgui.CurrentIO()
	size := io.DisplaySize()
	scale := io.DisplayFramebufferScale()
	return int(size.X * scale.X), int(size.Y * scale.Y)
}

var imguiKeys = map[input.Key]imgui.Key{
	input.KeyW:      imgui.KeyW,
	input.KeyA:      imgui.KeyA,
	input.KeyS:      imgui.KeyS,
	input.KeyD:      imgui.KeyD,
	input.KeySpace:  imgui.KeySpace,
	input.KeySlash:  imgui.KeySlash,
	input.KeyEscape: imgui.KeyEscape,
	input.KeyEnter:  imgui.KeyEnter,
	input.KeyTab:    imgui.KeyTab,
	input.KeyUp:     imgui.KeyUpArrow,
	input.KeyDown:   imgui.KeyDownArrow,
	input.KeyLeft:   imgui.KeyLeftArrow,
	input.KeyRight:  imgui.KeyRightArrow,
	input.KeyF1:     imgui.KeyF1,
	input.KeyF2:     imgui.KeyF2,
	input.KeyF3:     imgui.KeyF3,
	input.KeyF4:     imgui.KeyF4,
	input.KeyF5:     imgui.KeyF5,
	input.KeyF6:     imgui.KeyF6,
	input.KeyF7:     imgui.KeyF7,
	input.KeyF8:     imgui.KeyF8,
	input.KeyF9:     imgui.KeyF9,
	input.KeyF10:    imgui.KeyF10,
	input.KeyF11:    imgui.KeyF11,
	input.KeyF12:    imgui.KeyF12,
}

var imguiButtons = map[input.MouseButton]imgui.MouseButton{
	input.MouseLeft:   imgui.MouseButtonLeft,
	input.MouseRight:  imgui.MouseButtonRight,
	input.MouseMiddle: imgui.MouseButtonMiddle,
}

// Input reads key and mouse state from the current imgui frame. Keys are
// reported up while an imgui widget has keyboard focus, so typing into
// the overlay does not move the player.
type Input struct{}

func (Input) IsKeyDown(k input.Key) bool {
	ik, ok := imguiKeys[k]
	if !ok || imgui.CurrentIO().WantCaptureKeyboard() {
		return false
	}
	return imgui.IsKeyDown(ik)
}

func (Input) IsMouseDown(b input.MouseButton) bool {
	ib, ok := imguiButtons[b]
	return ok && imgui.IsMouseDown(ib)
}

func (Input) CursorPos() input.Cursor {
	p := imgui.MousePos()
	return input.Cursor{X: p.X, Y: p.Y}
}
