package nexus

import (
	"fmt"

	"github.com/vulkan-go/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// WindowOptions configure the presentation window.
type WindowOptions struct {
	Title  string
	Width  int
	Height int
}

// Window owns the GLFW window and its vulkan surface. Framebuffer
// resizes are fanned out to whoever registers through OnResize,
// typically a CameraRegistry.
type Window struct {
	GLFWWindow *glfw.Window
	VKSurface  vk.Surface

	onResize []func(width, height float32)
}

// InitWindowing initializes GLFW and the vulkan loader. Call once,
// from the main goroutine, before creating any window.
func InitWindowing() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initializing glfw: %w", err)
	}
	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	if err := vk.Init(); err != nil {
		glfw.Terminate()
		return fmt.Errorf("initializing vulkan: %w", err)
	}
	return nil
}

// TerminateWindowing releases GLFW. Destroy all windows first.
func TerminateWindowing() {
	glfw.Terminate()
}

// RequiredInstanceExtensions returns the instance extensions the
// windowing system needs for surface creation. Pass each to
// App.EnableExtension before CreateInstance.
func RequiredInstanceExtensions() []string {
	return glfw.GetRequiredInstanceExtensions()
}

// CreateWindow creates a window without a client API context. The
// vulkan surface is created later, once an instance exists, through
// CreateSurface.
func CreateWindow(opts WindowOptions) (*Window, error) {
	if opts.Width <= 0 {
		opts.Width = 1280
	}
	if opts.Height <= 0 {
		opts.Height = 720
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	w := &Window{GLFWWindow: win}

	// Framebuffer size, not window size. On high-DPI displays the two
	// differ and the swapchain and cameras need pixels.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		for _, fn := range w.onResize {
			fn(float32(width), float32(height))
		}
	})

	return w, nil
}

// CreateSurface creates the vulkan surface for this window.
func (w *Window) CreateSurface(instance *Instance) error {
	surfPtr, err := w.GLFWWindow.CreateWindowSurface(instance.VKInstance, nil)
	if err != nil {
		return fmt.Errorf("creating window surface: %w", err)
	}
	w.VKSurface = vk.SurfaceFromPointer(surfPtr)
	return nil
}

// OnResize registers a callback invoked with the new framebuffer size
// in pixels whenever the window is resized.
func (w *Window) OnResize(fn func(width, height float32)) {
	w.onResize = append(w.onResize, fn)
}

// FramebufferSize returns the current framebuffer size in pixels.
func (w *Window) FramebufferSize() (width, height float32) {
	iw, ih := w.GLFWWindow.GetFramebufferSize()
	return float32(iw), float32(ih)
}

func (w *Window) ShouldClose() bool {
	return w.GLFWWindow.ShouldClose()
}

// PollEvents processes pending window events. Main goroutine only.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) Destroy(instance *Instance) {
	if w.VKSurface != vk.NullSurface {
		vk.DestroySurface(instance.VKInstance, w.VKSurface, nil)
		w.VKSurface = vk.NullSurface
	}
	w.GLFWWindow.Destroy()
}
