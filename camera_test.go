package nexus

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraActivationAllocatesResources(t *testing.T) {
	gpu := &fakeAllocator{}
	cam := NewOrthoCamera(gpu)
	cam.SetViewportSize(800, 600)

	if cam.IsActive() {
		t.Fatal("camera active before OnActivate")
	}
	if cam.GetViewProjectionDescriptorSet() != nil {
		t.Fatal("inert camera returned a descriptor set")
	}

	if err := cam.OnActivate(); err != nil {
		t.Fatal(err)
	}
	if !cam.IsActive() {
		t.Fatal("camera inert after OnActivate")
	}
	if len(gpu.buffers) != 1 || len(gpu.layouts) != 1 || len(gpu.sets) != 1 {
		t.Fatalf("allocated %d buffers, %d layouts, %d sets; want 1 each",
			len(gpu.buffers), len(gpu.layouts), len(gpu.sets))
	}
	if gpu.buffers[0].updates != 1 {
		t.Errorf("uniform buffer written %d times at activation, want 1", gpu.buffers[0].updates)
	}
	if len(gpu.buffers[0].lastData) != ViewProjectionUBOSize {
		t.Errorf("initial upload was %d bytes, want %d", len(gpu.buffers[0].lastData), ViewProjectionUBOSize)
	}

	// Idempotent: a second activation allocates nothing.
	if err := cam.OnActivate(); err != nil {
		t.Fatal(err)
	}
	if len(gpu.buffers) != 1 {
		t.Errorf("second OnActivate allocated another buffer")
	}
}

func TestCameraDeactivationReleasesResources(t *testing.T) {
	gpu := &fakeAllocator{}
	cam := NewOrthoCamera(gpu)
	cam.SetViewportSize(800, 600)
	if err := cam.OnActivate(); err != nil {
		t.Fatal(err)
	}

	cam.OnDeactivate()
	if cam.IsActive() {
		t.Fatal("camera still active after OnDeactivate")
	}
	if !gpu.buffers[0].destroyed {
		t.Error("uniform buffer not destroyed")
	}
	if !gpu.layouts[0].destroyed {
		t.Error("descriptor layout not destroyed")
	}
	if cam.GetViewProjectionDescriptorSet() != nil {
		t.Error("deactivated camera still returns a descriptor set")
	}

	// Idempotent, and the camera can be re-activated afterwards.
	cam.OnDeactivate()
	if err := cam.OnActivate(); err != nil {
		t.Fatal(err)
	}
	if len(gpu.buffers) != 2 {
		t.Errorf("re-activation allocated %d buffers total, want 2", len(gpu.buffers))
	}
}

func TestCameraActivationFailureRollsBack(t *testing.T) {
	cases := []struct {
		name string
		gpu  *fakeAllocator
	}{
		{"buffer", &fakeAllocator{failBuffer: true}},
		{"layout", &fakeAllocator{failLayout: true}},
		{"set", &fakeAllocator{failSet: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cam := NewOrthoCamera(tc.gpu)
			cam.SetViewportSize(800, 600)

			if err := cam.OnActivate(); err == nil {
				t.Fatal("expected activation error")
			}
			if cam.IsActive() {
				t.Error("camera active after failed activation")
			}
			if cam.GetViewProjectionDescriptorSet() != nil {
				t.Error("failed activation left a descriptor set behind")
			}
			for i, b := range tc.gpu.buffers {
				if !b.destroyed {
					t.Errorf("buffer %d leaked by failed activation", i)
				}
			}
			for i, l := range tc.gpu.layouts {
				if !l.destroyed {
					t.Errorf("layout %d leaked by failed activation", i)
				}
			}
		})
	}
}

func TestCameraUploadsOncePerChange(t *testing.T) {
	gpu := &fakeAllocator{}
	cam := NewOrthoCamera(gpu)
	cam.SetViewportSize(800, 600)
	if err := cam.OnActivate(); err != nil {
		t.Fatal(err)
	}
	buf := gpu.buffers[0]
	base := buf.updates // the activation populate

	// Clean camera: repeated reads upload nothing.
	cam.GetViewProjectionMatrix()
	cam.GetViewProjectionMatrix()
	if buf.updates != base {
		t.Fatalf("clean reads uploaded %d times", buf.updates-base)
	}

	// One committed move, one upload, regardless of read count.
	cam.SetPosition(mgl32.Vec3{1, 2, 3})
	cam.ApplyUpdates(0.016)
	cam.GetViewProjectionMatrix()
	cam.GetViewProjectionMatrix()
	if buf.updates != base+1 {
		t.Errorf("one move produced %d uploads, want 1", buf.updates-base)
	}

	// An empty update pass uploads nothing.
	cam.ApplyUpdates(0.016)
	cam.GetViewProjectionMatrix()
	if buf.updates != base+1 {
		t.Errorf("empty update pass forced an upload")
	}
}

func TestCameraResizeToleranceSkipsUpload(t *testing.T) {
	gpu := &fakeAllocator{}
	cam := NewOrthoCamera(gpu)
	cam.SetViewportSize(800, 600)
	if err := cam.OnActivate(); err != nil {
		t.Fatal(err)
	}
	buf := gpu.buffers[0]
	base := buf.updates

	cam.SetViewportSize(800.005, 600.005)
	cam.GetViewProjectionMatrix()
	if buf.updates != base {
		t.Error("near-identical resize forced a matrix upload")
	}

	cam.SetViewportSize(1024, 768)
	cam.GetViewProjectionMatrix()
	if buf.updates != base+1 {
		t.Errorf("real resize produced %d uploads, want 1", buf.updates-base)
	}
}

func TestCameraUploadFailureKeepsRunning(t *testing.T) {
	gpu := &fakeAllocator{}
	cam := NewOrthoCamera(gpu)
	cam.SetViewportSize(800, 600)
	if err := cam.OnActivate(); err != nil {
		t.Fatal(err)
	}

	gpu.buffers[0].failNext = true
	cam.SetPosition(mgl32.Vec3{5, 0, 0})
	cam.ApplyUpdates(0.016)
	cam.GetViewProjectionMatrix() // must not panic

	if !cam.IsActive() {
		t.Error("upload failure deactivated the camera")
	}
}

func TestCameraGetViewport(t *testing.T) {
	gpu := &fakeAllocator{}
	cam := NewOrthoCamera(gpu)
	cam.SetViewportSize(800, 600)

	vp := cam.GetViewport()
	if vp.Extent.Width != 800 || vp.Extent.Height != 600 {
		t.Errorf("full screen viewport = %dx%d, want 800x600", vp.Extent.Width, vp.Extent.Height)
	}
	if vp.RenderPassMask != RenderPassMain {
		t.Errorf("viewport mask = %#x, want %#x", vp.RenderPassMask, RenderPassMain)
	}

	cam.SetScreenRegion(ScreenRegion{X: 0, Y: 0, Width: 0.5, Height: 0.5})
	cam.SetClearColor(mgl32.Vec4{0.1, 0.2, 0.3, 1})
	cam.ApplyUpdates(0.016)

	vp = cam.GetViewport()
	if vp.Extent.Width != 400 || vp.Extent.Height != 300 {
		t.Errorf("half region viewport = %dx%d, want 400x300", vp.Extent.Width, vp.Extent.Height)
	}
	if vp.ClearColor != (mgl32.Vec4{0.1, 0.2, 0.3, 1}) {
		t.Errorf("viewport clear color = %v", vp.ClearColor)
	}
}

func TestCameraCommonParametersAreDeferred(t *testing.T) {
	cam := NewOrthoCamera(&fakeAllocator{})

	cam.SetRenderPriority(5)
	if cam.RenderPriority() != 0 {
		t.Error("render priority changed before ApplyUpdates")
	}
	cam.ApplyUpdates(0.016)
	if cam.RenderPriority() != 5 {
		t.Errorf("render priority = %d after ApplyUpdates, want 5", cam.RenderPriority())
	}
}
