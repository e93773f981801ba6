package nexus

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Test doubles for the GPU facing interfaces. They count operations so
// tests can assert on lifecycle and upload behavior without a device.

type fakeBuffer struct {
	updates   int
	lastData  []byte
	destroyed bool
	failNext  bool
}

func (b *fakeBuffer) Update(data []byte) error {
	if b.failNext {
		b.failNext = false
		return fmt.Errorf("simulated upload failure")
	}
	b.updates++
	b.lastData = append(b.lastData[:0], data...)
	return nil
}

func (b *fakeBuffer) Destroy() { b.destroyed = true }

type fakeLayout struct {
	destroyed bool
}

func (l *fakeLayout) Destroy() { l.destroyed = true }

type fakeSet struct {
	valid bool
}

func (s *fakeSet) Valid() bool { return s.valid }

// fakeAllocator implements ResourceAllocator and can be told to fail at
// each allocation step.
type fakeAllocator struct {
	buffers []*fakeBuffer
	layouts []*fakeLayout
	sets    []*fakeSet

	failBuffer bool
	failLayout bool
	failSet    bool
}

func (a *fakeAllocator) CreateUniformBuffer(sizeInBytes uint64) (UniformBuffer, error) {
	if a.failBuffer {
		return nil, fmt.Errorf("simulated buffer allocation failure")
	}
	b := &fakeBuffer{}
	a.buffers = append(a.buffers, b)
	return b, nil
}

func (a *fakeAllocator) CreateUniformLayout(binding uint32) (DescriptorSetLayout, error) {
	if a.failLayout {
		return nil, fmt.Errorf("simulated layout creation failure")
	}
	l := &fakeLayout{}
	a.layouts = append(a.layouts, l)
	return l, nil
}

func (a *fakeAllocator) AllocateUniformSet(layout DescriptorSetLayout, buf UniformBuffer) (DescriptorSet, error) {
	if a.failSet {
		return nil, fmt.Errorf("simulated descriptor allocation failure")
	}
	s := &fakeSet{valid: true}
	a.sets = append(a.sets, s)
	return s, nil
}

// frameEvent is one recorded FrameRecorder call.
type frameEvent struct {
	op   string
	vp   Viewport
	set  DescriptorSet
	tint mgl32.Vec4
	cmd  DrawCommand
}

// recordingRecorder captures the renderer's output for inspection.
type recordingRecorder struct {
	events []frameEvent
}

func (r *recordingRecorder) BeginCameraPass(vp Viewport) error {
	r.events = append(r.events, frameEvent{op: "begin", vp: vp})
	return nil
}

func (r *recordingRecorder) BindCameraDescriptorSet(set DescriptorSet) {
	r.events = append(r.events, frameEvent{op: "bind", set: set})
}

func (r *recordingRecorder) PushTint(tint mgl32.Vec4) {
	r.events = append(r.events, frameEvent{op: "tint", tint: tint})
}

func (r *recordingRecorder) Draw(cmd DrawCommand) {
	r.events = append(r.events, frameEvent{op: "draw", cmd: cmd})
}

func (r *recordingRecorder) EndCameraPass() {
	r.events = append(r.events, frameEvent{op: "end"})
}

func (r *recordingRecorder) ops() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.op
	}
	return out
}

func (r *recordingRecorder) count(op string) int {
	n := 0
	for _, e := range r.events {
		if e.op == op {
			n++
		}
	}
	return n
}
