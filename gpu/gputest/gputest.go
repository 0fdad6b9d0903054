// Package gputest provides a no-operation gpu.Device/gpu.CommandContext
// backend: every operation succeeds immediately and returns a placeholder
// resource, recording calls instead of touching real hardware. It exists so
// graph scheduling and realization logic can be exercised without a GPU,
// mirroring how a reference backend's noop implementation stands in for real
// drivers in CI.
package gputest

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/ardenengine/rendergraph/gpu"
)

// Resource is embedded by every placeholder resource type and tracks
// whether Destroy was called, so tests can assert realize() tears down
// stale objects.
type Resource struct {
	name      string
	destroyed atomic.Bool
}

func (r *Resource) Destroy()            { r.destroyed.Store(true) }
func (r *Resource) NativeHandle() string { return r.name }
func (r *Resource) Destroyed() bool     { return r.destroyed.Load() }

// Buffer is a placeholder gpu.Buffer.
type Buffer struct {
	Resource
	Desc gpu.BufferDesc
	Data []byte
}

// Texture is a placeholder gpu.Texture.
type Texture struct {
	Resource
	Desc gpu.TextureDesc
}

// View is a placeholder gpu.View.
type View struct {
	Resource
	Backing gpu.Resource
	Desc    gpu.ViewDesc
}

// RootSignature, PipelineState and RaytracingPipelineState are placeholder
// realizations of their gpu interfaces; none carry any behavior beyond
// Destroy/NativeHandle.
type (
	RootSignature             struct{ Resource }
	PipelineState             struct{ Resource }
	RaytracingPipelineState   struct{ Resource }
)

// CallLog records every resource-creation and command-recording call made
// against a Device/CommandContext pair, in order, for assertions like
// "realize created exactly one texture this frame".
type CallLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *CallLog) record(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

// Calls returns a snapshot of every recorded call, in order.
func (l *CallLog) Calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.calls))
	copy(out, l.calls)
	return out
}

// Count returns how many times a call of the given name was recorded.
func (l *CallLog) Count(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.calls {
		if c == name {
			n++
		}
	}
	return n
}

// Device is a no-op gpu.Device: every Create* call succeeds and returns a
// placeholder resource, recorded on Log.
type Device struct {
	Log *CallLog

	nextName atomic.Uint64
	nextSync atomic.Uint64

	mu       sync.Mutex
	contexts map[string]*CommandContext
}

// NewDevice returns a fresh Device with an empty CallLog.
func NewDevice() *Device {
	return &Device{Log: &CallLog{}, contexts: make(map[string]*CommandContext)}
}

// contextFor returns the queue's cached CommandContext, creating it on first
// use, matching Device's "same queue returns the same context instance
// within a frame" contract.
func (d *Device) contextFor(queue string) *CommandContext {
	d.mu.Lock()
	defer d.mu.Unlock()
	if c, ok := d.contexts[queue]; ok {
		return c
	}
	c := newCommandContext(d, queue)
	d.contexts[queue] = c
	return c
}

func (d *Device) name(prefix string) string {
	id := d.nextName.Add(1)
	return prefix + "-" + itoa(id)
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

func (d *Device) CreateBuffer(desc gpu.BufferDesc) (gpu.Buffer, error) {
	d.Log.record("CreateBuffer")
	b := &Buffer{Desc: desc, Data: make([]byte, desc.SizeBytes)}
	b.name = d.name("buffer:" + desc.Name)
	return b, nil
}

func (d *Device) CreateTexture(desc gpu.TextureDesc, _ *gpu.ClearValue) (gpu.Texture, error) {
	d.Log.record("CreateTexture")
	t := &Texture{Desc: desc}
	t.name = d.name("texture:" + desc.Name)
	return t, nil
}

func (d *Device) CreateView(resource gpu.Resource, desc gpu.ViewDesc) (gpu.View, error) {
	d.Log.record("CreateView")
	v := &View{Backing: resource, Desc: desc}
	v.name = d.name("view")
	return v, nil
}

func (d *Device) CreateRootSignature(desc gpu.RootSignatureDesc) (gpu.RootSignature, error) {
	d.Log.record("CreateRootSignature")
	rs := &RootSignature{}
	rs.name = d.name("rootsig:" + desc.Name)
	return rs, nil
}

func (d *Device) CreatePipelineState(stream gpu.PipelineStateStream) (gpu.PipelineState, error) {
	d.Log.record("CreatePipelineState")
	pso := &PipelineState{}
	pso.name = d.name("pso:" + stream.Name)
	return pso, nil
}

func (d *Device) CreateRaytracingPipelineState(desc gpu.RaytracingPipelineDesc) (gpu.RaytracingPipelineState, error) {
	d.Log.record("CreateRaytracingPipelineState")
	pso := &RaytracingPipelineState{}
	pso.name = d.name("rtpso:" + desc.Name)
	return pso, nil
}

func (d *Device) GetCopyContext() (gpu.CommandContext, error) {
	return d.contextFor("copy"), nil
}

func (d *Device) GetAsyncComputeContext() (gpu.CommandContext, error) {
	return d.contextFor("compute"), nil
}

func (d *Device) GetGraphicsContext() (gpu.CommandContext, error) {
	return d.contextFor("graphics"), nil
}

func (d *Device) WaitIdle(_ context.Context) error { return nil }

// Wait implements gpu.Waiter: every SyncHandle this Device hands out is
// already "signaled" since no real queue exists.
func (d *Device) Wait(_ context.Context, _ gpu.SyncHandle) error { return nil }

// CommandContext is a no-op gpu.CommandContext: every call is recorded on
// the owning Device's CallLog, and barrier/dispatch calls otherwise do
// nothing.
type CommandContext struct {
	device    *Device
	queue     string
	open      bool
	renderPass bool
}

func newCommandContext(d *Device, queue string) *CommandContext {
	return &CommandContext{device: d, queue: queue}
}

func (c *CommandContext) Open() error {
	c.device.Log.record("Open")
	c.open = true
	return nil
}

func (c *CommandContext) Close() error {
	c.device.Log.record("Close")
	c.open = false
	return nil
}

func (c *CommandContext) Execute(_ bool) (gpu.SyncHandle, error) {
	c.device.Log.record("Execute")
	value := c.device.nextSync.Add(1)
	return gpu.NewSyncHandle(queueOrdinal(c.queue), value), nil
}

func queueOrdinal(queue string) uint32 {
	switch queue {
	case "copy":
		return 1
	case "compute":
		return 2
	default:
		return 0
	}
}

func (c *CommandContext) TransitionBarrier(_ gpu.Resource, _ gpu.ResourceState) {
	c.device.Log.record("TransitionBarrier")
}

func (c *CommandContext) FlushResourceBarriers() {
	c.device.Log.record("FlushResourceBarriers")
}

func (c *CommandContext) UAVBarrier(_ gpu.Resource) {
	c.device.Log.record("UAVBarrier")
}

func (c *CommandContext) BeginRenderPass(_ *gpu.RenderTargetDesc) error {
	c.device.Log.record("BeginRenderPass")
	c.renderPass = true
	return nil
}

func (c *CommandContext) EndRenderPass() {
	c.device.Log.record("EndRenderPass")
	c.renderPass = false
}

func (c *CommandContext) SetPipelineState(_ gpu.PipelineState) {
	c.device.Log.record("SetPipelineState")
}

func (c *CommandContext) SetGraphicsRootSignature(_ gpu.RootSignature) {
	c.device.Log.record("SetGraphicsRootSignature")
}

func (c *CommandContext) SetComputeRootSignature(_ gpu.RootSignature) {
	c.device.Log.record("SetComputeRootSignature")
}

func (c *CommandContext) DispatchRays(_ *gpu.RaytracingDispatchDesc) error {
	c.device.Log.record("DispatchRays")
	return nil
}

func (c *CommandContext) Dispatch2D(_, _ uint32) error {
	c.device.Log.record("Dispatch2D")
	return nil
}

// CopyBufferData implements upload.CopyContext for tests: it copies directly
// into the placeholder Buffer's backing slice.
func (c *CommandContext) CopyBufferData(dst gpu.Buffer, offset uint64, data []byte) error {
	buf, ok := dst.(*Buffer)
	if !ok {
		return nil
	}
	c.device.Log.record("CopyBufferData")
	copy(buf.Data[offset:], data)
	return nil
}
