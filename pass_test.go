package rendergraph

import "testing"

func TestRenderPassReadWrite(t *testing.T) {
	p := newRenderPass("test-pass")
	texHandle := newHandle(KindTexture, 0, 0, 1)
	bufHandle := newHandle(KindBuffer, 0, 0, 2)

	p.Read(texHandle)
	if !p.ReadsFrom(texHandle) {
		t.Error("ReadsFrom should report true after Read")
	}
	if !p.HasDependency(texHandle) {
		t.Error("HasDependency should report true for a read handle")
	}

	original := bufHandle
	p.Write(&bufHandle)
	if bufHandle.Version() != original.Version()+1 {
		t.Errorf("Write should bump the caller's handle version, got %d want %d", bufHandle.Version(), original.Version()+1)
	}
	if !p.WritesTo(bufHandle) {
		t.Error("WritesTo should report true for the post-Write handle")
	}
	if p.WritesTo(original) {
		t.Error("WritesTo should not match the pre-Write handle version")
	}
}

func TestRenderPassReadInvalidHandlePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Read with an invalid handle should panic")
		}
	}()
	p := newRenderPass("test-pass")
	p.Read(InvalidHandle)
}

func TestRenderPassReadWrongKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Read with a view handle should panic")
		}
	}()
	p := newRenderPass("test-pass")
	p.Read(newHandle(KindShaderResourceView, 0, 0, 0))
}

func TestRenderPassWriteNilHandlePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Write with a nil handle should panic")
		}
	}()
	p := newRenderPass("test-pass")
	p.Write(nil)
}

func TestRenderPassHasAnyDependencies(t *testing.T) {
	p := newRenderPass("empty")
	if p.HasAnyDependencies() {
		t.Error("a freshly built pass should have no dependencies")
	}
	p.Read(newHandle(KindBuffer, 0, 0, 0))
	if !p.HasAnyDependencies() {
		t.Error("a pass with a Read should report HasAnyDependencies")
	}
}

func TestRenderPassChaining(t *testing.T) {
	h := newHandle(KindBuffer, 0, 0, 0)
	p := newRenderPass("chained").
		Read(h).
		Execute(func(*Registry, CommandContext) error { return nil })

	if p.fn == nil {
		t.Error("Execute should record the closure")
	}
	if !p.ReadsFrom(h) {
		t.Error("method chaining should not lose earlier calls' effects")
	}
}
