package track

import "testing"

func TestUsesIsReadOnly(t *testing.T) {
	tests := []struct {
		name string
		u    Uses
		want bool
	}{
		{"none", UsesNone, true},
		{"pixel srv", UsesPixelShaderResource, true},
		{"non-pixel srv", UsesNonPixelShaderResource, true},
		{"both srv", UsesPixelShaderResource | UsesNonPixelShaderResource, true},
		{"render target", UsesRenderTarget, false},
		{"depth write", UsesDepthWrite, false},
		{"uav", UsesUnorderedAccess, false},
		{"srv and render target", UsesPixelShaderResource | UsesRenderTarget, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.u.IsReadOnly(); got != tt.want {
				t.Errorf("IsReadOnly() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUsesIsEmpty(t *testing.T) {
	if !UsesNone.IsEmpty() {
		t.Error("UsesNone should be empty")
	}
	if UsesRenderTarget.IsEmpty() {
		t.Error("UsesRenderTarget should not be empty")
	}
}

func TestUsesContains(t *testing.T) {
	combined := UsesPixelShaderResource | UsesRenderTarget
	if !combined.Contains(UsesRenderTarget) {
		t.Error("combined should contain UsesRenderTarget")
	}
	if combined.Contains(UsesDepthWrite) {
		t.Error("combined should not contain UsesDepthWrite")
	}
}

func TestUsesIsCompatible(t *testing.T) {
	tests := []struct {
		name string
		a, b Uses
		want bool
	}{
		{"empty with anything", UsesNone, UsesRenderTarget, true},
		{"two reads", UsesPixelShaderResource, UsesNonPixelShaderResource, true},
		{"identical writes", UsesRenderTarget, UsesRenderTarget, true},
		{"different writes", UsesRenderTarget, UsesDepthWrite, false},
		{"read vs write", UsesPixelShaderResource, UsesRenderTarget, false},
		{"uav vs uav", UsesUnorderedAccess, UsesUnorderedAccess, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.IsCompatible(tt.b); got != tt.want {
				t.Errorf("IsCompatible(%v,%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
