package display

import "testing"

func TestControllerSetValidation(t *testing.T) {
	t.Parallel()

	c := NewController()
	if got := c.Snapshot(); got.LiveRows != DefaultLiveRows || !got.Unconstrained() {
		t.Fatalf("unexpected default config: %+v", got)
	}

	if err := c.Set(100, 5); err != nil {
		t.Fatalf("Set valid: %v", err)
	}
	if got := c.Snapshot(); got.MaxCols != 100 || got.LiveRows != 5 {
		t.Fatalf("Set did not apply: %+v", got)
	}

	tests := []struct {
		name     string
		maxCols  int
		liveRows int
	}{
		{"zero live rows", 80, 0},
		{"negative live rows", 80, -1},
		{"zero max cols", 0, 3},
		{"negative max cols", -5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Set(tt.maxCols, tt.liveRows); err == nil {
				t.Fatalf("expected rejection for maxCols=%d liveRows=%d", tt.maxCols, tt.liveRows)
			}
			// 之前的有效配置保持不变。
			if got := c.Snapshot(); got.MaxCols != 100 || got.LiveRows != 5 {
				t.Fatalf("rejected Set mutated config: %+v", got)
			}
		})
	}
}

func TestControllerSoftWrap(t *testing.T) {
	t.Parallel()

	c := NewController()
	if err := c.Set(120, 4); err != nil {
		t.Fatalf("Set: %v", err)
	}
	c.SetSoftWrap()
	got := c.Snapshot()
	if !got.Unconstrained() {
		t.Fatalf("expected unconstrained width, got %+v", got)
	}
	if got.LiveRows != 4 {
		t.Fatalf("soft wrap must keep live rows, got %+v", got)
	}
}

func TestControllerSetLiveRows(t *testing.T) {
	t.Parallel()

	c := NewController()
	if err := c.SetLiveRows(1); err != nil {
		t.Fatalf("SetLiveRows: %v", err)
	}
	if got := c.Snapshot(); got.LiveRows != 1 {
		t.Fatalf("SetLiveRows did not apply: %+v", got)
	}
	if err := c.SetLiveRows(0); err == nil {
		t.Fatalf("expected rejection for zero live rows")
	}
	if got := c.Snapshot(); got.LiveRows != 1 {
		t.Fatalf("rejected SetLiveRows mutated config: %+v", got)
	}
}
