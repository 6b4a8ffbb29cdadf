package core

import "testing"

func TestApplyFrameOptions(t *testing.T) {
	cfg := ApplyFrameOptions(WithWindowSize(1024), WithStepSize(256))
	if cfg.WindowSize != 1024 {
		t.Fatalf("window size = %d, want 1024", cfg.WindowSize)
	}
	if cfg.StepSize != 256 {
		t.Fatalf("step size = %d, want 256", cfg.StepSize)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyFrameOptions(WithWindowSize(0), WithStepSize(-1))
	def := DefaultFrameConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}

func TestFrameConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     FrameConfig
		wantErr bool
	}{
		{name: "default", cfg: DefaultFrameConfig()},
		{name: "step larger than window", cfg: FrameConfig{WindowSize: 2, StepSize: 5}},
		{name: "zero window", cfg: FrameConfig{WindowSize: 0, StepSize: 1}, wantErr: true},
		{name: "zero step", cfg: FrameConfig{WindowSize: 4, StepSize: 0}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFrameConfigOverlap(t *testing.T) {
	if got := DefaultFrameConfig().Overlap(); got != 0.5 {
		t.Fatalf("Overlap() = %v, want 0.5", got)
	}
	if got := (FrameConfig{WindowSize: 2, StepSize: 4}).Overlap(); got != 0 {
		t.Fatalf("Overlap() = %v, want 0", got)
	}
}
