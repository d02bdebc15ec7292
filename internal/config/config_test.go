package config

import "testing"

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Width != DefaultWidth {
		t.Errorf("expected width %d, got %d", DefaultWidth, cfg.Width)
	}
	if cfg.Fanout != DefaultFanout {
		t.Errorf("expected fanout %d, got %d", DefaultFanout, cfg.Fanout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to be valid, got %v", err)
	}
}

func TestDenseThresholdAndWords(t *testing.T) {
	cfg := Config{Width: 16, Fanout: 3}
	if got := cfg.DenseThreshold(); got != 1 {
		t.Errorf("expected dense threshold 1, got %d", got)
	}
	if got := cfg.DenseWords(); got != 8 {
		t.Errorf("expected 8 dense words, got %d", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"valid", Config{Width: 7500, Fanout: 9}, nil},
		{"zero width", Config{Width: 0, Fanout: 9}, ErrInvalidWidth},
		{"negative width", Config{Width: -2, Fanout: 9}, ErrInvalidWidth},
		{"odd width", Config{Width: 17, Fanout: 9}, ErrInvalidWidth},
		{"zero fanout", Config{Width: 16, Fanout: 0}, ErrInvalidFanout},
		{"negative fanout", Config{Width: 16, Fanout: -1}, ErrInvalidFanout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
