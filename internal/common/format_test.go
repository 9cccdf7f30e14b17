package common

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{1234.56, "$1,234.56"},
		{999999.99, "$999,999.99"},
		{-42.5, "-$42.50"},
		{1000000, "$1,000,000.00"},
	}

	for _, tt := range tests {
		got := FormatMoney(tt.in)
		if got != tt.want {
			t.Errorf("FormatMoney(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFormatSignedMoney(t *testing.T) {
	if got := FormatSignedMoney(10); got != "+$10.00" {
		t.Errorf("expected +$10.00, got %s", got)
	}
	if got := FormatSignedMoney(-10); got != "-$10.00" {
		t.Errorf("expected -$10.00, got %s", got)
	}
}

func TestFormatSignedPct(t *testing.T) {
	if got := FormatSignedPct(3.456); got != "+3.46%" {
		t.Errorf("expected +3.46%%, got %s", got)
	}
	if got := FormatSignedPct(-1.2); got != "-1.20%" {
		t.Errorf("expected -1.20%%, got %s", got)
	}
}

func TestFormatShares(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12345678, "12,345,678"},
		{-4500, "-4,500"},
	}

	for _, tt := range tests {
		got := FormatShares(tt.in)
		if got != tt.want {
			t.Errorf("FormatShares(%d) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFormatSignedShares(t *testing.T) {
	if got := FormatSignedShares(2500); got != "+2,500" {
		t.Errorf("expected +2,500, got %s", got)
	}
	if got := FormatSignedShares(-100); got != "-100" {
		t.Errorf("expected -100, got %s", got)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12.3, "$12.30"},
		{4500, "$4.50K"},
		{2500000, "$2.50M"},
		{7100000000, "$7.10B"},
	}

	for _, tt := range tests {
		got := FormatValue(tt.in)
		if got != tt.want {
			t.Errorf("FormatValue(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNewSilentLogger(t *testing.T) {
	logger := NewSilentLogger()
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	// Should not panic when logging
	logger.Info().Str("key", "value").Msg("silent")
}
