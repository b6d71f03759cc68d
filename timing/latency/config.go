package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// TimingConfig holds latency values for the multiply/divide unit.
// Values describe accept-to-ready cycle counts of the modeled hardware.
type TimingConfig struct {
	// Width is the operand width in bits. Must be in [1, 64].
	// Default: 32.
	Width uint `json:"width"`

	// MultiplyLatency is the accept-to-ready latency of the multiply
	// pipeline. The modeled pipeline is single-stage. Default: 1 cycle.
	MultiplyLatency uint64 `json:"multiply_latency"`

	// DivideLatency is the accept-to-ready latency of the iterative
	// divider: one setup cycle plus one iteration per result bit.
	// Default: 33 cycles (Width 32).
	DivideLatency uint64 `json:"divide_latency"`
}

// DefaultTimingConfig returns a TimingConfig for the default 32-bit unit.
func DefaultTimingConfig() *TimingConfig {
	return ForWidth(32)
}

// ForWidth returns a TimingConfig with the latencies the hardware exhibits
// at the given operand width.
func ForWidth(width uint) *TimingConfig {
	return &TimingConfig{
		Width:           width,
		MultiplyLatency: 1,
		DivideLatency:   uint64(width) + 1,
	}
}

// LoadConfig loads a TimingConfig from a JSON file.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration is usable.
func (c *TimingConfig) Validate() error {
	if c.Width == 0 || c.Width > 64 {
		return fmt.Errorf("width must be in [1, 64], got %d", c.Width)
	}
	if c.MultiplyLatency == 0 {
		return fmt.Errorf("multiply_latency must be > 0")
	}
	if c.DivideLatency == 0 {
		return fmt.Errorf("divide_latency must be > 0")
	}
	return nil
}

// Clone returns a deep copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	return &TimingConfig{
		Width:           c.Width,
		MultiplyLatency: c.MultiplyLatency,
		DivideLatency:   c.DivideLatency,
	}
}
