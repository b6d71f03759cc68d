package mdu

// Config holds configuration for the multiply/divide unit.
type Config struct {
	// Width is the operand width in bits. Must be in [1, 64].
	// Zero selects the default of 32.
	Width uint
}

// DefaultConfig returns the default unit configuration.
func DefaultConfig() Config {
	return Config{
		Width: 32,
	}
}

// Stats holds aggregate statistics for the unit.
type Stats struct {
	// Cycles is the total number of clock edges simulated.
	Cycles uint64
	// Results is the number of ready strobes produced.
	Results uint64
	// DroppedResults counts divide results displaced by a multiply
	// strobing on the same cycle. Nonzero only when the caller overlaps
	// requests in violation of the single-in-flight discipline.
	DroppedResults uint64
}

// Utilization returns results per cycle as a percentage.
func (s Stats) Utilization() float64 {
	if s.Cycles == 0 {
		return 0
	}
	return float64(s.Results) / float64(s.Cycles) * 100
}

// MDU is the cycle-accurate multiply/divide unit.
//
// Each Tick models one clock edge: the request present on the inputs is
// decoded combinationally, routed to the multiply pipeline or the divide
// state machine by the class bit, and the two completion strobes are muxed
// onto the single ready/result output. Multiply results arrive a fixed
// 1 cycle after acceptance, divide/remainder results a fixed W+1 cycles.
type MDU struct {
	width uint

	multiplier *Multiplier
	divider    *Divider

	stats Stats
}

// New creates a multiply/divide unit from the configuration. Width 0
// selects the default of 32; widths above 64 are capped at 64.
func New(config Config) *MDU {
	width := normalizeWidth(config.Width)

	return &MDU{
		width:      width,
		multiplier: NewMultiplier(width),
		divider:    NewDivider(width),
	}
}

// normalizeWidth maps a configured width onto [1, 64]: zero selects the
// default of 32, larger values are capped at 64.
func normalizeWidth(width uint) uint {
	if width == 0 {
		width = DefaultConfig().Width
	}
	if width > 64 {
		width = 64
	}
	return width
}

// Width returns the operand width in bits.
func (m *MDU) Width() uint {
	return m.width
}

// MultiplyLatency returns the fixed accept-to-ready multiply latency.
func (m *MDU) MultiplyLatency() uint64 {
	return 1
}

// DivideLatency returns the fixed accept-to-ready divide latency
// (1 setup cycle plus one iteration per result bit).
func (m *MDU) DivideLatency() uint64 {
	return uint64(m.width) + 1
}

// Busy reports whether the divider cannot accept a divide-class request
// this cycle. Multiply requests are accepted regardless.
func (m *MDU) Busy() bool {
	return m.divider.Busy()
}

// Tick advances the unit by one clock edge and returns the output for the
// cycle that just ended. Only one unit is active per accepted request, so
// at most one strobe fires per in-flight operation; should both units
// strobe on the same cycle (two overlapped requests), the multiply result
// is reported, as its strobe cannot be deferred; the displaced divide
// result is counted in Stats.DroppedResults.
func (m *MDU) Tick(req Request) Result {
	ctrl := DecodeControl(req.Funct3)

	mulOut := m.multiplier.Tick(req, ctrl)
	divOut := m.divider.Tick(req, ctrl)

	m.stats.Cycles++

	switch {
	case mulOut.Done:
		m.stats.Results++
		if divOut.Ready {
			m.stats.DroppedResults++
		}
		return Result{Ready: true, Value: mulOut.Value}
	case divOut.Ready:
		m.stats.Results++
		return Result{Ready: true, Value: divOut.Value}
	default:
		return Result{}
	}
}

// Idle ticks the unit for one cycle with no request present.
func (m *MDU) Idle() Result {
	return m.Tick(Request{})
}

// Reset synchronously forces both units back to their idle state,
// abandoning any in-flight operation. Statistics are preserved; use
// ResetStats to clear them.
func (m *MDU) Reset() {
	m.multiplier.Reset()
	m.divider.Reset()
}

// ResetStats clears all statistics.
func (m *MDU) ResetStats() {
	m.stats = Stats{}
	m.multiplier.stats = MultiplierStats{}
	m.divider.stats = DividerStats{}
}

// Stats returns the aggregate statistics.
func (m *MDU) Stats() Stats {
	return m.stats
}

// MultiplierStats returns the multiply pipeline statistics.
func (m *MDU) MultiplierStats() MultiplierStats {
	return m.multiplier.Stats()
}

// DividerStats returns the divider statistics.
func (m *MDU) DividerStats() DividerStats {
	return m.divider.Stats()
}
