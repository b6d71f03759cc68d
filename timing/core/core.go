// Package core drives the multiply/divide unit from an Akita event engine.
// It wraps the synchronous Tick model in per-cycle events so the unit can
// participate in a discrete-event simulation.
package core

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/mdusim/insts"
	"github.com/sarchlab/mdusim/timing/mdu"
)

// Operation is one queued request and its recorded completion.
type Operation struct {
	// Op is the operation to perform.
	Op insts.Op
	// OperandA is the multiplicand / dividend.
	OperandA uint64
	// OperandB is the multiplier / divisor.
	OperandB uint64

	// Value is the result, valid once Done is true.
	Value uint64
	// IssueCycle is the cycle the request was presented to the unit.
	IssueCycle uint64
	// ReadyCycle is the cycle the ready strobe was observed.
	ReadyCycle uint64
	// Done indicates the operation has completed.
	Done bool
}

// Latency returns the observed issue-to-ready latency in cycles.
func (o *Operation) Latency() uint64 {
	if !o.Done {
		return 0
	}
	return o.ReadyCycle - o.IssueCycle
}

// Stats holds performance statistics for the core.
type Stats struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Completed is the number of operations retired.
	Completed uint64
}

// CPO returns the average cycles per completed operation.
func (s Stats) CPO() float64 {
	if s.Completed == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Completed)
}

// Core represents the multiply/divide unit clocked by an event engine.
//
// Operations are enqueued up front and issued in order, one in flight at
// a time; the surrounding pipeline a real unit sits in enforces the same
// single-in-flight discipline. Each clock edge is an event scheduled on
// the engine at the configured frequency.
type Core struct {
	engine sim.Engine
	freq   sim.Freq
	unit   *mdu.MDU

	queue    []*Operation
	next     int
	inFlight *Operation

	cycle uint64
	stats Stats
}

// NewCore creates a core that advances the given unit on the engine.
func NewCore(engine sim.Engine, freq sim.Freq, unit *mdu.MDU) *Core {
	return &Core{
		engine: engine,
		freq:   freq,
		unit:   unit,
	}
}

// Unit returns the underlying multiply/divide unit.
func (c *Core) Unit() *mdu.MDU {
	return c.unit
}

// Enqueue appends an operation to the issue queue and returns its record.
func (c *Core) Enqueue(op insts.Op, a, b uint64) *Operation {
	operation := &Operation{
		Op:       op,
		OperandA: a,
		OperandB: b,
	}
	c.queue = append(c.queue, operation)
	return operation
}

// Operations returns all enqueued operation records.
func (c *Core) Operations() []*Operation {
	return c.queue
}

// Stats returns the core statistics.
func (c *Core) Stats() Stats {
	return c.stats
}

// Run schedules the first clock edge and runs the engine until every
// enqueued operation has completed.
func (c *Core) Run() error {
	if c.next >= len(c.queue) && c.inFlight == nil {
		return nil
	}

	c.engine.Schedule(tickEvent{sim.NewEventBase(c.freq.Period(), c)})

	if err := c.engine.Run(); err != nil {
		return fmt.Errorf("engine run failed: %w", err)
	}

	return nil
}

// tickEvent marks one clock edge of the unit.
type tickEvent struct {
	*sim.EventBase
}

// Handle advances the unit by one cycle and schedules the next edge while
// work remains.
func (c *Core) Handle(e sim.Event) error {
	evt, ok := e.(tickEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", e)
	}

	c.cycle++
	c.stats.Cycles++

	req := mdu.Request{}
	var issued *Operation
	if c.inFlight == nil && c.next < len(c.queue) {
		issued = c.queue[c.next]
		req = mdu.Request{
			Valid:    true,
			Funct3:   issued.Op.Funct3(),
			OperandA: issued.OperandA,
			OperandB: issued.OperandB,
		}
	}

	res := c.unit.Tick(req)

	if res.Ready && c.inFlight != nil {
		c.inFlight.Value = res.Value
		c.inFlight.ReadyCycle = c.cycle
		c.inFlight.Done = true
		c.inFlight = nil
		c.stats.Completed++
	}

	if issued != nil {
		issued.IssueCycle = c.cycle
		c.inFlight = issued
		c.next++
	}

	if c.inFlight != nil || c.next < len(c.queue) {
		c.engine.Schedule(tickEvent{
			sim.NewEventBase(evt.Time()+c.freq.Period(), c),
		})
	}

	return nil
}
