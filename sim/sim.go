package sim

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// parallelThreshold is the minimum particle count to use parallel
// processing. Below this, single-threaded is faster due to goroutine
// overhead.
const parallelThreshold = 64

// workChunk is a contiguous range of particle indices for one worker.
type workChunk struct {
	start, end int
}

// StepTiming holds phase durations for the most recent step.
type StepTiming struct {
	Grid   time.Duration // bin index rebuild
	Kernel time.Duration // force integration across all particles
}

// Sim owns the double-buffered particle state and the step machinery.
// The generation-g buffers are frozen for the duration of a step; the
// kernel writes only generation g+1. The buffers swap roles at the step
// boundary, never mid-step.
type Sim struct {
	n          int
	posCur     []Vec2
	posNext    []Vec2
	velCur     []Vec2
	velNext    []Vec2
	generation uint64

	grid   *Grid
	timing StepTiming

	// Per-step kernel inputs, set before dispatch and read-only after.
	stepParams Params
	stepRange  float32
	stepFull   bool
	cellRX     int
	cellRY     int

	// Worker pool
	numWorkers int
	workChan   chan workChunk
	doneChan   chan struct{}
	stopChan   chan struct{}
	wg         sync.WaitGroup
	running    bool
}

// New creates a simulation from validated parameters and initial state.
// The particle count is fixed for the simulation's lifetime.
func New(p Params, positions, velocities []Vec2) (*Sim, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	n := int(p.ParticleCount)
	if len(positions) != n || len(velocities) != n {
		return nil, fmt.Errorf("sim: initial state has %d positions and %d velocities, want %d",
			len(positions), len(velocities), n)
	}

	s := &Sim{
		n:          n,
		posCur:     make([]Vec2, n),
		posNext:    make([]Vec2, n),
		velCur:     make([]Vec2, n),
		velNext:    make([]Vec2, n),
		grid:       NewGrid(&p),
		numWorkers: runtime.GOMAXPROCS(0),
	}
	copy(s.posCur, positions)
	copy(s.velCur, velocities)

	return s, nil
}

// N returns the particle count.
func (s *Sim) N() int { return s.n }

// Generation returns the current generation counter.
func (s *Sim) Generation() uint64 { return s.generation }

// Positions returns the current generation's position buffer. The slice is
// owned by the simulation and valid until the next Step.
func (s *Sim) Positions() []Vec2 { return s.posCur }

// Velocities returns the current generation's velocity buffer. The slice is
// owned by the simulation and valid until the next Step.
func (s *Sim) Velocities() []Vec2 { return s.velCur }

// Grid returns the bin index built from the current positions. It is
// refreshed at the start of every step.
func (s *Sim) Grid() *Grid { return s.grid }

// Timing returns phase durations for the most recent step.
func (s *Sim) Timing() StepTiming { return s.timing }

// Step advances every particle by one step under p. On a validation error
// nothing is touched: the generation counter does not advance and the
// buffers keep their roles.
func (s *Sim) Step(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if int(p.ParticleCount) != s.n {
		return fmt.Errorf("sim: particle count is fixed at %d, got %d", s.n, p.ParticleCount)
	}

	// Rebuild the bin index from the frozen current positions.
	start := time.Now()
	if !s.grid.matches(&p) {
		s.grid = NewGrid(&p)
	}
	s.grid.Rebuild(s.posCur)
	s.timing.Grid = time.Since(start)

	// Decide the neighbor search mode for the whole step, so every
	// particle uses a consistent method.
	s.stepParams = p
	s.stepRange, s.stepFull = p.pairRange()
	if !s.stepFull && s.stepRange > 0 {
		s.cellRX = int(s.stepRange/p.BinSizeX) + 1
		s.cellRY = int(s.stepRange/p.BinSizeY) + 1
		// A cell span that covers the whole grid would visit cells twice
		// through the wrap; fall back to the full scan instead.
		if 2*s.cellRX+1 >= s.grid.cols || 2*s.cellRY+1 >= s.grid.rows {
			s.stepFull = true
		}
	}

	// Integrate. The pool barrier below is the generation boundary: no
	// buffer swaps until every particle's slot is written.
	start = time.Now()
	if s.n < parallelThreshold {
		s.computeChunk(0, s.n)
	} else {
		s.computeParallel()
	}
	s.timing.Kernel = time.Since(start)

	s.posCur, s.posNext = s.posNext, s.posCur
	s.velCur, s.velNext = s.velNext, s.velCur
	s.generation++

	return nil
}

// computeChunk integrates a contiguous range of particles.
func (s *Sim) computeChunk(start, end int) {
	p := &s.stepParams
	for i := start; i < end; i++ {
		s.integrate(i, p)
	}
}

// computeParallel dispatches chunks to the worker pool and waits for the
// full-step barrier.
func (s *Sim) computeParallel() {
	if !s.running {
		s.startWorkers()
	}

	chunkSize := (s.n + s.numWorkers - 1) / s.numWorkers

	chunksDispatched := 0
	for w := 0; w < s.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > s.n {
			end = s.n
		}
		if start >= end {
			continue
		}

		s.workChan <- workChunk{start: start, end: end}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-s.doneChan
	}
}

// startWorkers launches the persistent worker goroutines.
func (s *Sim) startWorkers() {
	if s.running {
		return
	}

	s.workChan = make(chan workChunk, s.numWorkers)
	s.doneChan = make(chan struct{}, s.numWorkers)
	s.stopChan = make(chan struct{})
	s.running = true

	for i := 0; i < s.numWorkers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
}

// worker runs in a goroutine, processing chunks until stopped.
func (s *Sim) worker() {
	defer s.wg.Done()

	for {
		select {
		case <-s.stopChan:
			return
		case chunk, ok := <-s.workChan:
			if !ok {
				return
			}
			s.computeChunk(chunk.start, chunk.end)
			s.doneChan <- struct{}{}
		}
	}
}

// Close stops the worker pool. The simulation state remains readable.
func (s *Sim) Close() {
	if !s.running {
		return
	}

	close(s.stopChan)
	s.wg.Wait()
	close(s.workChan)
	close(s.doneChan)
	s.running = false
}
