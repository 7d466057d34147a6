package sim

import "math"

// integrate advances particle i by one step. It reads only the frozen
// generation-g buffers and the step's parameter block, and writes only slot
// i of the generation-g+1 buffers, so invocations are independent and may
// run concurrently.
func (s *Sim) integrate(i int, p *Params) {
	pos := s.posCur[i]
	vel := s.velCur[i]

	var acc, impulse Vec2

	if s.stepRange > 0 || s.stepFull {
		if s.stepFull {
			for j := range s.posCur {
				s.accumulatePair(i, int32(j), pos, p, &acc, &impulse)
			}
		} else {
			s.accumulateBinned(i, pos, p, &acc, &impulse)
		}
	}

	// Centering force: linear pull toward the field origin.
	acc.X += pos.X * -p.CenterStrength
	acc.Y += pos.Y * -p.CenterStrength

	if p.MaxAcceleration > 0 {
		acc = clampMag(acc, p.MaxAcceleration)
	}

	// Collision impulses are direct velocity corrections; they land before
	// damping, as if applied during the scan, but are summed first so the
	// result does not depend on neighbor visitation order.
	vel.X += impulse.X
	vel.Y += impulse.Y

	vel.X *= p.Momentum
	vel.Y *= p.Momentum
	vel.X += acc.X * p.Speed
	vel.Y += acc.Y * p.Speed

	if p.MaxVelocity > 0 {
		vel = clampMag(vel, p.MaxVelocity)
	}

	pos.X += vel.X * p.Speed
	pos.Y += vel.Y * p.Speed

	pos.X = wrapHalf(pos.X, p.Width)
	pos.Y = wrapHalf(pos.Y, p.Height)

	s.posNext[i] = pos
	s.velNext[i] = vel
}

// accumulatePair adds particle j's contribution to i's acceleration and
// collision impulse.
func (s *Sim) accumulatePair(i int, j int32, pos Vec2, p *Params, acc, impulse *Vec2) {
	if int(j) == i {
		return
	}

	d := toroidalDelta(pos, s.posCur[j], p.Width, p.Height)
	distSq := d.X*d.X + d.Y*d.Y
	if distSq == 0 {
		return // coincident, no direction
	}
	dist := float32(math.Sqrt(float64(distSq)))

	// dir * strength / r² with dir = d/dist folds into d * strength/(dist*r²).
	if p.AttractionRange == 0 || dist <= p.AttractionRange {
		k := p.AttractionStrength / (dist * distSq)
		acc.X += d.X * k
		acc.Y += d.Y * k
	}
	if p.RepulsionRange == 0 || dist <= p.RepulsionRange {
		k := p.RepulsionStrength / (dist * distSq)
		acc.X -= d.X * k
		acc.Y -= d.Y * k
	}

	if diam := 2 * p.ParticleRadius; dist < diam {
		k := -(diam - dist) * p.CollisionResponse
		impulse.X += d.X * k
		impulse.Y += d.Y * k
	}
}

// accumulateBinned visits only particles in the bin neighborhood covering
// the step's pair range, with toroidal cell wrapping. The Step that set
// stepRange guaranteed the cell span is smaller than the grid, so no cell
// is visited twice.
func (s *Sim) accumulateBinned(i int, pos Vec2, p *Params, acc, impulse *Vec2) {
	g := s.grid
	centerCol, centerRow := g.cellCoords(pos)

	for dc := -s.cellRX; dc <= s.cellRX; dc++ {
		col := (centerCol + dc + g.cols) % g.cols
		for dr := -s.cellRY; dr <= s.cellRY; dr++ {
			row := (centerRow + dr + g.rows) % g.rows

			for _, j := range g.cells[row*g.cols+col] {
				s.accumulatePair(i, j, pos, p, acc, impulse)
			}
		}
	}
}
