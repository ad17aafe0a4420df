package nbody

// Stage names of the two built-in stages.
const (
	StageUpdateVelocity = "update_vel"
	StageUpdatePosition = "update_pos"
)

// Stage is one pass over the world. A stage declares the columns it touches
// through Access and only gets those columns from the View it is run with.
type Stage interface {
	Name() string
	Access() Access
	Run(v *View, pool *Pool)
}

// VelocityStage integrates the gravitational pull of every other entity into
// each entity's velocity over one time-step. It reads positions and masses and
// writes only velocities.
//
// The outer loop over entities is split across the pool; each worker owns the
// velocity rows of its range and sums the contributions of all other entities
// sequentially, in row order.
type VelocityStage struct{}

func (VelocityStage) Name() string { return StageUpdateVelocity }

func (VelocityStage) Access() Access {
	return Read(PositionID, MassID).Write(VelocityID)
}

func (VelocityStage) Run(v *View, pool *Pool) {
	res := v.Resources()
	delta := MustGetResource[DeltaTime](res).Seconds
	g := MustGetResource[Gravity](res).G
	var (
		limit     float32
		hasCutoff bool
	)
	if c, _ := GetResource[Cutoff](res); c != nil {
		limit, hasCutoff = c.DistanceSq, true
	}

	pos := v.Positions()
	mass := v.Masses()
	vel := v.VelocitiesMut()
	pool.ParallelFor(len(pos), func(start, end int) {
		for i := start; i < end; i++ {
			pi := pos[i]
			vi := vel[i]
			for j := range pos {
				if j == i {
					continue
				}
				ax, ay, r2 := pairAcceleration(pi, pos[j], mass[j], g)
				if hasCutoff && r2 >= limit {
					continue
				}
				vi.X += ax * delta
				vi.Y += ay * delta
			}
			vel[i] = vi
		}
	})
}

// Acceleration returns the acceleration that a body of mass m at `to` imposes
// on a body at `from`, under the gravitational constant g.
//
// The magnitude is g*m/r². It is split across the axes by the squared share of
// each axis in r², signed toward the attracting body. Coincident positions
// divide by zero and yield NaN components.
func Acceleration(from, to Position, m Mass, g float32) (ax, ay float32) {
	ax, ay, _ = pairAcceleration(from, to, m, g)
	return ax, ay
}

func pairAcceleration(from, to Position, m Mass, g float32) (ax, ay, r2 float32) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	dxSq := dx * dx
	dySq := dy * dy
	r2 = dxSq + dySq

	force := g * m.Value / r2

	dirX := dxSq / r2
	if !(to.X > from.X) {
		dirX = -dirX
	}
	dirY := dySq / r2
	if !(to.Y > from.Y) {
		dirY = -dirY
	}
	return force * dirX, force * dirY, r2
}
