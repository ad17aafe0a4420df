package nbody

// PositionStage advances every entity's position by its velocity times the
// time-step. It reads velocities and writes only positions; entities are
// independent of each other.
type PositionStage struct{}

func (PositionStage) Name() string { return StageUpdatePosition }

func (PositionStage) Access() Access {
	return Read(VelocityID).Write(PositionID)
}

func (PositionStage) Run(v *View, pool *Pool) {
	delta := MustGetResource[DeltaTime](v.Resources()).Seconds
	vel := v.Velocities()
	pos := v.PositionsMut()
	pool.ParallelFor(len(pos), func(start, end int) {
		for i := start; i < end; i++ {
			pos[i].X += vel[i].X * delta
			pos[i].Y += vel[i].Y * delta
		}
	})
}
