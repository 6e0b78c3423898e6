package level

import "log/slog"

// liftSnap is how close an animated lift must get to an end stop before
// it snaps there.
const liftSnap = 1e-3

// UpdateLiftAnimation advances a moving lift by dt seconds. Resting lifts
// and non-lift sectors are left alone.
func (s *Sector) UpdateLiftAnimation(dt float64) {
	if s == nil || !s.IsLift || dt <= 0 {
		return
	}
	travel := max(s.LiftHighHeight-s.LiftLowHeight, 0)
	switch s.LiftState {
	case LiftRising:
		s.AnimationHeightOffset += s.LiftSpeed * dt
		if s.AnimationHeightOffset >= travel-liftSnap {
			s.AnimationHeightOffset = travel
			s.LiftState = LiftAtTop
		}
	case LiftLowering:
		s.AnimationHeightOffset -= s.LiftSpeed * dt
		if s.AnimationHeightOffset <= liftSnap {
			s.AnimationHeightOffset = 0
			s.LiftState = LiftAtBottom
		}
	}
}

// Toggle reverses a lift: a lift at or heading to the bottom starts
// rising, otherwise it starts lowering.
func (s *Sector) Toggle() {
	if s == nil || !s.IsLift {
		return
	}
	switch s.LiftState {
	case LiftAtBottom, LiftLowering:
		s.LiftState = LiftRising
	default:
		s.LiftState = LiftLowering
	}
}

// UpdateLifts advances every lift in the world.
func (w *World) UpdateLifts(dt float64) {
	for _, id := range w.order {
		w.sectors[id].UpdateLiftAnimation(dt)
	}
}

// ActivateSwitch toggles every lift whose HiTag matches the switch sprite.
// It returns the number of lifts toggled; a sprite that is not a switch
// toggles nothing.
func (w *World) ActivateSwitch(id SpriteID) int {
	sp, ok := w.sprites[id]
	if !ok {
		return 0
	}
	if sp.Tag != SpriteSwitch && sp.LoTag != LoTagSwitch {
		return 0
	}
	toggled := 0
	for _, sid := range w.order {
		s := w.sectors[sid]
		if s.IsLift && s.HiTag == sp.HiTag {
			s.Toggle()
			toggled++
			slog.Info("lift toggled", "sector", sid, "state", s.LiftState, "switch", id)
		}
	}
	return toggled
}
