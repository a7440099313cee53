package model

// AnimTrigger names the interaction state that activates an animation.
type AnimTrigger int

const (
	TriggerHover AnimTrigger = iota
	TriggerPress
	TriggerFocus
	TriggerOpen
)

// Easing is the interpolation curve applied between keyframes. Names mirror
// the subset of easing functions the sync engine can evaluate; unknown
// names parse to EaseInOutCubic.
type Easing int

const (
	EaseLinear Easing = iota
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseInCubic
	EaseOutCubic
	EaseInOutCubic
)

// AnimKeyframe is one step of a trigger's animation: at T seconds into the
// trigger's active span, Properties should be at their given values,
// interpolated from the previous keyframe using Easing.
type AnimKeyframe struct {
	T          float64
	Easing     Easing
	Properties AnimProperties
}

// AnimProperties are the only style facets an animation may override.
// Rotation and translation are deliberately excluded: those are layout
// concerns owned by constraints, not style.
type AnimProperties struct {
	Fill    *Paint
	Opacity *float64
	Scale   *float64
}

// mergeAnimProperties layers src over dst the same way mergeStyle does.
func mergeAnimProperties(dst, src AnimProperties) AnimProperties {
	if src.Fill != nil {
		dst.Fill = src.Fill
	}
	if src.Opacity != nil {
		dst.Opacity = src.Opacity
	}
	if src.Scale != nil {
		dst.Scale = src.Scale
	}
	return dst
}

// Animation is a trigger together with its ordered keyframes.
type Animation struct {
	Trigger   AnimTrigger
	Keyframes []AnimKeyframe
}

// segmentAt returns the bracketing keyframes and raw progress at elapsed
// seconds t within a's keyframe timeline. Interpolation of numeric fields is linear
// within the segment; the Easing field of the *upper* keyframe shapes the
// progress curve. Real easing math lives in the sync package, which has the
// gween dependency; this only selects the bracketing keyframes and raw
// linear progress.
func (a Animation) segmentAt(t float64) (lo, hi AnimKeyframe, progress float64, ok bool) {
	if len(a.Keyframes) == 0 {
		return AnimKeyframe{}, AnimKeyframe{}, 0, false
	}
	// A single keyframe means "animate from the resolved base style to
	// this target over T seconds" — treat it as the upper bound of an
	// implicit zero-keyframe segment rather than a constant.
	if a.Keyframes[0].T > 0 {
		zero := AnimKeyframe{T: 0, Easing: a.Keyframes[0].Easing}
		if t <= a.Keyframes[0].T {
			span := a.Keyframes[0].T
			return zero, a.Keyframes[0], clamp01(t / span), true
		}
	} else if t <= a.Keyframes[0].T {
		return a.Keyframes[0], a.Keyframes[0], 0, true
	}
	last := a.Keyframes[len(a.Keyframes)-1]
	if t >= last.T {
		return last, last, 1, true
	}
	for i := 1; i < len(a.Keyframes); i++ {
		if t <= a.Keyframes[i].T {
			lo = a.Keyframes[i-1]
			hi = a.Keyframes[i]
			span := hi.T - lo.T
			if span <= 0 {
				return lo, hi, 1, true
			}
			return lo, hi, (t - lo.T) / span, true
		}
	}
	return last, last, 1, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
