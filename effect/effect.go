package effect

import (
	"fmt"
	"time"

	"github.com/fogleman/ease"

	"github.com/Git-GoR/FoundryVTT-Sequencer/utils"
)

// DefaultEase is the easing applied to a fade that doesn't name one.
const DefaultEase = "linear"

var easings = map[string]ease.Function{
	"linear":           ease.Linear,
	"easeInSine":       ease.InSine,
	"easeOutSine":      ease.OutSine,
	"easeInOutSine":    ease.InOutSine,
	"easeInQuad":       ease.InQuad,
	"easeOutQuad":      ease.OutQuad,
	"easeInOutQuad":    ease.InOutQuad,
	"easeInCubic":      ease.InCubic,
	"easeOutCubic":     ease.OutCubic,
	"easeInOutCubic":   ease.InOutCubic,
	"easeInQuart":      ease.InQuart,
	"easeOutQuart":     ease.OutQuart,
	"easeInOutQuart":   ease.InOutQuart,
	"easeInQuint":      ease.InQuint,
	"easeOutQuint":     ease.OutQuint,
	"easeInOutQuint":   ease.InOutQuint,
	"easeInExpo":       ease.InExpo,
	"easeOutExpo":      ease.OutExpo,
	"easeInOutExpo":    ease.InOutExpo,
	"easeInCirc":       ease.InCirc,
	"easeOutCirc":      ease.OutCirc,
	"easeInOutCirc":    ease.InOutCirc,
	"easeInBack":       ease.InBack,
	"easeOutBack":      ease.OutBack,
	"easeInOutBack":    ease.InOutBack,
	"easeInElastic":    ease.InElastic,
	"easeOutElastic":   ease.OutElastic,
	"easeInOutElastic": ease.InOutElastic,
	"easeInBounce":     ease.InBounce,
	"easeOutBounce":    ease.OutBounce,
	"easeInOutBounce":  ease.InOutBounce,
}

// LookupEase returns the easing function registered under name.
func LookupEase(name string) (ease.Function, bool) {
	fn, ok := easings[name]
	return fn, ok
}

// Fade describes a fade curve applied to an effect's alpha or a sound's volume.
type Fade struct {
	// How long the fade lasts once it has started.
	Duration time.Duration

	// The name of the easing curve, e.g. "easeInOutCubic".
	Ease string

	// How long to hold before the fade begins.
	Delay time.Duration

	easingFunc ease.Function
}

// NewFade creates a Fade, resolving easeName against the known easing curves. An empty easeName uses DefaultEase.
func NewFade(duration time.Duration, easeName string, delay time.Duration) (*Fade, error) {
	if duration < 0 {
		return nil, fmt.Errorf("fade duration must not be negative, got %v", duration)
	}
	if easeName == "" {
		easeName = DefaultEase
	}
	fn, ok := LookupEase(easeName)
	if !ok {
		return nil, fmt.Errorf("unknown ease %q", easeName)
	}

	return &Fade{
		Duration:   duration,
		Ease:       easeName,
		Delay:      delay,
		easingFunc: fn,
	}, nil
}

// Progress returns the eased completion of the fade, between 0.0 and 1.0, elapsed after the fade was scheduled.
func (f *Fade) Progress(elapsed time.Duration) float64 {
	t := elapsed - f.Delay
	if t <= 0 {
		return 0
	}
	if f.Duration <= 0 || t >= f.Duration {
		return 1
	}

	fn := f.easingFunc
	if fn == nil {
		fn = ease.Linear
	}
	return fn(utils.Norm(float64(t), 0, float64(f.Duration)))
}

// Envelope returns the combined level of an optional fade in and fade out at elapsed into a run lasting total.
// The fade out is scheduled so that, without a delay, it reaches zero exactly at total.
func Envelope(elapsed, total time.Duration, in, out *Fade) float64 {
	level := 1.0
	if in != nil {
		level *= in.Progress(elapsed)
	}
	if out != nil && total > 0 {
		level *= 1 - out.Progress(elapsed-(total-out.Duration))
	}
	return utils.Clamp(level, 0, 1)
}
