package playback

import (
	"context"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"github.com/Git-GoR/FoundryVTT-Sequencer/effect"
)

// DefaultFrameRate is used when a FrameRenderer has no frame rate set.
const DefaultFrameRate = 40

// FrameInterval returns the time between frames at fps frames per second.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	return time.Second / time.Duration(fps)
}

// Frame is a single rendered step of an effect or sound.
type Frame struct {
	File       string
	Repetition int
	Elapsed    time.Duration

	// Level is the fade envelope, scaled by the volume for sounds.
	Level float64

	// Color is the tint at the current level, empty without a tint.
	Color string
}

// FrameRenderer is a Renderer and AudioPlayer that steps through each effect or sound frame by frame on a clock,
// logging the fade envelope. It stands in for the game client's canvas and audio helper.
type FrameRenderer struct {
	Clock     clock.WithTicker
	FrameRate int
	Log       *logrus.Entry

	// OnFrame is called with every frame when set.
	OnFrame func(Frame)
}

// Render implements Renderer.
func (fr *FrameRenderer) Render(ctx context.Context, req EffectRequest) error {
	return fr.play(ctx, req.File, req.Repetition, req.Duration, req.FadeIn, req.FadeOut, 1, req.Tint)
}

// Play implements AudioPlayer.
func (fr *FrameRenderer) Play(ctx context.Context, req SoundRequest) error {
	return fr.play(ctx, req.File, req.Repetition, req.Duration, req.FadeIn, req.FadeOut, req.Volume, nil)
}

func (fr *FrameRenderer) play(ctx context.Context, file string, repetition int, duration time.Duration, in, out *effect.Fade, scale float64, tint *colorful.Color) error {
	start := fr.Clock.Now()
	emit := func(elapsed time.Duration) {
		frame := Frame{
			File:       file,
			Repetition: repetition,
			Elapsed:    elapsed,
			Level:      effect.Envelope(elapsed, duration, in, out) * scale,
		}
		if tint != nil {
			frame.Color = colorful.Color{}.BlendRgb(*tint, frame.Level).Hex()
		}
		if fr.Log != nil {
			fr.Log.WithFields(logrus.Fields{"file": file, "repetition": repetition, "elapsed": elapsed, "level": frame.Level}).Debug("Frame")
		}
		if fr.OnFrame != nil {
			fr.OnFrame(frame)
		}
	}

	emit(0)
	if duration <= 0 {
		return nil
	}

	ticker := fr.Clock.NewTicker(FrameInterval(fr.FrameRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			elapsed := fr.Clock.Since(start)
			if elapsed >= duration {
				emit(duration)
				return nil
			}
			emit(elapsed)
		}
	}
}
