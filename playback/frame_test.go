package playback

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/Git-GoR/FoundryVTT-Sequencer/effect"
)

type frameLog struct {
	mu     sync.Mutex
	frames []Frame
}

func (l *frameLog) add(f Frame) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.frames = append(l.frames, f)
}

func (l *frameLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames)
}

func (l *frameLog) Frames() []Frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Frame(nil), l.frames...)
}

func TestFrameInterval(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 25*time.Millisecond, FrameInterval(40))
	assert.Equal(t, 100*time.Millisecond, FrameInterval(10))
	assert.Equal(t, FrameInterval(DefaultFrameRate), FrameInterval(0))
}

func TestFrameRendererFollowsTheFadeEnvelope(t *testing.T) {
	t.Parallel()

	fc := testingclock.NewFakeClock(time.Unix(0, 0))
	frames := &frameLog{}
	fr := &FrameRenderer{Clock: fc, FrameRate: 10, Log: quietLogger(), OnFrame: frames.add}

	in, err := effect.NewFade(200*time.Millisecond, "linear", 0)
	require.NoError(t, err)
	red, err := colorful.Hex("#ff0000")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- fr.Render(context.Background(), EffectRequest{File: "a.webm", Duration: 300 * time.Millisecond, FadeIn: in, Tint: &red})
	}()

	require.Eventually(t, fc.HasWaiters, time.Second, time.Millisecond)
	for i := 2; i <= 4; i++ {
		fc.Step(100 * time.Millisecond)
		if i < 4 {
			want := i
			require.Eventually(t, func() bool { return frames.Len() == want }, time.Second, time.Millisecond)
		}
	}
	require.NoError(t, <-done)

	got := frames.Frames()
	require.Len(t, got, 4)

	expectedLevels := []float64{0, 0.5, 1, 1}
	expectedElapsed := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}
	for i, frame := range got {
		assert.Equal(t, "a.webm", frame.File)
		assert.InDelta(t, expectedLevels[i], frame.Level, 1e-9)
		assert.Equal(t, expectedElapsed[i], frame.Elapsed)
	}
	assert.Equal(t, "#000000", got[0].Color)
	assert.Equal(t, "#ff0000", got[3].Color)
}

func TestFrameRendererScalesSoundByVolume(t *testing.T) {
	t.Parallel()

	frames := &frameLog{}
	fr := &FrameRenderer{Clock: testingclock.NewFakeClock(time.Unix(0, 0)), OnFrame: frames.add}

	require.NoError(t, fr.Play(context.Background(), SoundRequest{File: "hit.ogg", Volume: 0.4}))

	got := frames.Frames()
	require.Len(t, got, 1)
	assert.Equal(t, 0.4, got[0].Level)
	assert.Empty(t, got[0].Color)
}

func TestFrameRendererStopsWhenCancelled(t *testing.T) {
	t.Parallel()

	fc := testingclock.NewFakeClock(time.Unix(0, 0))
	fr := &FrameRenderer{Clock: fc, FrameRate: 10}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- fr.Render(ctx, EffectRequest{File: "loop.webm", Duration: time.Hour})
	}()

	require.Eventually(t, fc.HasWaiters, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
