package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/clock"

	"github.com/Git-GoR/FoundryVTT-Sequencer/config"
	"github.com/Git-GoR/FoundryVTT-Sequencer/playback"
)

func TestDemoSequenceIsValid(t *testing.T) {
	t.Parallel()

	cfg, err := config.NewConfig()
	require.NoError(t, err)

	seq := buildDemoSequence(cfg, &playback.FrameRenderer{Clock: clock.RealClock{}, FrameRate: cfg.FrameRate})

	assert.Empty(t, seq.Errors())
	sections := seq.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, 3, sections[0].Repetitions())
	assert.True(t, sections[0].WaitsUntilFinished())
	assert.True(t, sections[1].IsAsync())
}
