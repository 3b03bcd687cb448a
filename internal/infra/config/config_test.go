package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "libx264", cfg.EncoderCodec)
	assert.Equal(t, 8000000, cfg.EncoderBitRate)
	assert.Equal(t, 1920, cfg.EncoderWidth)
	assert.Equal(t, 1080, cfg.EncoderHeight)
	assert.Equal(t, 30, cfg.EncoderFrameRate)
	assert.Equal(t, 10, cfg.EncoderGOPSize)
	assert.Equal(t, 1, cfg.EncoderMaxBFrames)
	assert.Equal(t, "yuv420p", cfg.EncoderPixelFormat)
	assert.False(t, cfg.MinIOEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENCODER_WIDTH", "640")
	t.Setenv("ENCODER_HEIGHT", "480")
	t.Setenv("ENCODER_BIT_RATE", "400000")

	cfg, err := Load()
	require.NoError(t, err)

	ec := cfg.EncoderConfig()
	assert.Equal(t, 640, ec.Width)
	assert.Equal(t, 480, ec.Height)
	assert.Equal(t, 400000, ec.BitRate)
}
