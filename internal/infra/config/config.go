package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/framepipe/framepipe/internal/domain/port"
)

type Config struct {
	EncoderCodec       string `env:"ENCODER_CODEC"        envDefault:"libx264"`
	EncoderBitRate     int    `env:"ENCODER_BIT_RATE"     envDefault:"8000000"`
	EncoderWidth       int    `env:"ENCODER_WIDTH"        envDefault:"1920"`
	EncoderHeight      int    `env:"ENCODER_HEIGHT"       envDefault:"1080"`
	EncoderFrameRate   int    `env:"ENCODER_FRAME_RATE"   envDefault:"30"`
	EncoderGOPSize     int    `env:"ENCODER_GOP_SIZE"     envDefault:"10"`
	EncoderMaxBFrames  int    `env:"ENCODER_MAX_B_FRAMES" envDefault:"1"`
	EncoderPixelFormat string `env:"ENCODER_PIXEL_FORMAT" envDefault:"yuv420p"`

	FFprobeBin string `env:"FFPROBE_BIN" envDefault:"ffprobe"`

	MinIOEnabled      bool   `env:"MINIO_ENABLED"       envDefault:"false"`
	MinIOEndpoint     string `env:"MINIO_ENDPOINT"      envDefault:"minio:9000"`
	MinIOAccessKey    string `env:"MINIO_ACCESS_KEY"    envDefault:"minioadmin"`
	MinIOSecretKey    string `env:"MINIO_SECRET_KEY"    envDefault:"minioadmin"`
	MinIOUseSSL       bool   `env:"MINIO_USE_SSL"       envDefault:"false"`
	MinIOInputBucket  string `env:"MINIO_INPUT_BUCKET"  envDefault:"videos"`
	MinIOOutputBucket string `env:"MINIO_OUTPUT_BUCKET" envDefault:"renders"`

	MetricsPort  int    `env:"METRICS_PORT"  envDefault:"0"`
	OTLPEndpoint string `env:"OTLP_ENDPOINT" envDefault:""`
	LogLevel     string `env:"LOG_LEVEL"     envDefault:"info"`

	TempDir string `env:"TEMP_DIR" envDefault:"/tmp/framepipe"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EncoderConfig bundles the canonical output settings for the encode side.
func (c *Config) EncoderConfig() port.EncoderConfig {
	return port.EncoderConfig{
		Codec:       c.EncoderCodec,
		BitRate:     c.EncoderBitRate,
		Width:       c.EncoderWidth,
		Height:      c.EncoderHeight,
		FrameRate:   c.EncoderFrameRate,
		GOPSize:     c.EncoderGOPSize,
		MaxBFrames:  c.EncoderMaxBFrames,
		PixelFormat: c.EncoderPixelFormat,
	}
}
