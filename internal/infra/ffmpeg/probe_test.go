package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProbeJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "width": 320,
      "height": 240,
      "pix_fmt": "yuv420p",
      "time_base": "1/12800",
      "r_frame_rate": "25/1",
      "avg_frame_rate": "25/1"
    },
    {
      "index": 1,
      "codec_name": "aac",
      "codec_type": "audio",
      "time_base": "1/44100",
      "r_frame_rate": "0/0",
      "avg_frame_rate": "0/0"
    }
  ],
  "format": {
    "filename": "input.mp4",
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "2.000000"
  }
}`

func TestDecodeProbeOutput(t *testing.T) {
	info, err := decodeProbeOutput([]byte(sampleProbeJSON))
	require.NoError(t, err)

	assert.Equal(t, "mov,mp4,m4a,3gp,3g2,mj2", info.FormatName)
	assert.InDelta(t, 2.0, info.Duration, 1e-9)
	require.Len(t, info.Streams, 2)
	assert.Equal(t, 0, info.VideoStreamIndex)

	vs := info.VideoStream()
	require.NotNil(t, vs)
	assert.Equal(t, "h264", vs.CodecName)
	assert.Equal(t, 320, vs.Width)
	assert.Equal(t, 240, vs.Height)
	assert.Equal(t, "yuv420p", vs.PixelFormat)
}

func TestDecodeProbeOutputAudioOnly(t *testing.T) {
	audioOnly := `{
	  "streams": [
	    {"index": 0, "codec_name": "mp3", "codec_type": "audio"}
	  ],
	  "format": {"format_name": "mp3", "duration": "10.5"}
	}`
	info, err := decodeProbeOutput([]byte(audioOnly))
	require.NoError(t, err)
	assert.Equal(t, -1, info.VideoStreamIndex)
	assert.Nil(t, info.VideoStream())
}

func TestDecodeProbeOutputNoStreams(t *testing.T) {
	_, err := decodeProbeOutput([]byte(`{"streams": [], "format": {}}`))
	require.Error(t, err)
}

func TestDecodeProbeOutputMalformed(t *testing.T) {
	_, err := decodeProbeOutput([]byte(`not json`))
	require.Error(t, err)
}

func TestDecodePacketCount(t *testing.T) {
	data := `{"streams": [{"index": 0, "nb_read_packets": "1234"}]}`
	count, err := decodePacketCount([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, 1234, count)
}

func TestDecodePacketCountMissingStream(t *testing.T) {
	_, err := decodePacketCount([]byte(`{"streams": []}`))
	require.Error(t, err)
}

func TestDecodePacketCountBadValue(t *testing.T) {
	_, err := decodePacketCount([]byte(`{"streams": [{"index": 0, "nb_read_packets": "N/A"}]}`))
	require.Error(t, err)
}
