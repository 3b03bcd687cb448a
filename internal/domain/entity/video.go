package entity

// StreamInfo describes one stream of an opened container.
type StreamInfo struct {
	Index        int
	CodecType    string
	CodecName    string
	Width        int
	Height       int
	PixelFormat  string
	TimeBase     string
	FrameRate    string
	AvgFrameRate string
}

// VideoInfo is the metadata of an opened input container.
type VideoInfo struct {
	Path             string
	FormatName       string
	Duration         float64
	Streams          []StreamInfo
	VideoStreamIndex int
}

// VideoStream returns the first video-typed stream, or nil when the
// container carries none.
func (v *VideoInfo) VideoStream() *StreamInfo {
	for i := range v.Streams {
		if v.Streams[i].CodecType == "video" {
			return &v.Streams[i]
		}
	}
	return nil
}
