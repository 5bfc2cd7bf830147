package av

// Audio describes the single track attached to every rendition unless the
// job excludes audio.
type Audio struct {
	Codec      string
	Channels   int
	SampleRate int64
	Bitrate    int64
}

// StereoAAC is the only audio track the ladder ever carries.
var StereoAAC = Audio{
	Codec:      "aac",
	Channels:   2,
	SampleRate: 44100,
	Bitrate:    128000,
}
