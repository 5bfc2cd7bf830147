package mediaconvert

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	mc "github.com/aws/aws-sdk-go-v2/service/mediaconvert"
	"github.com/cbsinteractive/mediaconvert-hls/av"
)

// aacCodingMode maps a channel count to its AAC coding mode.
var aacCodingMode = map[int]mc.AacCodingMode{
	1: mc.AacCodingModeCodingMode10,
	2: mc.AacCodingModeCodingMode20,
	6: mc.AacCodingModeCodingMode51,
}

func aacDescriptionFrom(a av.Audio) mc.AudioDescription {
	return mc.AudioDescription{
		AudioTypeControl:    mc.AudioTypeControlFollowInput,
		LanguageCodeControl: mc.AudioLanguageCodeControlFollowInput,
		CodecSettings: &mc.AudioCodecSettings{
			Codec: mc.AudioCodecAac,
			AacSettings: &mc.AacSettings{
				CodecProfile:                   mc.AacCodecProfileLc,
				RateControlMode:                mc.AacRateControlModeCbr,
				CodingMode:                     aacCodingMode[a.Channels],
				SampleRate:                     aws.Int64(a.SampleRate),
				Bitrate:                        aws.Int64(a.Bitrate),
				RawFormat:                      mc.AacRawFormatNone,
				Specification:                  mc.AacSpecificationMpeg4,
				AudioDescriptionBroadcasterMix: mc.AacAudioDescriptionBroadcasterMixNormal,
			},
		},
	}
}
