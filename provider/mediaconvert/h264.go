package mediaconvert

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	mc "github.com/aws/aws-sdk-go-v2/service/mediaconvert"
	"github.com/cbsinteractive/mediaconvert-hls/av"
)

// h264CodecSettingsFrom returns the QVBR profile shared by every rendition.
// Only the bitrate ceiling and quality level come from r.
func h264CodecSettingsFrom(r av.Rendition) *mc.VideoCodecSettings {
	return &mc.VideoCodecSettings{
		Codec: mc.VideoCodecH264,
		H264Settings: &mc.H264Settings{
			RateControlMode:    mc.H264RateControlModeQvbr,
			QvbrSettings:       &mc.H264QvbrSettings{QvbrQualityLevel: aws.Int64(r.Quality)},
			MaxBitrate:         aws.Int64(r.Bitrate),
			ParControl:         mc.H264ParControlInitializeFromSource,
			QualityTuningLevel: mc.H264QualityTuningLevelSinglePass,
			CodecLevel:         mc.H264CodecLevelAuto,
			CodecProfile:       mc.H264CodecProfileMain,
			FramerateControl:   mc.H264FramerateControlInitializeFromSource,

			// 2s closed GOPs line up with the 4s HLS segments.
			GopSize:                             aws.Float64(2.0),
			GopSizeUnits:                        mc.H264GopSizeUnitsSeconds,
			GopClosedCadence:                    aws.Int64(1),
			GopBReference:                       mc.H264GopBReferenceDisabled,
			NumberBFramesBetweenReferenceFrames: aws.Int64(2),
			NumberReferenceFrames:               aws.Int64(3),
			DynamicSubGop:                       mc.H264DynamicSubGopStatic,
			MinIInterval:                        aws.Int64(0),
			SceneChangeDetect:                   mc.H264SceneChangeDetectEnabled,

			SlowPal:                      mc.H264SlowPalDisabled,
			Syntax:                       mc.H264SyntaxDefault,
			FieldEncoding:                mc.H264FieldEncodingPaff,
			Telecine:                     mc.H264TelecineNone,
			FramerateConversionAlgorithm: mc.H264FramerateConversionAlgorithmDuplicateDrop,
			EntropyEncoding:              mc.H264EntropyEncodingCabac,
			Slices:                       aws.Int64(1),
			UnregisteredSeiTimecode:      mc.H264UnregisteredSeiTimecodeDisabled,
			RepeatPps:                    mc.H264RepeatPpsDisabled,
			InterlaceMode:                mc.H264InterlaceModeProgressive,
			Softness:                     aws.Int64(0),

			AdaptiveQuantization:         mc.H264AdaptiveQuantizationHigh,
			SpatialAdaptiveQuantization:  mc.H264SpatialAdaptiveQuantizationEnabled,
			TemporalAdaptiveQuantization: mc.H264TemporalAdaptiveQuantizationEnabled,
			FlickerAdaptiveQuantization:  mc.H264FlickerAdaptiveQuantizationDisabled,
		},
	}
}
