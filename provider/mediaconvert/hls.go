package mediaconvert

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	mc "github.com/aws/aws-sdk-go-v2/service/mediaconvert"
)

const (
	hlsGroupName       = "Apple HLS"
	hlsGroupCustomName = "HLS"
	audioGroupID       = "program_audio"

	hlsSegmentSeconds = 4
)

// hlsGroupFrom packages outputs into one single-directory HLS group written
// under destination.
func hlsGroupFrom(destination string, outputs []mc.Output) mc.OutputGroup {
	return mc.OutputGroup{
		Name:       aws.String(hlsGroupName),
		CustomName: aws.String(hlsGroupCustomName),
		OutputGroupSettings: &mc.OutputGroupSettings{
			Type: mc.OutputGroupTypeHlsGroupSettings,
			HlsGroupSettings: &mc.HlsGroupSettings{
				Destination:            aws.String(destination),
				DirectoryStructure:     mc.HlsDirectoryStructureSingleDirectory,
				ManifestDurationFormat: mc.HlsManifestDurationFormatInteger,
				StreamInfResolution:    mc.HlsStreamInfResolutionInclude,
				ClientCache:            mc.HlsClientCacheEnabled,
				CaptionLanguageSetting: mc.HlsCaptionLanguageSettingOmit,
				ManifestCompression:    mc.HlsManifestCompressionNone,
				CodecSpecification:     mc.HlsCodecSpecificationRfc4281,
				OutputSelection:        mc.HlsOutputSelectionManifestsAndSegments,
				ProgramDateTime:        mc.HlsProgramDateTimeExclude,
				ProgramDateTimePeriod:  aws.Int64(600),
				TimedMetadataId3Frame:  mc.HlsTimedMetadataId3FramePriv,
				TimedMetadataId3Period: aws.Int64(10),
				SegmentControl:         mc.HlsSegmentControlSegmentedFiles,
				SegmentLength:          aws.Int64(hlsSegmentSeconds),
				MinSegmentLength:       aws.Int64(0),
				MinFinalSegmentLength:  aws.Float64(0),
			},
		},
		Outputs: outputs,
	}
}

func m3u8ContainerSettings() *mc.ContainerSettings {
	return &mc.ContainerSettings{
		Container: mc.ContainerTypeM3u8,
		M3u8Settings: &mc.M3u8Settings{
			AudioFramesPerPes:  aws.Int64(4),
			PcrControl:         mc.M3u8PcrControlPcrEveryPesPacket,
			PmtPid:             aws.Int64(480),
			PrivateMetadataPid: aws.Int64(503),
			ProgramNumber:      aws.Int64(1),
			PatInterval:        aws.Int64(0),
			PmtInterval:        aws.Int64(0),
			Scte35Source:       mc.M3u8Scte35SourceNone,
			Scte35Pid:          aws.Int64(500),
			NielsenId3:         mc.M3u8NielsenId3None,
			TimedMetadata:      mc.TimedMetadataNone,
			TimedMetadataPid:   aws.Int64(502),
			VideoPid:           aws.Int64(481),
			AudioPids:          []int64{482, 483, 484, 485, 486, 487, 488, 489, 490, 491, 492},
		},
	}
}
