package mediaconvert

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	mc "github.com/aws/aws-sdk-go-v2/service/mediaconvert"
	"github.com/cbsinteractive/mediaconvert-hls/av"
)

const audioSelector = "Audio Selector 1"

func (p *Driver) inputLocation() av.Location {
	return av.Location{Bucket: p.cfg.InputBucket, Path: p.cfg.InputBucketPath}
}

func (p *Driver) outputLocation() av.Location {
	return av.Location{Bucket: p.cfg.OutputBucket, Path: p.cfg.OutputBucketPath}
}

// createRequest builds the job settings for j. It never fails: file names
// are not validated.
func (p *Driver) createRequest(j av.Job) *mc.CreateJobInput {
	outputs := make([]mc.Output, 0, 3)
	for _, r := range av.Ladder(j.Orientation) {
		outputs = append(outputs, outputFrom(r, !j.ExcludeAudio))
	}

	return &mc.CreateJobInput{
		Queue: p.queue(),
		Role:  aws.String(p.cfg.RoleARN),
		Settings: &mc.JobSettings{
			Inputs: []mc.Input{
				inputFrom(j.Input(p.inputLocation())),
			},
			OutputGroups: []mc.OutputGroup{
				hlsGroupFrom(j.Output(p.outputLocation()), outputs),
			},
		},
	}
}

func inputFrom(file string) mc.Input {
	return mc.Input{
		FileInput: aws.String(file),
		AudioSelectors: map[string]mc.AudioSelector{
			audioSelector: {
				DefaultSelection: mc.AudioDefaultSelectionDefault,
				Offset:           aws.Int64(0),
			},
		},
		VideoSelector: &mc.VideoSelector{
			ColorSpace: mc.ColorSpaceFollow,
			Rotate:     mc.InputRotateDegree0,
		},
		FilterEnable:   mc.InputFilterEnableAuto,
		FilterStrength: aws.Int64(0),
		DeblockFilter:  mc.InputDeblockFilterDisabled,
		DenoiseFilter:  mc.InputDenoiseFilterDisabled,
		PsiControl:     mc.InputPsiControlUsePsi,
		TimecodeSource: mc.InputTimecodeSourceEmbedded,
	}
}

// outputFrom returns one rendition of the ladder. Every rendition shares
// the same container, codec and (optional) audio settings; only size and
// rate vary.
func outputFrom(r av.Rendition, audio bool) mc.Output {
	o := mc.Output{
		NameModifier: aws.String(r.Name),
		OutputSettings: &mc.OutputSettings{
			HlsSettings: &mc.HlsSettings{
				AudioGroupId:       aws.String(audioGroupID),
				IFrameOnlyManifest: mc.HlsIFrameOnlyManifestExclude,
			},
		},
		ContainerSettings: m3u8ContainerSettings(),
		VideoDescription: &mc.VideoDescription{
			Width:             aws.Int64(r.Width),
			Height:            aws.Int64(r.Height),
			ScalingBehavior:   mc.ScalingBehaviorDefault,
			Sharpness:         aws.Int64(50),
			AntiAlias:         mc.AntiAliasEnabled,
			TimecodeInsertion: mc.VideoTimecodeInsertionDisabled,
			ColorMetadata:     mc.ColorMetadataInsert,
			RespondToAfd:      mc.RespondToAfdNone,
			AfdSignaling:      mc.AfdSignalingNone,
			DropFrameTimecode: mc.DropFrameTimecodeEnabled,
			CodecSettings:     h264CodecSettingsFrom(r),
		},
	}
	if audio {
		o.AudioDescriptions = []mc.AudioDescription{aacDescriptionFrom(av.StereoAAC)}
	}
	return o
}
