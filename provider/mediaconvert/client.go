package mediaconvert

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/external"
	mc "github.com/aws/aws-sdk-go-v2/service/mediaconvert"
	"github.com/cbsinteractive/mediaconvert-hls/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrNoEndpoint is returned when endpoint discovery returns no endpoints.
var ErrNoEndpoint = errors.New("mediaconvert: no endpoint returned")

type endpointDescriber interface {
	DescribeEndpointsRequest(*mc.DescribeEndpointsInput) mc.DescribeEndpointsRequest
}

// New returns a Driver bound to the account's MediaConvert endpoint. Unless
// cfg.Endpoint is set, a provisional client asks DescribeEndpoints for the
// endpoint and the first one returned is used. Any failure is final; there
// is no retry and no fallback endpoint.
func New(ctx context.Context, cfg config.MediaConvert, log logrus.FieldLogger) (*Driver, error) {
	if cfg.InputBucket == "" || cfg.OutputBucket == "" || cfg.RoleARN == "" {
		return nil, errors.New("incomplete MediaConvert config")
	}

	awsCfg, err := awsConfig(cfg)
	if err != nil {
		return nil, err
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint, err = discoverEndpoint(ctx, mc.New(awsCfg), cfg.MaxEndpoints)
		if err != nil {
			return nil, err
		}
		log.WithField("endpoint", endpoint).Info("discovered mediaconvert endpoint")
	}

	awsCfg.EndpointResolver = &aws.ResolveWithEndpoint{
		URL: endpoint,
	}

	return &Driver{
		client: mc.New(awsCfg),
		cfg:    cfg,
	}, nil
}

// awsConfig loads the shared defaults with the configured region and static
// credentials placed first, so neither is looked up on EC2 metadata.
func awsConfig(cfg config.MediaConvert) (aws.Config, error) {
	awsCfg, err := external.LoadDefaultAWSConfig(
		external.WithRegion(cfg.Region),
		external.WithCredentialsProvider{
			CredentialsProvider: aws.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		},
	)
	if err != nil {
		return aws.Config{}, errors.Wrap(err, "loading default aws config")
	}
	return awsCfg, nil
}

func discoverEndpoint(ctx context.Context, c endpointDescriber, max int64) (string, error) {
	resp, err := c.DescribeEndpointsRequest(&mc.DescribeEndpointsInput{
		MaxResults: aws.Int64(max),
	}).Send(ctx)
	if err != nil {
		return "", errors.Wrap(err, "describing mediaconvert endpoints")
	}
	if len(resp.Endpoints) == 0 || aws.StringValue(resp.Endpoints[0].Url) == "" {
		return "", ErrNoEndpoint
	}
	return aws.StringValue(resp.Endpoints[0].Url), nil
}
