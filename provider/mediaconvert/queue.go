package mediaconvert

import "github.com/aws/aws-sdk-go-v2/aws"

// queue returns the configured queue, or nil to let MediaConvert use the
// account's default queue.
func (p *Driver) queue() *string {
	if p.cfg.QueueARN == "" {
		return nil
	}
	return aws.String(p.cfg.QueueARN)
}
