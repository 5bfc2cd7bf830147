package av

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is returned when a value is not part of an enumeration.
var ErrInvalid = errors.New("invalid value")

// JobStatus is the state MediaConvert reports for a job.
type JobStatus string

const (
	StatusSubmitted   = JobStatus("SUBMITTED")
	StatusProgressing = JobStatus("PROGRESSING")
	StatusComplete    = JobStatus("COMPLETE")
	StatusCanceled    = JobStatus("CANCELED")
	StatusError       = JobStatus("ERROR")
)

// ParseJobStatus accepts any of the job statuses, case insensitive.
func ParseJobStatus(s string) (JobStatus, error) {
	st := JobStatus(strings.ToUpper(s))
	switch st {
	case StatusSubmitted, StatusProgressing, StatusComplete, StatusCanceled, StatusError:
		return st, nil
	}
	return "", fmt.Errorf("job status: %w: %q", ErrInvalid, s)
}
