package jobdata

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidJobData means there was no usable job data object at all
	ErrInvalidJobData = errors.New("missing job data")
	// ErrInsufficientJobData means extraction produced no role, experience or skills
	ErrInsufficientJobData = errors.New("no role, experience or skills in job data")
)

// UpstreamContentError is returned when the job description is actually an
// error page from the target site.
type UpstreamContentError struct {
	Marker      string
	Description string
}

func (e *UpstreamContentError) Error() string {
	return fmt.Sprintf("job description contains error-page marker %q", e.Marker)
}
