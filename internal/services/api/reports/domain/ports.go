package domain

import (
	"context"

	activities "bukatsu/internal/services/api/activities/domain"
)

// Upload is a raw image attached to a submission
type Upload struct {
	Data        []byte
	ContentType string
}

// Submitter runs the submission pipeline and returns the posted message id
type Submitter interface {
	Submit(ctx context.Context, act activities.Activity, in SubmitInput, img *Upload) (string, error)
}
