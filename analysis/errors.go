package analysis

import (
	"errors"
	"fmt"

	"content-optimizer/internal/models"
)

// ErrNoData is returned when an analysis is requested over zero records.
var ErrNoData = errors.New("no videos available for analysis")

// InsufficientDataError reports a niche below the minimum record threshold.
// It is a user-correctable precondition, not a failure: the fix is to fetch
// more videos.
type InsufficientDataError struct {
	Niche models.Niche
	Have  int
	Need  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("not enough data for %s niche: have %d videos, need at least %d", e.Niche, e.Have, e.Need)
}
