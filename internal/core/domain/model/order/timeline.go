package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

// TimelineEntry records when a status was reached.
type TimelineEntry struct {
	status Status
	at     time.Time
}

func NewTimelineEntry(status Status, at time.Time) (TimelineEntry, error) {
	if err := status.Validate(); err != nil {
		return TimelineEntry{}, err
	}
	if at.IsZero() {
		return TimelineEntry{}, errs.NewValueIsRequiredError("timeline timestamp")
	}
	return TimelineEntry{status: status, at: at}, nil
}

func (e TimelineEntry) Status() Status {
	return e.status
}

func (e TimelineEntry) At() time.Time {
	return e.at
}

// validateTimeline checks a restored timeline: it starts at Pending, follows
// legal edges, has non-decreasing timestamps and ends at current.
func validateTimeline(timeline []TimelineEntry, current Status) error {
	if len(timeline) == 0 {
		return errs.NewValueIsRequiredError("timeline")
	}
	if timeline[0].status != Pending {
		return errs.NewValueIsInvalidErrorWithCause("timeline", errors.New("does not start at Pending"))
	}
	for i := 1; i < len(timeline); i++ {
		prev, next := timeline[i-1], timeline[i]
		if !prev.status.CanTransitionTo(next.status) {
			return errs.NewValueIsInvalidErrorWithCause("timeline",
				fmt.Errorf("%s cannot follow %s", next.status, prev.status))
		}
		if next.at.Before(prev.at) {
			return errs.NewValueIsInvalidErrorWithCause("timeline",
				fmt.Errorf("%s is earlier than %s", next.status, prev.status))
		}
	}
	if last := timeline[len(timeline)-1].status; last != current {
		return errs.NewValueIsInvalidErrorWithCause("timeline",
			fmt.Errorf("ends at %s but status is %s", last, current))
	}
	return nil
}
