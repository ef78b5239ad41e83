package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) IncUserRegistered()                            {}
func (n *NoopRecorder) IncLogin(success bool)                         {}
func (n *NoopRecorder) IncAuthRejected()                              {}
func (n *NoopRecorder) IncRateLimited()                               {}
func (n *NoopRecorder) IncRecipeCreated()                             {}
func (n *NoopRecorder) IncRecipeUpdated()                             {}
func (n *NoopRecorder) IncRecipeDeleted()                             {}
func (n *NoopRecorder) IncRecipeRated()                               {}
func (n *NoopRecorder) IncCategoryCreated()                           {}
func (n *NoopRecorder) IncCategoryDeleted()                           {}
func (n *NoopRecorder) IncMealPlanCreated()                           {}
func (n *NoopRecorder) IncMealPlanDeleted()                           {}
func (n *NoopRecorder) ObserveRequestDuration(duration time.Duration) {}
