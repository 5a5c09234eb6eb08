package app

import "context"

// Resync is a mutation followed by a re-fetch of the state it affects. The
// server is the source of truth, so the mutation's own response is ignored
// and the refreshed data is reduced in instead.
type Resync[T any] struct {
	Mutate  func(ctx context.Context) error
	Refetch func(ctx context.Context) (T, error)
	Loaded  func(T) Action

	// FailureMessage is raised when Mutate fails; RefetchFailureMessage when
	// the mutation succeeded but the re-fetch did not.
	FailureMessage        string
	RefetchFailureMessage string
}

// Run performs the mutation and re-fetch and returns the action describing
// the outcome. The returned error is the first failure, for logging.
func (r Resync[T]) Run(ctx context.Context) (Action, error) {
	if err := r.Mutate(ctx); err != nil {
		return ErrorRaised{Message: r.FailureMessage}, err
	}
	v, err := r.Refetch(ctx)
	if err != nil {
		return ErrorRaised{Message: r.RefetchFailureMessage}, err
	}
	return r.Loaded(v), nil
}
