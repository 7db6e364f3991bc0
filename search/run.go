package search

import "context"

// Result is the outcome of running a search to completion with Run.
type Result struct {
	Found   bool // true when the Goal was settled and a path reconstructed
	Path    Path // empty when Found is false
	Steps   int  // number of Step calls
	Settled int  // cells settled
}

// Run seeds s and steps it until the Goal is settled or the open set is
// exhausted, then reconstructs the path. ctx is checked between steps.
//
// No path is a normal outcome (Found=false, nil error). Seeding and invariant
// errors are returned as-is; cancellation returns ctx.Err().
func Run(ctx context.Context, s *State) (Result, error) {
	if err := s.Seed(); err != nil {
		return Result{}, err
	}

	var res Result
	for !s.Status().Terminal() {
		if err := ctx.Err(); err != nil {
			res.Settled = s.SettledCount()
			return res, err
		}
		if _, err := s.Step(); err != nil {
			return res, err
		}
		res.Steps++
	}
	res.Settled = s.SettledCount()

	if s.Status() == StatusExhausted {
		return res, nil
	}
	path, err := s.Reconstruct()
	if err != nil {
		return res, err
	}
	res.Found = true
	res.Path = path

	return res, nil
}
