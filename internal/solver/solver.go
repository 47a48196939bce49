// Package solver wraps the CP-SAT backend: it takes a built model,
// enforces the wall-clock time limit, and translates the raw solver
// status into the five-way result spec.md §4.4 calls for.
package solver

import (
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	satpb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"

	"github.com/campsched/campsched/internal/camperrors"
	"github.com/campsched/campsched/internal/log"
	"github.com/campsched/campsched/internal/model"
)

// Status is the five-way solve outcome.
type Status int

const (
	Invalid Status = iota
	Optimal
	Feasible
	Infeasible
	TimeoutNoSolution
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Feasible:
		return "FEASIBLE"
	case Infeasible:
		return "INFEASIBLE"
	case TimeoutNoSolution:
		return "TIMEOUT_NO_SOLUTION"
	default:
		return "INVALID"
	}
}

// Result carries a solve outcome. Response is nil unless Status is
// Optimal or Feasible — the extractor must never run on anything else.
type Result struct {
	Status   Status
	Response *cmpb.CpSolverResponse
	Elapsed  time.Duration
}

// IncumbentCallback receives an objective value; it is advisory only and
// may be nil. Solve invokes it once, after the search returns, with the
// final response's objective value; intermediate incumbents are not
// reported.
type IncumbentCallback func(objectiveValue float64)

// Options configures one Solve call. Hint and DecisionOrder hold an X
// ordering, most-preferred first; Solve does not read them, so no hint or
// decision strategy reaches CP-SAT.
type Options struct {
	TimeLimit     time.Duration
	RandomSeed    int32
	NumWorkers    int32
	OnIncumbent   IncumbentCallback
	Hint          []model.XKey
	DecisionOrder []cpmodel.BoolVar
}

// Solve hands v.Builder's model to CP-SAT with a fixed time limit and
// seed, per spec.md §5's reproducibility requirement, and maps the raw
// response onto the taxonomy in §7.
func Solve(v *model.Variables, opts Options) (Result, error) {
	if opts.TimeLimit <= 0 {
		opts.TimeLimit = 60 * time.Second
	}

	m, err := v.Builder.Model()
	if err != nil {
		return Result{}, &camperrors.SolverInternalError{Detail: fmt.Sprintf("instantiate model: %v", err)}
	}

	params := &satpb.SatParameters{
		MaxTimeInSeconds: proto.Float64(opts.TimeLimit.Seconds()),
		RandomSeed:       proto.Int32(opts.RandomSeed),
	}
	if opts.NumWorkers > 0 {
		params.NumWorkers = proto.Int32(opts.NumWorkers)
	}

	start := time.Now()
	response, err := cpmodel.SolveCpModelWithSatParameters(m, params)
	elapsed := time.Since(start)
	if err != nil {
		return Result{}, &camperrors.SolverInternalError{Detail: fmt.Sprintf("solve: %v", err)}
	}

	if opts.OnIncumbent != nil && response != nil {
		opts.OnIncumbent(response.GetObjectiveValue())
	}

	switch response.GetStatus() {
	case cmpb.CpSolverStatus_OPTIMAL:
		log.L().Sugar().Infow("solve complete", "status", "OPTIMAL", "elapsed", elapsed)
		return Result{Status: Optimal, Response: response, Elapsed: elapsed}, nil
	case cmpb.CpSolverStatus_FEASIBLE:
		log.L().Sugar().Infow("solve complete", "status", "FEASIBLE", "elapsed", elapsed)
		return Result{Status: Feasible, Response: response, Elapsed: elapsed}, nil
	case cmpb.CpSolverStatus_INFEASIBLE:
		return Result{Status: Infeasible, Elapsed: elapsed}, &camperrors.ModelInfeasibleError{}
	case cmpb.CpSolverStatus_UNKNOWN:
		return Result{Status: TimeoutNoSolution, Elapsed: elapsed}, &camperrors.TimeoutError{Seconds: int(opts.TimeLimit.Seconds())}
	default:
		return Result{Status: Invalid, Elapsed: elapsed}, &camperrors.SolverInternalError{Detail: response.GetStatus().String()}
	}
}
