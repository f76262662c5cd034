package typecheck

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomePassed   = "passed"
	outcomeRejected = "rejected"
	outcomeAdvisory = "advisory"
)

var (
	// callsTotal counts checked invocations of wrapped functions.
	//
	// Labels:
	//   - function: the wrapped function name.
	//   - outcome: "passed" when every argument matched, "rejected" when the
	//     failure strategy aborted the call, "advisory" when failures were
	//     reported but the call proceeded.
	callsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "typecheck_calls_total",
		Help: "The total number of checked calls to wrapped functions",
	}, []string{"function", "outcome"})

	// invalidArgumentsTotal counts arguments that failed their type check.
	invalidArgumentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "typecheck_invalid_arguments_total",
		Help: "The total number of arguments that did not match their declared types",
	}, []string{"function", "parameter"})
)

func observeCall(function, outcome string) {
	callsTotal.WithLabelValues(function, outcome).Inc()
}

func observeInvalidArgument(function, parameter string) {
	invalidArgumentsTotal.WithLabelValues(function, parameter).Inc()
}
