package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for admission status evaluation.
type Metrics struct {
	// Rule check outcomes by rule type and result
	RuleChecks *prometheus.CounterVec

	// Admission verdicts by result
	AdmissionOutcome *prometheus.CounterVec

	// Assessments excluded from evaluation by warning code
	DataWarnings *prometheus.CounterVec

	// Rejected admission criteria by rule type
	ConfigurationErrors *prometheus.CounterVec

	// Course status cache lookups by result
	CacheLookups *prometheus.CounterVec

	// Duration of a full course evaluation
	CourseEvaluateLatency prometheus.Histogram
}

// New creates a new Metrics instance registered with reg. A nil reg uses
// the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RuleChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admission_rule_checks_total",
			Help: "Total rule checks by rule type and result",
		}, []string{"rule", "result"}), // result: "passed", "failed"

		AdmissionOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admission_outcomes_total",
			Help: "Total admission verdicts by result",
		}, []string{"result"}),

		DataWarnings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admission_data_warnings_total",
			Help: "Assessments excluded from evaluation by warning code",
		}, []string{"code"}),

		ConfigurationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admission_configuration_errors_total",
			Help: "Admission criteria rejected as invalid by rule type, or \"validation\" for field errors",
		}, []string{"rule"}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admission_cache_lookups_total",
			Help: "Course admission status cache lookups by result",
		}, []string{"result"}), // result: "hit", "miss", "error"

		CourseEvaluateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "admission_course_evaluate_duration_seconds",
			Help:    "Duration of admission status evaluation for a whole course",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

func result(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

// IncrementRuleCheck records the outcome of one rule check.
func (m *Metrics) IncrementRuleCheck(rule string, passed bool) {
	if m != nil {
		m.RuleChecks.WithLabelValues(rule, result(passed, "passed", "failed")).Inc()
	}
}

// IncrementAdmission records an admission verdict.
func (m *Metrics) IncrementAdmission(admitted bool) {
	if m != nil {
		m.AdmissionOutcome.WithLabelValues(result(admitted, "admitted", "rejected")).Inc()
	}
}

// AddDataWarnings records excluded assessments.
func (m *Metrics) AddDataWarnings(code string, n int) {
	if m != nil && n > 0 {
		m.DataWarnings.WithLabelValues(code).Add(float64(n))
	}
}

// IncrementConfigurationError records rejected criteria.
func (m *Metrics) IncrementConfigurationError(rule string) {
	if m != nil {
		m.ConfigurationErrors.WithLabelValues(rule).Inc()
	}
}

// IncrementCacheLookup records a cache hit, miss or error.
func (m *Metrics) IncrementCacheLookup(outcome string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(outcome).Inc()
	}
}

// ObserveCourseEvaluateLatency records the duration of a course evaluation.
func (m *Metrics) ObserveCourseEvaluateLatency(d time.Duration) {
	if m != nil {
		m.CourseEvaluateLatency.Observe(d.Seconds())
	}
}
