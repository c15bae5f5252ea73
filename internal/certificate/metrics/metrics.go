package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the certificate module: issuance counts
// and the verification hot path.
type Metrics struct {
	CertificatesIssued prometheus.Counter
	Verifications      *prometheus.CounterVec
	IssueDuration      prometheus.Histogram
	VerifyDuration     prometheus.Histogram
}

// New creates a Metrics instance with all certificate module metrics registered.
func New() *Metrics {
	return &Metrics{
		CertificatesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "coldchain_certificates_issued_total",
			Help: "Total number of certificates issued",
		}),
		Verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "coldchain_signature_verifications_total",
			Help: "Total number of signature verifications by outcome",
		}, []string{"outcome"}),
		IssueDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "coldchain_issue_certificate_duration_seconds",
			Help:    "Duration of IssueCertificate operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		VerifyDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "coldchain_verify_signature_duration_seconds",
			Help:    "Duration of IsMatchingSignature operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementIssued records a successful issuance.
func (m *Metrics) IncrementIssued() {
	m.CertificatesIssued.Inc()
}

// IncrementVerification records a verification outcome ("match" or "mismatch").
func (m *Metrics) IncrementVerification(outcome string) {
	m.Verifications.WithLabelValues(outcome).Inc()
}

// ObserveIssue records the duration of an IssueCertificate operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveIssue(start time.Time) {
	m.IssueDuration.Observe(time.Since(start).Seconds())
}

// ObserveVerify records the duration of an IsMatchingSignature operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveVerify(start time.Time) {
	m.VerifyDuration.Observe(time.Since(start).Seconds())
}
