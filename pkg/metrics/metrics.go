package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Subscription outcomes used as the "result" label.
const (
	ResultCreated   = "created"
	ResultInvalid   = "invalid"
	ResultDuplicate = "duplicate"
	ResultError     = "error"
)

var (
	SubscriptionRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "newsletter_subscription_requests_total",
		Help: "Total number of subscription attempts grouped by outcome",
	}, []string{"result"})
	Subscribers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "newsletter_subscribers",
		Help: "Number of subscribers in the list after the last read or write",
	})

	// Mail metrics
	MailSendSuccess = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "newsletter_mail_send_success_total",
		Help: "Total number of welcome emails sent successfully",
	}, []string{"host"})
	MailSendFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "newsletter_mail_send_failure_total",
		Help: "Total number of failed welcome email sends",
	}, []string{"host"})
)

func init() {
	prometheus.MustRegister(SubscriptionRequests)
	prometheus.MustRegister(Subscribers)
	prometheus.MustRegister(MailSendSuccess)
	prometheus.MustRegister(MailSendFailure)
}

// MetricsHandler returns an http.Handler exposing Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
