package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSubscriptionMetricsIncrement(t *testing.T) {
	SubscriptionRequests.Reset()
	defer SubscriptionRequests.Reset()

	SubscriptionRequests.WithLabelValues(ResultCreated).Inc()
	SubscriptionRequests.WithLabelValues(ResultDuplicate).Add(2)

	if v := testutil.ToFloat64(SubscriptionRequests.WithLabelValues(ResultCreated)); v != 1 {
		t.Fatalf("expected created == 1, got %v", v)
	}
	if v := testutil.ToFloat64(SubscriptionRequests.WithLabelValues(ResultDuplicate)); v != 2 {
		t.Fatalf("expected duplicate == 2, got %v", v)
	}

	Subscribers.Set(7)
	if v := testutil.ToFloat64(Subscribers); v != 7 {
		t.Fatalf("expected subscribers gauge == 7, got %v", v)
	}
}

func TestMailMetricsExistAndIncrement(t *testing.T) {
	host := "smtp.test.local"

	MailSendSuccess.WithLabelValues(host).Inc()
	if v := testutil.ToFloat64(MailSendSuccess.WithLabelValues(host)); v < 1 {
		t.Fatalf("expected MailSendSuccess >= 1, got %v", v)
	}

	MailSendFailure.WithLabelValues(host).Inc()
	if v := testutil.ToFloat64(MailSendFailure.WithLabelValues(host)); v < 1 {
		t.Fatalf("expected MailSendFailure >= 1, got %v", v)
	}
}

func TestMetricsHandler(t *testing.T) {
	Subscribers.Set(3)

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "newsletter_subscribers 3") {
		t.Fatalf("expected gauge in exposition output, got:\n%s", rec.Body.String())
	}
}
