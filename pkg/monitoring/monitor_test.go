package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordSubmission(t *testing.T) {
	Init()
	Init()

	before := testutil.ToFloat64(QuizSubmissions.WithLabelValues("passed"))
	skippedBefore := testutil.ToFloat64(SkippedAnswers)

	RecordSubmission(5, true, 2)

	if got := testutil.ToFloat64(QuizSubmissions.WithLabelValues("passed")); got != before+1 {
		t.Fatalf("expected passed counter %v, got %v", before+1, got)
	}
	if got := testutil.ToFloat64(SkippedAnswers); got != skippedBefore+2 {
		t.Fatalf("expected skipped counter %v, got %v", skippedBefore+2, got)
	}
}
