package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPipelineCounters(t *testing.T) {
	before := testutil.ToFloat64(DocumentsTotal.WithLabelValues("pump_station", "valid"))
	DocumentsTotal.WithLabelValues("pump_station", "valid").Inc()
	if got := testutil.ToFloat64(DocumentsTotal.WithLabelValues("pump_station", "valid")); got != before+1 {
		t.Fatalf("documents_total = %f, want %f", got, before+1)
	}

	ExtractorFailuresTotal.WithLabelValues("table").Inc()
	if testutil.CollectAndCount(ExtractorFailuresTotal) == 0 {
		t.Error("expected extractor_failures_total series")
	}

	DocumentDuration.WithLabelValues("unknown").Observe(0.002)
	if testutil.CollectAndCount(DocumentDuration) == 0 {
		t.Error("expected document_duration_seconds observations")
	}
}

func TestWriteTextfile(t *testing.T) {
	RegisterPipelineMetrics()
	RegisterPipelineMetrics()
	BatchJobsTotal.WithLabelValues("DONE").Inc()

	path := filepath.Join(t.TempDir(), "blueparser.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "blueparser_batch_jobs_total") {
		t.Fatalf("textfile missing batch counter:\n%s", b)
	}
}
