package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// countingCollector はステータスコード記録だけを数えるMetricsCollector。
type countingCollector struct {
	statuses []int
}

func (c *countingCollector) RecordUserCreated(string) {}
func (c *countingCollector) RecordShopCreated() {}
func (c *countingCollector) RecordShopMatched() {}
func (c *countingCollector) RecordReceiptUpserted() {}
func (c *countingCollector) RecordReceiptURLLookup(bool) {}
func (c *countingCollector) RecordHTTPStatus(statusCode int) {
	c.statuses = append(c.statuses, statusCode)
}

func TestMetricsMiddleware_RecordsStatusCode(t *testing.T) {
	collector := &countingCollector{}
	handler := NewMetricsMiddleware(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/receipt/get-by-id", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if len(collector.statuses) != 1 {
		t.Fatalf("recorded statuses = %d, want 1", len(collector.statuses))
	}
	if collector.statuses[0] != http.StatusNotFound {
		t.Errorf("recorded status = %d, want 404", collector.statuses[0])
	}
}

func TestMetricsMiddleware_ImplicitWriteRecords200(t *testing.T) {
	collector := &countingCollector{}
	handler := NewMetricsMiddleware(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if len(collector.statuses) != 1 || collector.statuses[0] != http.StatusOK {
		t.Errorf("recorded statuses = %v, want [200]", collector.statuses)
	}
}
