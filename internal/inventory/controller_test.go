package inventory

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"boletera/internal/notifications"
)

func TestCleanupHoldsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := newTestService(
		&fakeRepo{cleanupExpired: func() (int, error) { return 3, nil }},
		&fakeEvents{}, &fakeLayouts{}, &fakePricing{},
		notifications.NewNoopProducer(),
	)
	ctrl := NewController(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/maintenance/cleanup-holds", nil)

	ctrl.CleanupHolds(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"reclaimed":3`) {
		t.Errorf("expected reclaimed count in body, got %s", w.Body.String())
	}
}
