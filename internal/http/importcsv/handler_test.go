package importcsv_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rentroll/internal/billing"
	"rentroll/internal/http/importcsv"
	"rentroll/internal/importer/readings"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	svc := billing.NewService(
		billing.NewMockRepository(ctrl),
		billing.NewMockTenantDirectory(ctrl),
	)
	h := importcsv.NewHandler(readings.NewParser(), svc)

	r := chi.NewRouter()
	r.Route("/", h.Routes)

	return r
}

// An out-of-range billing period in a confirm request must be rejected as
// a field error before anything reaches the database.
func TestHandler_ConfirmImport_RejectsBadPeriod(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"billing_month": 13,
		"billing_year": 2024,
		"params": [{
			"tenant_id": "` + uuid.New().String() + `",
			"billing_month": 13,
			"billing_year": 2024,
			"rent_amount": 5000,
			"elec_prev_reading": 100,
			"elec_curr_reading": 150,
			"elec_rate": 11,
			"water_amount": 200
		}]
	}`

	req := httptest.NewRequest(http.MethodPost, "/confirm", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "billing_month")
}

func TestHandler_ConfirmImport_RejectsMissingTenant(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"billing_month": 3,
		"billing_year": 2024,
		"params": [{
			"billing_month": 3,
			"billing_year": 2024,
			"rent_amount": 5000,
			"elec_prev_reading": 100,
			"elec_curr_reading": 150,
			"elec_rate": 11,
			"water_amount": 200
		}]
	}`

	req := httptest.NewRequest(http.MethodPost, "/confirm", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "tenant_id")
}
