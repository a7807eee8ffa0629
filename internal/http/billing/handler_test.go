package billing_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rentroll/internal/billing"
	billinghttp "rentroll/internal/http/billing"
)

func newTestRouter(t *testing.T) (http.Handler, *billing.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := billing.NewMockRepository(ctrl)
	svc := billing.NewService(repo, billing.NewMockTenantDirectory(ctrl))

	r := chi.NewRouter()
	r.Route("/", billinghttp.NewHandler(svc).Routes)

	return r, repo
}

// A malformed period filter is a client error, not a silent full list.
func TestHandler_List_RejectsMalformedPeriodParams(t *testing.T) {
	for _, target := range []string{"/?year=20x4", "/?month=abc"} {
		t.Run(target, func(t *testing.T) {
			router, _ := newTestRouter(t)

			req := httptest.NewRequest(http.MethodGet, target, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandler_List_AppliesPeriodFilter(t *testing.T) {
	router, repo := newTestRouter(t)

	repo.EXPECT().
		ListBills(gomock.Any(), gomock.Any(), gomock.Cond(func(f billing.ListFilter) bool {
			return f.Year != nil && *f.Year == 2024 && f.Month != nil && *f.Month == 3
		})).
		Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/?year=2024&month=3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
