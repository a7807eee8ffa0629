package importcsv

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentroll/internal/auth"
	"rentroll/internal/billing"
	"rentroll/internal/http/respond"
	"rentroll/internal/importer/readings"
	"rentroll/internal/validation"
)

type Handler struct {
	parser  *readings.Parser
	billSvc *billing.Service
}

func NewHandler(parser *readings.Parser, billSvc *billing.Service) *Handler {
	return &Handler{parser: parser, billSvc: billSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importReadings)
	r.Post("/confirm", h.confirmImport)
}

type createParamsDTO struct {
	TenantID     uuid.UUID       `json:"tenant_id" validate:"required"`
	BillingMonth int             `json:"billing_month" validate:"gte=1,lte=12"`
	BillingYear  int             `json:"billing_year" validate:"gte=2000,lte=2100"`
	RentAmount   decimal.Decimal `json:"rent_amount" validate:"gte=0"`
	ElecPrev     decimal.Decimal `json:"elec_prev_reading" validate:"gte=0"`
	ElecCurr     decimal.Decimal `json:"elec_curr_reading" validate:"gte=0"`
	ElecRate     decimal.Decimal `json:"elec_rate" validate:"gte=0"`
	Water        decimal.Decimal `json:"water_amount" validate:"gte=0"`
	Notes        string          `json:"notes,omitempty"`
}

type importItemDTO struct {
	UnitNumber string          `json:"unit_number"`
	ElecPrev   decimal.Decimal `json:"elec_prev_reading"`
	ElecCurr   decimal.Decimal `json:"elec_curr_reading"`
	ElecRate   decimal.Decimal `json:"elec_rate"`
	Water      decimal.Decimal `json:"water_amount"`
	Notes      string          `json:"notes,omitempty"`
}

type billDTO struct {
	ID           uuid.UUID       `json:"id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	TenantName   string          `json:"tenant_name,omitempty"`
	UnitNumber   string          `json:"unit_number,omitempty"`
	BillingMonth int             `json:"billing_month"`
	BillingYear  int             `json:"billing_year"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       billing.Status  `json:"status"`
}

type conflictDTO struct {
	Incoming createParamsDTO `json:"incoming"`
	Existing billDTO         `json:"existing"`
}

type importSuccessResponse struct {
	Imported  int             `json:"imported"`
	Bills     []billDTO       `json:"bills"`
	Unmatched []importItemDTO `json:"unmatched,omitempty"`
}

type importConflictResponse struct {
	New       []createParamsDTO `json:"new"`
	Conflicts []conflictDTO     `json:"conflicts"`
	Unmatched []importItemDTO   `json:"unmatched,omitempty"`
}

type confirmRequest struct {
	BillingMonth int               `json:"billing_month" validate:"gte=1,lte=12"`
	BillingYear  int               `json:"billing_year" validate:"gte=2000,lte=2100"`
	Params       []createParamsDTO `json:"params" validate:"dive"`
}

func (h *Handler) importReadings(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	buildingID, err := uuid.Parse(r.FormValue("building_id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "building_id field is required")
		return
	}

	month, err := strconv.Atoi(r.FormValue("month"))
	if err != nil || month < 1 || month > 12 {
		respond.Error(w, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	year, err := strconv.Atoi(r.FormValue("year"))
	if err != nil || year < 2000 || year > 2100 {
		respond.Error(w, http.StatusBadRequest, "year must be between 2000 and 2100")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	items, err := h.parser.Parse(file)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.billSvc.ImportBatch(r.Context(), ownerID, buildingID, year, month, items)
	if err != nil {
		respond.Internal(w, err)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]createParamsDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
			Unmatched: toItemDTOs(result.Unmatched),
		}
		for _, p := range result.New {
			resp.New = append(resp.New, toParamsDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toParamsDTO(c.Incoming),
				Existing: toBillDTO(c.Existing),
			})
		}

		respond.JSON(w, http.StatusConflict, resp)

		return
	}

	respond.JSON(w, http.StatusCreated, importSuccessResponse{
		Imported:  len(result.Imported),
		Bills:     toBillDTOs(result.Imported),
		Unmatched: toItemDTOs(result.Unmatched),
	})
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerFromContext(r.Context())

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if fields := validation.Check(req); fields != nil {
		respond.FieldErrors(w, fields)
		return
	}

	params := make([]billing.CreateParams, 0, len(req.Params))
	for _, p := range req.Params {
		params = append(params, billing.CreateParams{
			TenantID:     p.TenantID,
			BillingMonth: p.BillingMonth,
			BillingYear:  p.BillingYear,
			Charges: billing.ChargeInput{
				Rent:     p.RentAmount,
				ElecPrev: p.ElecPrev,
				ElecCurr: p.ElecCurr,
				ElecRate: p.ElecRate,
				Water:    p.Water,
			},
			Notes: p.Notes,
		})
	}

	bills, err := h.billSvc.ConfirmBatch(r.Context(), ownerID, req.BillingYear, req.BillingMonth, params)
	if err != nil {
		respond.Internal(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importSuccessResponse{
		Imported: len(bills),
		Bills:    toBillDTOs(bills),
	})
}

func toParamsDTO(p billing.CreateParams) createParamsDTO {
	return createParamsDTO{
		TenantID:     p.TenantID,
		BillingMonth: p.BillingMonth,
		BillingYear:  p.BillingYear,
		RentAmount:   p.Charges.Rent,
		ElecPrev:     p.Charges.ElecPrev,
		ElecCurr:     p.Charges.ElecCurr,
		ElecRate:     p.Charges.ElecRate,
		Water:        p.Charges.Water,
		Notes:        p.Notes,
	}
}

func toBillDTO(b *billing.Bill) billDTO {
	return billDTO{
		ID:           b.ID,
		TenantID:     b.TenantID,
		TenantName:   b.TenantName,
		UnitNumber:   b.UnitNumber,
		BillingMonth: b.BillingMonth,
		BillingYear:  b.BillingYear,
		TotalAmount:  b.TotalAmount,
		Status:       b.Status,
	}
}

func toBillDTOs(bills []*billing.Bill) []billDTO {
	dtos := make([]billDTO, 0, len(bills))
	for _, b := range bills {
		dtos = append(dtos, toBillDTO(b))
	}

	return dtos
}

func toItemDTOs(items []billing.ImportItem) []importItemDTO {
	if len(items) == 0 {
		return nil
	}

	dtos := make([]importItemDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, importItemDTO{
			UnitNumber: it.UnitNumber,
			ElecPrev:   it.ElecPrev,
			ElecCurr:   it.ElecCurr,
			ElecRate:   it.ElecRate,
			Water:      it.Water,
			Notes:      it.Notes,
		})
	}

	return dtos
}
