package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/obra-api/internal/models"
	"github.com/sjperalta/obra-api/internal/repository"
	"github.com/sjperalta/obra-api/internal/services"
)

type ContractHandler struct {
	contractService    *services.ContractService
	installmentService *services.InstallmentService
}

func NewContractHandler(contractService *services.ContractService, installmentService *services.InstallmentService) *ContractHandler {
	return &ContractHandler{contractService: contractService, installmentService: installmentService}
}

// CreateContractRequest is the body of POST /contracts
type CreateContractRequest struct {
	ContractNo  string           `json:"contractNo" binding:"max=64"`
	Date        string           `json:"date" binding:"required"`
	ClientID    uint             `json:"clientId" binding:"required"`
	UnitID      uint             `json:"unitId" binding:"required"`
	TotalAmount *decimal.Decimal `json:"totalAmount" binding:"required"`
	DownPayment *decimal.Decimal `json:"downPayment" binding:"required"`
	Months      int              `json:"months" binding:"required"`
	PlanType    string           `json:"planType" binding:"required"`
	Discount    *decimal.Decimal `json:"discount"`
	Commission  *decimal.Decimal `json:"commission"`
	Notes       *string          `json:"notes"`
}

var contractDateLayouts = []string{"2006-01-02", time.RFC3339}

func parseContractDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range contractDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (r *CreateContractRequest) toInput() (services.CreateContractInput, error) {
	date, ok := parseContractDate(r.Date)
	if !ok {
		verr := services.NewValidationError()
		verr.Add("date", "must be a date in YYYY-MM-DD or RFC 3339 format")
		return services.CreateContractInput{}, verr
	}

	input := services.CreateContractInput{
		ContractNo:  r.ContractNo,
		Date:        date,
		ClientID:    r.ClientID,
		UnitID:      r.UnitID,
		TotalAmount: *r.TotalAmount,
		DownPayment: *r.DownPayment,
		Months:      r.Months,
		PlanType:    r.PlanType,
		Notes:       r.Notes,
	}
	if r.Discount != nil {
		input.Discount = *r.Discount
	}
	if r.Commission != nil {
		input.Commission = *r.Commission
	}
	return input, nil
}

// @Summary Create Contract
// @Description Issue a contract: assigns the number, marks the unit sold and generates the installment schedule atomically. The body may be flat or wrapped in {"contract": {...}}.
// @Tags Contracts
// @Accept json
// @Produce json
// @Param contract body CreateContractRequest true "Contract request"
// @Success 201 {object} models.ContractResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /contracts [post]
func (h *ContractHandler) Create(c *gin.Context) {
	var req CreateContractRequest
	if !bindAndValidate(c, "contract", &req) {
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondError(c, err)
		return
	}

	contract, err := h.contractService.Create(c.Request.Context(), input, requestMeta(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contract.ToResponse())
}

// @Summary List Contracts
// @Description Get a paginated list of contracts
// @Tags Contracts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param perPage query int false "Items per page" default(20)
// @Param search query string false "Contract number or client name"
// @Param clientId query int false "Filter by client"
// @Param unitId query int false "Filter by unit"
// @Param projectId query int false "Filter by project"
// @Param status query string false "Filter by status"
// @Param planType query string false "Filter by plan type"
// @Param dateFrom query string false "Issued on or after (YYYY-MM-DD)"
// @Param dateTo query string false "Issued on or before (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Router /contracts [get]
func (h *ContractHandler) Index(c *gin.Context) {
	query := &repository.ContractQuery{ListQuery: parseListQuery(c)}
	query.ClientID = queryUint(c, "clientId")
	query.UnitID = queryUint(c, "unitId")
	query.ProjectID = queryUint(c, "projectId")
	query.Status = c.Query("status")
	query.PlanType = strings.ToUpper(c.Query("planType"))
	if from, ok := parseContractDate(c.Query("dateFrom")); ok {
		query.Filters["date_from"] = from.Format("2006-01-02")
	}
	if to, ok := parseContractDate(c.Query("dateTo")); ok {
		query.Filters["date_to"] = to.Format("2006-01-02")
	}

	contracts, total, err := h.contractService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ContractResponse, 0, len(contracts))
	for i := range contracts {
		responses = append(responses, contracts[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"contracts":  responses,
		"pagination": pagination(query.ListQuery, total),
	})
}

// @Summary Get Contract
// @Description Get a contract with client, unit, project and installment count
// @Tags Contracts
// @Produce json
// @Param id path int true "Contract ID"
// @Success 200 {object} models.ContractResponse
// @Failure 404 {object} map[string]string
// @Router /contracts/{id} [get]
func (h *ContractHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	contract, err := h.contractService.FindByIDWithDetails(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.ToResponse())
}

// @Summary List Contract Installments
// @Description Get the installment schedule of a contract ordered by installment number
// @Tags Contracts
// @Produce json
// @Param id path int true "Contract ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /contracts/{id}/installments [get]
func (h *ContractHandler) Installments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	installments, err := h.installmentService.ListByContract(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.InstallmentResponse, 0, len(installments))
	for i := range installments {
		responses = append(responses, installments[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"installments": responses})
}
