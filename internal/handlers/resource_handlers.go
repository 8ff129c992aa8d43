package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/obra-api/internal/models"
	"github.com/sjperalta/obra-api/internal/repository"
	"github.com/sjperalta/obra-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type CreateProjectRequest struct {
	Code        string  `json:"code" binding:"max=32"`
	Name        string  `json:"name" binding:"required"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

// @Summary List Projects
// @Description Get a paginated list of projects with unit counts
// @Tags Projects
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param perPage query int false "Items per page" default(20)
// @Param search query string false "Search term"
// @Success 200 {object} map[string]interface{}
// @Router /projects [get]
func (h *ProjectHandler) Index(c *gin.Context) {
	query := parseListQuery(c)

	projects, total, err := h.projectService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, projects[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"projects": responses, "pagination": pagination(query, total)})
}

// @Summary Get Project
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} models.ProjectResponse
// @Failure 404 {object} map[string]string
// @Router /projects/{id} [get]
func (h *ProjectHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	project, err := h.projectService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project.ToResponse())
}

// @Summary Create Project
// @Description Create a project. The code is generated when left blank.
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body CreateProjectRequest true "Project"
// @Success 201 {object} models.ProjectResponse
// @Failure 400 {object} map[string]interface{}
// @Router /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if !bindAndValidate(c, "project", &req) {
		return
	}

	project := &models.Project{
		Code:        req.Code,
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
	}
	if err := h.projectService.Create(c.Request.Context(), project, requestMeta(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project.ToResponse())
}

type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type CreateClientRequest struct {
	Code       string  `json:"code" binding:"max=32"`
	Name       string  `json:"name" binding:"required"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	NationalID *string `json:"nationalId"`
	Address    *string `json:"address"`
	Notes      *string `json:"notes"`
}

// @Summary List Clients
// @Tags Clients
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param perPage query int false "Items per page" default(20)
// @Param search query string false "Name, code, phone or national id"
// @Success 200 {object} map[string]interface{}
// @Router /clients [get]
func (h *ClientHandler) Index(c *gin.Context) {
	query := parseListQuery(c)

	clients, total, err := h.clientService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients, "pagination": pagination(query, total)})
}

// @Summary Get Client
// @Tags Clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} models.Client
// @Failure 404 {object} map[string]string
// @Router /clients/{id} [get]
func (h *ClientHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	client, err := h.clientService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// @Summary Create Client
// @Tags Clients
// @Accept json
// @Produce json
// @Param client body CreateClientRequest true "Client"
// @Success 201 {object} models.Client
// @Failure 400 {object} map[string]interface{}
// @Router /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if !bindAndValidate(c, "client", &req) {
		return
	}

	client := &models.Client{
		Code:       req.Code,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		NationalID: req.NationalID,
		Address:    req.Address,
		Notes:      req.Notes,
	}
	if err := h.clientService.Create(c.Request.Context(), client, requestMeta(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

type UnitHandler struct {
	unitService *services.UnitService
}

func NewUnitHandler(unitService *services.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

type CreateUnitRequest struct {
	Code      string           `json:"code" binding:"max=32"`
	ProjectID uint             `json:"projectId" binding:"required"`
	Name      string           `json:"name" binding:"required"`
	Type      string           `json:"type"`
	Area      *decimal.Decimal `json:"area"`
	Price     *decimal.Decimal `json:"price" binding:"required"`
	Status    string           `json:"status" binding:"omitempty,oneof=available reserved sold cancelled"`
	Notes     *string          `json:"notes"`
}

// @Summary List Units
// @Tags Units
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param perPage query int false "Items per page" default(20)
// @Param search query string false "Name or code"
// @Param projectId query int false "Filter by project"
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by type"
// @Success 200 {object} map[string]interface{}
// @Router /units [get]
func (h *UnitHandler) Index(c *gin.Context) {
	query := &repository.UnitQuery{ListQuery: parseListQuery(c)}
	query.ProjectID = queryUint(c, "projectId")
	query.Status = c.Query("status")
	query.Type = c.Query("type")

	units, total, err := h.unitService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.UnitResponse, 0, len(units))
	for i := range units {
		responses = append(responses, units[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"units": responses, "pagination": pagination(query.ListQuery, total)})
}

// @Summary Get Unit
// @Tags Units
// @Produce json
// @Param id path int true "Unit ID"
// @Success 200 {object} models.UnitResponse
// @Failure 404 {object} map[string]string
// @Router /units/{id} [get]
func (h *UnitHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	unit, err := h.unitService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit.ToResponse())
}

// @Summary Create Unit
// @Tags Units
// @Accept json
// @Produce json
// @Param unit body CreateUnitRequest true "Unit"
// @Success 201 {object} models.UnitResponse
// @Failure 400 {object} map[string]interface{}
// @Router /units [post]
func (h *UnitHandler) Create(c *gin.Context) {
	var req CreateUnitRequest
	if !bindAndValidate(c, "unit", &req) {
		return
	}

	unit := &models.Unit{
		Code:      req.Code,
		ProjectID: req.ProjectID,
		Name:      req.Name,
		Type:      req.Type,
		Price:     *req.Price,
		Status:    req.Status,
		Notes:     req.Notes,
	}
	if req.Area != nil {
		unit.Area = *req.Area
	}
	if err := h.unitService.Create(c.Request.Context(), unit, requestMeta(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, unit.ToResponse())
}

// @Summary Transition Unit
// @Description Fire a status event on a unit: reserve, release, cancel or restore
// @Tags Units
// @Produce json
// @Param id path int true "Unit ID"
// @Param event path string true "Event" Enums(reserve, release, cancel, restore)
// @Success 200 {object} models.UnitResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /units/{id}/{event} [post]
func (h *UnitHandler) Transition(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	unit, err := h.unitService.Transition(c.Request.Context(), id, c.Param("event"), requestMeta(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit.ToResponse())
}

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List Audit Logs
// @Tags Audits
// @Produce json
// @Param entity query string false "Entity name (Contract, Unit, Client, Project)"
// @Param entityId query int false "Entity ID"
// @Param action query string false "Action (CREATE, TRANSITION)"
// @Param page query int false "Page number" default(1)
// @Param perPage query int false "Items per page" default(20)
// @Success 200 {object} map[string]interface{}
// @Router /audits [get]
func (h *AuditHandler) Index(c *gin.Context) {
	query := &repository.AuditQuery{ListQuery: parseListQuery(c)}
	query.Entity = c.Query("entity")
	query.EntityID = queryUint(c, "entityId")
	query.Action = c.Query("action")

	logs, total, err := h.auditService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audits": logs, "pagination": pagination(query.ListQuery, total)})
}
