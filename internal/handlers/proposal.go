package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"propboard/internal/auth"
	dom "propboard/internal/domain"
	"propboard/internal/dto"
	"propboard/internal/logger"
	"propboard/internal/service"
	"propboard/internal/view"

	"github.com/gin-gonic/gin"
)

type ProposalHandler struct {
	svc *service.ProposalService
}

func NewProposalHandler(svc *service.ProposalService) *ProposalHandler {
	return &ProposalHandler{svc: svc}
}

// Create godoc
// @Summary      Create a proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateProposalRequest  true  "Proposal body"
// @Success      201   {object}  dto.ProposalResponse
// @Failure      400   {object}  map[string]string
// @Router       /proposals [post]
func (h *ProposalHandler) Create(c *gin.Context) {
	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := dom.Proposal{
		ClientName:         req.ClientName,
		Value:              req.Value,
		Status:             dom.Status(req.Status),
		ExpectedReturnDate: req.ExpectedReturnDate.Ptr(),
		SentVia:            req.SentVia,
		Notes:              req.Notes,
	}
	if t := req.SentDate.Ptr(); t != nil {
		p.SentDate = *t
	}
	if t := req.LastFollowUp.Ptr(); t != nil {
		p.LastFollowUp = *t
	}

	out, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), p)
	if err != nil {
		if isValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		serverError(c, "create proposal", err)
		return
	}
	c.JSON(http.StatusCreated, proposalToResponse(out))
}

// List godoc
// @Summary      List all proposals
// @Tags         proposals
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListProposalsResponse
// @Failure      500  {object}  map[string]string
// @Router       /proposals [get]
func (h *ProposalHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		serverError(c, "list proposals", err)
		return
	}
	c.JSON(http.StatusOK, dto.ListProposalsResponse{Items: proposalsToResponses(list)})
}

// View godoc
// @Summary      Derived table view: search, filters, sort, pagination, alerts
// @Tags         proposals
// @Produce      json
// @Security     CookieAuth
// @Param        q          query  string  false  "Client name search (case-insensitive substring)"
// @Param        sent_from  query  string  false  "Sent date lower bound (YYYY-MM-DD)"
// @Param        sent_to    query  string  false  "Sent date upper bound (YYYY-MM-DD)"
// @Param        value_min  query  number  false  "Value lower bound"
// @Param        value_max  query  number  false  "Value upper bound"
// @Param        sort       query  string  false  "client_name|sent_date|value|status|last_follow_up|expected_return_date"
// @Param        dir        query  string  false  "asc|desc (default asc)"
// @Param        page       query  int     false  "1-indexed page (default 1, clamped)"
// @Param        page_size  query  int     false  "Page size (default 10)"
// @Success      200  {object}  dto.ViewResponse
// @Failure      500  {object}  map[string]string
// @Router       /proposals/view [get]
func (h *ProposalHandler) View(c *gin.Context) {
	controls := parseControls(c)
	proj, err := h.svc.View(c.Request.Context(), auth.UserIDFromContext(c), controls)
	if err != nil {
		serverError(c, "project view", err)
		return
	}
	c.JSON(http.StatusOK, dto.ViewResponse{
		Items:         proposalsToResponses(proj.Items),
		Page:          proj.Page,
		PageCount:     proj.PageCount,
		TotalFiltered: proj.TotalFiltered,
		Alerts:        proj.Alerts,
	})
}

// Stats godoc
// @Summary      Aggregate statistics over all proposals
// @Tags         proposals
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.StatsResponse
// @Failure      500  {object}  map[string]string
// @Router       /proposals/stats [get]
func (h *ProposalHandler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		serverError(c, "compute stats", err)
		return
	}
	c.JSON(http.StatusOK, dto.StatsResponse{
		Total:         st.Total,
		Pending:       st.Pending,
		Approved:      st.Approved,
		Rejected:      st.Rejected,
		TotalValue:    st.TotalValue,
		ApprovedValue: st.ApprovedValue,
		ApprovalRate:  st.ApprovalRate,
		NeedsFollowUp: st.NeedsFollowUp,
		ReturnOverdue: st.ReturnOverdue,
	})
}

// GetByID godoc
// @Summary      Get a proposal by ID
// @Tags         proposals
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Proposal ID"
// @Success      200  {object}  dto.ProposalResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /proposals/{id} [get]
func (h *ProposalHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.GetByID(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		serverError(c, "get proposal", err)
		return
	}
	c.JSON(http.StatusOK, proposalToResponse(p))
}

// Update godoc
// @Summary      Update a proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int  true  "Proposal ID"
// @Param        body  body      dto.UpdateProposalRequest  true  "Partial update"
// @Success      200   {object}  dto.ProposalResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /proposals/{id} [patch]
func (h *ProposalHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := service.UpdatePatch{
		ClientName: req.ClientName,
		Value:      req.Value,
		SentVia:    req.SentVia,
		Notes:      req.Notes,
	}
	if req.Status != nil {
		st := dom.Status(*req.Status)
		patch.Status = &st
	}
	if req.SentDate != nil {
		patch.SentDate = req.SentDate.Ptr()
	}
	if req.LastFollowUp != nil {
		patch.LastFollowUp = req.LastFollowUp.Ptr()
	}
	if req.ExpectedReturnDate != nil {
		// Field present: a date sets it, an empty value clears it.
		if t := req.ExpectedReturnDate.Ptr(); t != nil {
			patch.ExpectedReturnDate = t
		} else {
			patch.ClearReturnDate = true
		}
	}

	p, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), id, patch)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if isValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		serverError(c, "update proposal", err)
		return
	}
	c.JSON(http.StatusOK, proposalToResponse(p))
}

// Delete godoc
// @Summary      Delete a proposal
// @Tags         proposals
// @Security     CookieAuth
// @Param        id   path  int  true  "Proposal ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /proposals/{id} [delete]
func (h *ProposalHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), id); err != nil {
		serverError(c, "delete proposal", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetStatus godoc
// @Summary      Set a proposal's status
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int  true  "Proposal ID"
// @Param        body  body      dto.SetStatusRequest  true  "Target status"
// @Success      200   {object}  dto.ProposalResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /proposals/{id}/status [post]
func (h *ProposalHandler) SetStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.SetStatus(c.Request.Context(), auth.UserIDFromContext(c), id, dom.Status(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if isValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		serverError(c, "set status", err)
		return
	}
	c.JSON(http.StatusOK, proposalToResponse(p))
}

// BulkStatus godoc
// @Summary      Apply one status to all selected proposals
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.BulkStatusRequest  true  "Selected ids and target status"
// @Success      200   {object}  dto.BulkStatusResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /proposals/bulk-status [post]
func (h *ProposalHandler) BulkStatus(c *gin.Context) {
	var req dto.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := h.svc.BulkSetStatus(c.Request.Context(), auth.UserIDFromContext(c), req.IDs, dom.Status(req.Status))
	if err != nil {
		if isValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		serverError(c, "bulk set status", err)
		return
	}
	c.JSON(http.StatusOK, dto.BulkStatusResponse{Updated: n})
}

// Search godoc
// @Summary      Search proposals by client name
// @Tags         proposals
// @Produce      json
// @Security     CookieAuth
// @Param        q    query     string  true  "Search query"
// @Success      200  {object}  dto.ListProposalsResponse
// @Failure      500  {object}  map[string]string
// @Router       /proposals/search [get]
func (h *ProposalHandler) Search(c *gin.Context) {
	list, err := h.svc.Search(c.Request.Context(), auth.UserIDFromContext(c), c.Query("q"))
	if err != nil {
		serverError(c, "search proposals", err)
		return
	}
	c.JSON(http.StatusOK, dto.ListProposalsResponse{Items: proposalsToResponses(list)})
}

// Overdue godoc
// @Summary      List pending proposals past their expected return date
// @Tags         proposals
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListProposalsResponse
// @Failure      500  {object}  map[string]string
// @Router       /proposals/overdue [get]
func (h *ProposalHandler) Overdue(c *gin.Context) {
	list, err := h.svc.Overdue(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		serverError(c, "list overdue", err)
		return
	}
	c.JSON(http.StatusOK, dto.ListProposalsResponse{Items: proposalsToResponses(list)})
}

// parseControls reads the view query params. Malformed numeric or date
// bounds are treated as absent, never as errors.
func parseControls(c *gin.Context) view.Controls {
	controls := view.Controls{
		Search:   c.Query("q"),
		SortKey:  view.ParseSortKey(c.Query("sort")),
		SortDesc: c.Query("dir") == "desc",
		Page:     1,
		PageSize: view.DefaultPageSize,
	}
	if t, err := dto.ParseDate(c.Query("sent_from")); err == nil && t != nil {
		controls.SentFrom = t
	}
	if t, err := dto.ParseDate(c.Query("sent_to")); err == nil && t != nil {
		controls.SentTo = t
	}
	if v, err := strconv.ParseFloat(c.Query("value_min"), 64); err == nil {
		controls.ValueMin = &v
	}
	if v, err := strconv.ParseFloat(c.Query("value_max"), 64); err == nil {
		controls.ValueMax = &v
	}
	if n, err := strconv.Atoi(c.Query("page")); err == nil && n > 0 {
		controls.Page = n
	}
	if n, err := strconv.Atoi(c.Query("page_size")); err == nil && n > 0 {
		controls.PageSize = n
	}
	return controls
}

// serverError logs the failure with its request context and responds 500.
func serverError(c *gin.Context, op string, err error) {
	logger.Error(c.Request.Context(), op, "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func isValidationErr(err error) bool {
	return errors.Is(err, service.ErrEmptyClientName) ||
		errors.Is(err, service.ErrNegativeValue) ||
		errors.Is(err, service.ErrInvalidStatus) ||
		errors.Is(err, service.ErrConstraint)
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func proposalToResponse(p dom.Proposal) dto.ProposalResponse {
	return dto.ProposalResponse{
		ID:                 p.ID,
		ClientName:         p.ClientName,
		SentDate:           p.SentDate,
		Value:              p.Value,
		Status:             string(p.Status),
		LastFollowUp:       p.LastFollowUp,
		ExpectedReturnDate: p.ExpectedReturnDate,
		SentVia:            p.SentVia,
		Notes:              p.Notes,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func proposalsToResponses(list []dom.Proposal) []dto.ProposalResponse {
	out := make([]dto.ProposalResponse, len(list))
	for i := range list {
		out[i] = proposalToResponse(list[i])
	}
	return out
}
