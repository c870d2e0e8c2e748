package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fintrack/fintrack_app/internal/core/ports/services"
	"github.com/fintrack/fintrack_app/internal/dto"
	"github.com/fintrack/fintrack_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// allocationHandler handles HTTP requests related to allocations.
type allocationHandler struct {
	allocationService portssvc.AllocationSvcFacade
}

func newAllocationHandler(as portssvc.AllocationSvcFacade) *allocationHandler {
	return &allocationHandler{allocationService: as}
}

// registerAllocationRoutes registers routes related to allocations.
func registerAllocationRoutes(rg *gin.RouterGroup, allocationService portssvc.AllocationSvcFacade) {
	h := newAllocationHandler(allocationService)

	allocations := rg.Group("/allocations")
	{
		allocations.POST("", h.createAllocation)
		allocations.GET("", h.listAllocations)
		allocations.GET("/:id", h.getAllocation)
		allocations.PUT("/:id", h.updateAllocation)
		allocations.DELETE("/:id", h.deleteAllocation)
		allocations.POST("/:id/pay", h.markPaid)
	}
}

// createAllocation godoc
// @Summary Create an allocation
// @Description Creates a recurring monthly allocation (expense, income, or savings)
// @Tags allocations
// @Accept json
// @Produce json
// @Param allocation body dto.CreateAllocationRequest true "Allocation details"
// @Success 201 {object} dto.AllocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations [post]
func (h *allocationHandler) createAllocation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	allocation, err := h.allocationService.CreateAllocation(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create allocation")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAllocationResponse(allocation))
}

// listAllocations godoc
// @Summary List allocations
// @Tags allocations
// @Produce json
// @Success 200 {array} dto.AllocationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations [get]
func (h *allocationHandler) listAllocations(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	allocations, err := h.allocationService.ListAllocations(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list allocations")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAllocationResponse(allocations))
}

// getAllocation godoc
// @Summary Get an allocation by ID
// @Tags allocations
// @Produce json
// @Param id path string true "Allocation ID"
// @Success 200 {object} dto.AllocationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations/{id} [get]
func (h *allocationHandler) getAllocation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	allocation, err := h.allocationService.GetAllocationByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve allocation")
		return
	}
	c.JSON(http.StatusOK, dto.ToAllocationResponse(allocation))
}

// updateAllocation godoc
// @Summary Update an allocation
// @Description Updates allocation fields. Past payment entries are untouched.
// @Tags allocations
// @Accept json
// @Produce json
// @Param id path string true "Allocation ID"
// @Param allocation body dto.UpdateAllocationRequest true "Allocation fields"
// @Success 200 {object} dto.AllocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations/{id} [put]
func (h *allocationHandler) updateAllocation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	allocation, err := h.allocationService.UpdateAllocation(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update allocation")
		return
	}
	c.JSON(http.StatusOK, dto.ToAllocationResponse(allocation))
}

// deleteAllocation godoc
// @Summary Delete an allocation
// @Description Deletes the allocation and its payment entries. Synthetic transactions already written stay on the ledger.
// @Tags allocations
// @Param id path string true "Allocation ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations/{id} [delete]
func (h *allocationHandler) deleteAllocation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.allocationService.DeleteAllocation(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete allocation")
		return
	}
	c.Status(http.StatusNoContent)
}

// markPaid godoc
// @Summary Mark an allocation month as paid
// @Description Marks the given month paid from an account: applies the allocation amount to the account balance and records a synthetic transaction
// @Tags allocations
// @Accept json
// @Produce json
// @Param id path string true "Allocation ID"
// @Param payment body dto.MarkAllocationPaidRequest true "Month and paying account"
// @Success 200 {object} dto.AllocationResponse
// @Failure 400 {object} ErrorResponse "Validation error or insufficient balance"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations/{id}/pay [post]
func (h *allocationHandler) markPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.MarkAllocationPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for markPaid", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	allocation, err := h.allocationService.MarkPaid(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to mark allocation paid")
		return
	}
	c.JSON(http.StatusOK, dto.ToAllocationResponse(allocation))
}
