package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fintrack/fintrack_app/internal/core/ports/services"
	"github.com/fintrack/fintrack_app/internal/dto"
	"github.com/fintrack/fintrack_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// borrowingHandler handles HTTP requests related to borrowings.
type borrowingHandler struct {
	borrowingService portssvc.BorrowingSvcFacade
}

func newBorrowingHandler(bs portssvc.BorrowingSvcFacade) *borrowingHandler {
	return &borrowingHandler{borrowingService: bs}
}

// RegisterBorrowingRoutes registers routes related to borrowings. Exported so
// handler tests can mount the routes on their own router.
func RegisterBorrowingRoutes(rg *gin.RouterGroup, borrowingService portssvc.BorrowingSvcFacade) {
	h := newBorrowingHandler(borrowingService)

	borrowings := rg.Group("/borrowings")
	{
		borrowings.POST("", h.createBorrowing)
		borrowings.GET("", h.listBorrowings)
		borrowings.GET("/:id", h.getBorrowing)
		borrowings.PUT("/:id", h.updateBorrowing)
		borrowings.DELETE("/:id", h.deleteBorrowing)
		borrowings.POST("/:id/pay", h.pay)
	}
}

// createBorrowing godoc
// @Summary Record a borrowing
// @Description Records money borrowed from or lent to a person. When an account is given, its balance moves immediately: credited for borrow, debited for lend.
// @Tags borrowings
// @Accept json
// @Produce json
// @Param borrowing body dto.CreateBorrowingRequest true "Borrowing details"
// @Success 201 {object} dto.BorrowingResponse
// @Failure 400 {object} ErrorResponse "Validation error or insufficient balance"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /borrowings [post]
func (h *borrowingHandler) createBorrowing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBorrowingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBorrowing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	borrowing, err := h.borrowingService.CreateBorrowing(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create borrowing")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBorrowingResponse(borrowing))
}

// listBorrowings godoc
// @Summary List borrowings
// @Tags borrowings
// @Produce json
// @Param type query string false "Filter by type" Enums(borrow, lend)
// @Param status query string false "Filter by status" Enums(active, completed)
// @Success 200 {array} dto.BorrowingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /borrowings [get]
func (h *borrowingHandler) listBorrowings(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListBorrowingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	borrowings, err := h.borrowingService.ListBorrowings(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list borrowings")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBorrowingResponse(borrowings))
}

// getBorrowing godoc
// @Summary Get a borrowing by ID
// @Description Retrieves the borrowing together with its payment ledger
// @Tags borrowings
// @Produce json
// @Param id path string true "Borrowing ID"
// @Success 200 {object} dto.BorrowingDetailResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /borrowings/{id} [get]
func (h *borrowingHandler) getBorrowing(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	borrowing, txns, err := h.borrowingService.GetBorrowingByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve borrowing")
		return
	}
	c.JSON(http.StatusOK, dto.ToBorrowingDetailResponse(borrowing, txns))
}

// updateBorrowing godoc
// @Summary Update a borrowing
// @Description Updates counterparty details or the total amount. Changing the total recomputes the remaining amount and status without touching account balances.
// @Tags borrowings
// @Accept json
// @Produce json
// @Param id path string true "Borrowing ID"
// @Param borrowing body dto.UpdateBorrowingRequest true "Borrowing fields"
// @Success 200 {object} dto.BorrowingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /borrowings/{id} [put]
func (h *borrowingHandler) updateBorrowing(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBorrowingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	borrowing, err := h.borrowingService.UpdateBorrowing(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update borrowing")
		return
	}
	c.JSON(http.StatusOK, dto.ToBorrowingResponse(borrowing))
}

// deleteBorrowing godoc
// @Summary Delete a borrowing
// @Description Deletes the borrowing and its ledger, undoing the creation-time balance effect on the initial account
// @Tags borrowings
// @Param id path string true "Borrowing ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /borrowings/{id} [delete]
func (h *borrowingHandler) deleteBorrowing(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.borrowingService.DeleteBorrowing(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete borrowing")
		return
	}
	c.Status(http.StatusNoContent)
}

// pay godoc
// @Summary Record a payment against a borrowing
// @Description Records a repayment (borrow) or a return (lend), moving the account balance and the borrowing's remaining amount atomically. Rejected for completed borrowings and amounts exceeding the remaining amount.
// @Tags borrowings
// @Accept json
// @Produce json
// @Param id path string true "Borrowing ID"
// @Param payment body dto.PayBorrowingRequest true "Payment details"
// @Success 200 {object} dto.BorrowingResponse
// @Failure 400 {object} ErrorResponse "Validation error or insufficient balance"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Borrowing completed or amount exceeds remaining"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /borrowings/{id}/pay [post]
func (h *borrowingHandler) pay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.PayBorrowingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for pay", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	borrowing, err := h.borrowingService.Pay(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToBorrowingResponse(borrowing))
}
