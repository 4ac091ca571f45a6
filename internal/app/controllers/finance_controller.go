package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/services"
	"github.com/instracore/backend/internal/middleware"
	"github.com/instracore/backend/internal/pkg/helpers"
)

// FinanceController handles salaries, expenses, fees and the ledger
type FinanceController struct {
	financeService *services.FinanceService
	logger         zerolog.Logger
}

// NewFinanceController creates a new FinanceController
func NewFinanceController(financeService *services.FinanceService, logger zerolog.Logger) *FinanceController {
	return &FinanceController{
		financeService: financeService,
		logger:         logger,
	}
}

// CreateSalary records one employee's pay for one month
func (c *FinanceController) CreateSalary(ctx *gin.Context) {
	var req dto.CreateSalaryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.financeService.CreateSalary(ctx.Request.Context(), currentUserID(ctx), &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("employeeID", req.EmployeeID).Str("month", req.Month).Msg("Failed to create salary")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// UpdateSalaryStatus approves or pays a salary record. Paying writes a
// ledger entry for the net amount.
func (c *FinanceController) UpdateSalaryStatus(ctx *gin.Context) {
	salaryID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSalaryStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.financeService.UpdateSalaryStatus(ctx.Request.Context(), currentUserID(ctx), salaryID, req.Status)
	if err != nil {
		c.logger.Warn().Err(err).Int64("salaryID", salaryID).Str("status", string(req.Status)).Msg("Salary status change rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// ListSalaries lists salary records, optionally for one month
func (c *FinanceController) ListSalaries(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	resp, err := c.financeService.ListSalaries(ctx.Request.Context(), ctx.Query("month"), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// MySalaries lists the current employee's salary records
func (c *FinanceController) MySalaries(ctx *gin.Context) {
	resp, err := c.financeService.ListEmployeeSalaries(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// CreateExpense records an institute expense in pending status
func (c *FinanceController) CreateExpense(ctx *gin.Context) {
	var req dto.CreateExpenseRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.financeService.CreateExpense(ctx.Request.Context(), currentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// UpdateExpenseStatus approves or rejects an expense. Approving writes
// a ledger entry.
func (c *FinanceController) UpdateExpenseStatus(ctx *gin.Context) {
	expenseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateExpenseStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.financeService.UpdateExpenseStatus(ctx.Request.Context(), currentUserID(ctx), expenseID, req.Status)
	if err != nil {
		c.logger.Warn().Err(err).Int64("expenseID", expenseID).Str("status", string(req.Status)).Msg("Expense status change rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// ListExpenses lists expenses
func (c *FinanceController) ListExpenses(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	resp, err := c.financeService.ListExpenses(ctx.Request.Context(), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// CreateTransaction records a manual ledger entry
func (c *FinanceController) CreateTransaction(ctx *gin.Context) {
	var req dto.CreateTransactionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.financeService.CreateTransaction(ctx.Request.Context(), currentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// ListTransactions lists ledger entries
func (c *FinanceController) ListTransactions(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	resp, err := c.financeService.ListTransactions(ctx.Request.Context(), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// MyFees lists the current student's fee payments
func (c *FinanceController) MyFees(ctx *gin.Context) {
	resp, err := c.financeService.ListStudentFees(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// ListStudentFees lists one student's fee payments
func (c *FinanceController) ListStudentFees(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.financeService.ListStudentFees(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// PayMyFee lets the current student pay one of their own fees
func (c *FinanceController) PayMyFee(ctx *gin.Context) {
	feeID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.PayFeeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.financeService.PayFee(ctx.Request.Context(), currentUserID(ctx), feeID, true, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("feeID", feeID).Msg("Fee payment rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// PayFee marks any student's fee as paid, for over-the-counter payments
func (c *FinanceController) PayFee(ctx *gin.Context) {
	feeID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.PayFeeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.financeService.PayFee(ctx.Request.Context(), currentUserID(ctx), feeID, false, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// CancelFee cancels a pending fee
func (c *FinanceController) CancelFee(ctx *gin.Context) {
	feeID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.financeService.CancelFee(ctx.Request.Context(), currentUserID(ctx), feeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Fee cancelled"))
}

// GenerateOverview recomputes the monthly financial rollup
func (c *FinanceController) GenerateOverview(ctx *gin.Context) {
	resp, err := c.financeService.GenerateOverview(ctx.Request.Context(), currentUserID(ctx), ctx.Query("month"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// GetOverview returns the monthly financial rollup
func (c *FinanceController) GetOverview(ctx *gin.Context) {
	resp, err := c.financeService.GetOverview(ctx.Request.Context(), ctx.Query("month"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}
