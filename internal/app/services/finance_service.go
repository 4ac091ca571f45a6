package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/repositories"
	"github.com/instracore/backend/internal/pkg/apperrors"
	"github.com/instracore/backend/internal/pkg/helpers"
)

// FinanceService handles salaries, expenses, the transaction ledger,
// student fees and the monthly financial overview
type FinanceService struct {
	financeRepo  *repositories.FinanceRepository
	userRepo     *repositories.UserRepository
	activityRepo *repositories.ActivityRepository
	logger       zerolog.Logger
}

// NewFinanceService creates a new FinanceService
func NewFinanceService(
	financeRepo *repositories.FinanceRepository,
	userRepo *repositories.UserRepository,
	activityRepo *repositories.ActivityRepository,
	logger zerolog.Logger,
) *FinanceService {
	return &FinanceService{
		financeRepo:  financeRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// CreateSalary records one employee's pay for one month, once
func (s *FinanceService) CreateSalary(ctx context.Context, actorID int64, req *dto.CreateSalaryRequest) (*dto.SalaryResponse, error) {
	employee, err := s.userRepo.GetUserByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !employee.IsEmployee() && employee.Role != models.RoleAdmin {
		return nil, apperrors.NewBadRequestError("salaries can only be recorded for employees")
	}

	month := helpers.ParseMonth(req.Month, time.Now())

	salary := &models.Salary{
		EmployeeID: req.EmployeeID,
		Month:      month,
		BaseAmount: req.BaseAmount,
		Bonus:      req.Bonus,
		Deductions: req.Deductions,
		Status:     models.SalaryStatusPending,
		CreatedBy:  &actorID,
	}

	salaryID, err := s.financeRepo.CreateSalary(ctx, salary)
	if err != nil {
		return nil, err
	}
	salary.ID = salaryID

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     "create",
		EntityName: "salaries",
		ObjectID:   fmt.Sprintf("%d", salaryID),
	})

	resp := dto.FromSalary(salary)
	return &resp, nil
}

// UpdateSalaryStatus moves a salary record along its lifecycle. Paying a
// salary also writes a ledger entry.
func (s *FinanceService) UpdateSalaryStatus(ctx context.Context, actorID, salaryID int64, next models.SalaryStatus) (*dto.SalaryResponse, error) {
	salary, err := s.financeRepo.GetSalaryByID(ctx, salaryID)
	if err != nil {
		return nil, err
	}

	if !salary.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: salary cannot move from %s to %s",
			apperrors.ErrInvalidTransition, salary.Status, next)
	}

	if err := s.financeRepo.UpdateSalaryStatus(ctx, salaryID, next); err != nil {
		return nil, err
	}
	salary.Status = next

	if next == models.SalaryStatusPaid {
		if _, err := s.financeRepo.CreateTransaction(ctx, &models.Transaction{
			Type:        models.TransactionTypeSalary,
			Amount:      salary.NetAmount(),
			IsIncome:    false,
			Description: fmt.Sprintf("Salary for %s", salary.Month),
			ReferenceID: &salary.ID,
			RecordedBy:  &actorID,
			OccurredAt:  time.Now(),
		}); err != nil {
			s.logger.Error().Err(err).Int64("salaryID", salaryID).Msg("Failed to record salary transaction")
		}

		if _, err := s.activityRepo.CreateNotification(ctx, &models.Notification{
			UserID:  salary.EmployeeID,
			Message: fmt.Sprintf("Your salary for %s has been paid", salary.Month),
		}); err != nil {
			s.logger.Warn().Err(err).Int64("employeeID", salary.EmployeeID).Msg("Failed to notify employee")
		}
	}

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     fmt.Sprintf("status:%s", next),
		EntityName: "salaries",
		ObjectID:   fmt.Sprintf("%d", salaryID),
	})

	resp := dto.FromSalary(salary)
	return &resp, nil
}

// ListSalaries retrieves salaries for a month with pagination
func (s *FinanceService) ListSalaries(ctx context.Context, month string, page, pageSize int) (*dto.SalaryListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	salaries, total, err := s.financeRepo.ListSalaries(ctx, month, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.SalaryListResponse{
		Salaries:       make([]dto.SalaryResponse, 0, len(salaries)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, salary := range salaries {
		resp.Salaries = append(resp.Salaries, dto.FromSalary(salary))
	}

	return resp, nil
}

// ListEmployeeSalaries retrieves one employee's salary history
func (s *FinanceService) ListEmployeeSalaries(ctx context.Context, employeeID int64) ([]dto.SalaryResponse, error) {
	salaries, err := s.financeRepo.ListSalariesByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SalaryResponse, 0, len(salaries))
	for _, salary := range salaries {
		responses = append(responses, dto.FromSalary(salary))
	}

	return responses, nil
}

// CreateExpense records an institute expense in pending status
func (s *FinanceService) CreateExpense(ctx context.Context, actorID int64, req *dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	incurredAt, err := helpers.ParseDate(req.IncurredAt)
	if err != nil {
		return nil, apperrors.NewBadRequestError("incurredAt must be YYYY-MM-DD")
	}

	expense := &models.Expense{
		Title:       req.Title,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Status:      models.ExpenseStatusPending,
		IncurredAt:  incurredAt,
		RecordedBy:  &actorID,
	}

	expenseID, err := s.financeRepo.CreateExpense(ctx, expense)
	if err != nil {
		return nil, err
	}
	expense.ID = expenseID

	return expenseToResponse(expense), nil
}

// UpdateExpenseStatus approves or rejects an expense. Approving writes
// a ledger entry.
func (s *FinanceService) UpdateExpenseStatus(ctx context.Context, actorID, expenseID int64, next models.ExpenseStatus) (*dto.ExpenseResponse, error) {
	expense, err := s.financeRepo.GetExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if !expense.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: expense cannot move from %s to %s",
			apperrors.ErrInvalidTransition, expense.Status, next)
	}

	if err := s.financeRepo.UpdateExpenseStatus(ctx, expenseID, next, actorID); err != nil {
		return nil, err
	}
	expense.Status = next

	if next == models.ExpenseStatusApproved {
		if _, err := s.financeRepo.CreateTransaction(ctx, &models.Transaction{
			Type:        models.TransactionTypeExpense,
			Amount:      expense.Amount,
			IsIncome:    false,
			Description: expense.Title,
			ReferenceID: &expense.ID,
			RecordedBy:  &actorID,
			OccurredAt:  expense.IncurredAt,
		}); err != nil {
			s.logger.Error().Err(err).Int64("expenseID", expenseID).Msg("Failed to record expense transaction")
		}
	}

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     fmt.Sprintf("status:%s", next),
		EntityName: "expenses",
		ObjectID:   fmt.Sprintf("%d", expenseID),
	})

	return expenseToResponse(expense), nil
}

// ListExpenses retrieves expenses with pagination
func (s *FinanceService) ListExpenses(ctx context.Context, page, pageSize int) (*dto.ExpenseListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	expenses, total, err := s.financeRepo.ListExpenses(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.ExpenseListResponse{
		Expenses:       make([]dto.ExpenseResponse, 0, len(expenses)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, e := range expenses {
		resp.Expenses = append(resp.Expenses, *expenseToResponse(e))
	}

	return resp, nil
}

// CreateTransaction records a manual ledger entry
func (s *FinanceService) CreateTransaction(ctx context.Context, actorID int64, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if !models.ValidTransactionType(req.Type) {
		return nil, apperrors.NewBadRequestError("unknown transaction type")
	}

	occurredAt := time.Now()
	if req.OccurredAt != "" {
		parsed, err := helpers.ParseDate(req.OccurredAt)
		if err != nil {
			return nil, apperrors.NewBadRequestError("occurredAt must be YYYY-MM-DD")
		}
		occurredAt = parsed
	}

	transaction := &models.Transaction{
		Type:        req.Type,
		Amount:      req.Amount,
		IsIncome:    req.IsIncome,
		Description: req.Description,
		RecordedBy:  &actorID,
		OccurredAt:  occurredAt,
	}

	transactionID, err := s.financeRepo.CreateTransaction(ctx, transaction)
	if err != nil {
		return nil, err
	}
	transaction.ID = transactionID

	return transactionToResponse(transaction), nil
}

// ListTransactions retrieves ledger entries with pagination
func (s *FinanceService) ListTransactions(ctx context.Context, page, pageSize int) (*dto.TransactionListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	transactions, total, err := s.financeRepo.ListTransactions(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.TransactionListResponse{
		Transactions:   make([]dto.TransactionResponse, 0, len(transactions)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, t := range transactions {
		resp.Transactions = append(resp.Transactions, *transactionToResponse(t))
	}

	return resp, nil
}

// ListStudentFees retrieves a student's fees
func (s *FinanceService) ListStudentFees(ctx context.Context, studentID int64) ([]dto.FeePaymentResponse, error) {
	fees, err := s.financeRepo.ListFeePaymentsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.FeePaymentResponse, 0, len(fees))
	for _, fee := range fees {
		responses = append(responses, dto.FromFeePayment(fee))
	}

	return responses, nil
}

// PayFee marks a student's fee as paid and writes an income ledger entry.
// Students can only pay their own fees; staff pass themselves as payer
// with ownership already checked by routing.
func (s *FinanceService) PayFee(ctx context.Context, payerID, feeID int64, ownFeeOnly bool, req *dto.PayFeeRequest) (*dto.FeePaymentResponse, error) {
	fee, err := s.financeRepo.GetFeePaymentByID(ctx, feeID)
	if err != nil {
		return nil, err
	}

	if ownFeeOnly && fee.StudentID != payerID {
		return nil, apperrors.ErrPermissionDenied
	}

	if !fee.Status.CanTransitionTo(models.FeePaymentStatusPaid) {
		return nil, fmt.Errorf("%w: fee cannot move from %s to %s",
			apperrors.ErrInvalidTransition, fee.Status, models.FeePaymentStatusPaid)
	}

	if err := s.financeRepo.UpdateFeePaymentStatus(ctx, feeID, models.FeePaymentStatusPaid, req.Method, req.Reference); err != nil {
		return nil, err
	}
	fee.Status = models.FeePaymentStatusPaid
	now := time.Now()
	fee.PaidAt = &now

	if _, err := s.financeRepo.CreateTransaction(ctx, &models.Transaction{
		Type:        models.TransactionTypeFee,
		Amount:      fee.Amount,
		IsIncome:    true,
		Description: fmt.Sprintf("Fee payment by student %d", fee.StudentID),
		ReferenceID: &fee.ID,
		RecordedBy:  &payerID,
		OccurredAt:  now,
	}); err != nil {
		s.logger.Error().Err(err).Int64("feeID", feeID).Msg("Failed to record fee transaction")
	}

	resp := dto.FromFeePayment(fee)
	return &resp, nil
}

// CancelFee cancels an unpaid fee
func (s *FinanceService) CancelFee(ctx context.Context, actorID, feeID int64) error {
	fee, err := s.financeRepo.GetFeePaymentByID(ctx, feeID)
	if err != nil {
		return err
	}

	if !fee.Status.CanTransitionTo(models.FeePaymentStatusCancelled) {
		return fmt.Errorf("%w: fee cannot move from %s to %s",
			apperrors.ErrInvalidTransition, fee.Status, models.FeePaymentStatusCancelled)
	}

	if err := s.financeRepo.UpdateFeePaymentStatus(ctx, feeID, models.FeePaymentStatusCancelled, "", ""); err != nil {
		return err
	}

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     "cancel",
		EntityName: "fee_payments",
		ObjectID:   fmt.Sprintf("%d", feeID),
	})

	return nil
}

// GenerateOverview computes and stores the financial rollup for a month
func (s *FinanceService) GenerateOverview(ctx context.Context, actorID int64, monthStr string) (*dto.FinancialOverviewResponse, error) {
	month := helpers.ParseMonth(monthStr, time.Now())

	start, err := time.Parse(helpers.MonthLayout, month)
	if err != nil {
		return nil, apperrors.NewBadRequestError("month must be YYYY-MM")
	}
	end := start.AddDate(0, 1, 0)

	income, expense, err := s.financeRepo.MonthlyTransactionTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}

	salaries, err := s.financeRepo.MonthlySalaryTotals(ctx, month, month)
	if err != nil {
		return nil, err
	}

	overview := &models.FinancialOverview{
		Month:         month,
		TotalIncome:   income[month],
		TotalExpense:  expense[month],
		TotalSalaries: salaries[month],
		GeneratedBy:   &actorID,
	}
	overview.NetBalance = overview.TotalIncome - overview.TotalExpense - overview.TotalSalaries

	if err := s.financeRepo.UpsertOverview(ctx, overview); err != nil {
		return nil, err
	}

	return overviewToResponse(overview), nil
}

// GetOverview retrieves the stored rollup for a month
func (s *FinanceService) GetOverview(ctx context.Context, monthStr string) (*dto.FinancialOverviewResponse, error) {
	month := helpers.ParseMonth(monthStr, time.Now())

	overview, err := s.financeRepo.GetOverviewByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	return overviewToResponse(overview), nil
}

func expenseToResponse(e *models.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:         e.ID,
		Title:      e.Title,
		Category:   e.Category,
		Amount:     e.Amount,
		Status:     e.Status,
		IncurredAt: e.IncurredAt,
	}
}

func transactionToResponse(t *models.Transaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		Amount:      t.Amount,
		IsIncome:    t.IsIncome,
		Description: t.Description,
		OccurredAt:  t.OccurredAt,
	}
}

func overviewToResponse(o *models.FinancialOverview) *dto.FinancialOverviewResponse {
	return &dto.FinancialOverviewResponse{
		Month:         o.Month,
		TotalIncome:   o.TotalIncome,
		TotalExpense:  o.TotalExpense,
		TotalSalaries: o.TotalSalaries,
		NetBalance:    o.NetBalance,
	}
}
