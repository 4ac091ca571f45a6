package dto

import (
	"time"

	"github.com/instracore/backend/internal/app/models"
)

// CreateSalaryRequest records one employee's pay for one month
type CreateSalaryRequest struct {
	EmployeeID int64   `json:"employeeId" binding:"required,min=1"`
	Month      string  `json:"month" binding:"required"` // YYYY-MM
	BaseAmount float64 `json:"baseAmount" binding:"required,min=0"`
	Bonus      float64 `json:"bonus" binding:"min=0"`
	Deductions float64 `json:"deductions" binding:"min=0"`
}

// UpdateSalaryStatusRequest moves a salary record along its lifecycle
type UpdateSalaryStatusRequest struct {
	Status models.SalaryStatus `json:"status" binding:"required"`
}

// SalaryResponse represents one salary record
type SalaryResponse struct {
	ID         int64               `json:"id"`
	EmployeeID int64               `json:"employeeId"`
	Month      string              `json:"month"`
	BaseAmount float64             `json:"baseAmount"`
	Bonus      float64             `json:"bonus"`
	Deductions float64             `json:"deductions"`
	NetAmount  float64             `json:"netAmount"`
	Status     models.SalaryStatus `json:"status"`
	PaidAt     *time.Time          `json:"paidAt,omitempty"`
}

// FromSalary converts a models.Salary to a SalaryResponse
func FromSalary(s *models.Salary) SalaryResponse {
	if s == nil {
		return SalaryResponse{}
	}
	return SalaryResponse{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		Month:      s.Month,
		BaseAmount: s.BaseAmount,
		Bonus:      s.Bonus,
		Deductions: s.Deductions,
		NetAmount:  s.NetAmount(),
		Status:     s.Status,
		PaidAt:     s.PaidAt,
	}
}

// SalaryListResponse represents salary records with pagination
type SalaryListResponse struct {
	Salaries []SalaryResponse `json:"salaries"`
	PaginationInfo
}

// CreateExpenseRequest records an institute expense
type CreateExpenseRequest struct {
	Title       string  `json:"title" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description,omitempty"`
	IncurredAt  string  `json:"incurredAt" binding:"required"` // YYYY-MM-DD
}

// UpdateExpenseStatusRequest approves or rejects an expense
type UpdateExpenseStatusRequest struct {
	Status models.ExpenseStatus `json:"status" binding:"required"`
}

// ExpenseResponse represents one expense
type ExpenseResponse struct {
	ID         int64                `json:"id"`
	Title      string               `json:"title"`
	Category   string               `json:"category"`
	Amount     float64              `json:"amount"`
	Status     models.ExpenseStatus `json:"status"`
	IncurredAt time.Time            `json:"incurredAt"`
}

// ExpenseListResponse represents expenses with pagination
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	PaginationInfo
}

// CreateTransactionRequest records a manual ledger entry
type CreateTransactionRequest struct {
	Type        models.TransactionType `json:"type" binding:"required"`
	Amount      float64                `json:"amount" binding:"required,gt=0"`
	IsIncome    bool                   `json:"isIncome"`
	Description string                 `json:"description,omitempty"`
	OccurredAt  string                 `json:"occurredAt,omitempty"` // YYYY-MM-DD, defaults to today
}

// TransactionResponse represents one ledger entry
type TransactionResponse struct {
	ID          int64                  `json:"id"`
	Type        models.TransactionType `json:"type"`
	Amount      float64                `json:"amount"`
	IsIncome    bool                   `json:"isIncome"`
	Description string                 `json:"description,omitempty"`
	OccurredAt  time.Time              `json:"occurredAt"`
}

// TransactionListResponse represents ledger entries with pagination
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	PaginationInfo
}

// PayFeeRequest marks a fee payment as paid
type PayFeeRequest struct {
	Method    string `json:"method" binding:"required"`
	Reference string `json:"reference,omitempty"`
}

// FeePaymentResponse represents one student fee
type FeePaymentResponse struct {
	ID        int64                   `json:"id"`
	StudentID int64                   `json:"studentId"`
	CourseID  *int64                  `json:"courseId,omitempty"`
	Amount    float64                 `json:"amount"`
	Status    models.FeePaymentStatus `json:"status"`
	DueDate   time.Time               `json:"dueDate"`
	PaidAt    *time.Time              `json:"paidAt,omitempty"`
}

// FromFeePayment converts a models.FeePayment to a FeePaymentResponse
func FromFeePayment(f *models.FeePayment) FeePaymentResponse {
	if f == nil {
		return FeePaymentResponse{}
	}
	return FeePaymentResponse{
		ID:        f.ID,
		StudentID: f.StudentID,
		CourseID:  f.CourseID,
		Amount:    f.Amount,
		Status:    f.Status,
		DueDate:   f.DueDate,
		PaidAt:    f.PaidAt,
	}
}

// FeePaymentListResponse represents fees with pagination
type FeePaymentListResponse struct {
	Fees []FeePaymentResponse `json:"fees"`
	PaginationInfo
}

// FinancialOverviewResponse is the monthly financial rollup
type FinancialOverviewResponse struct {
	Month         string  `json:"month"`
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpense  float64 `json:"totalExpense"`
	TotalSalaries float64 `json:"totalSalaries"`
	NetBalance    float64 `json:"netBalance"`
}
