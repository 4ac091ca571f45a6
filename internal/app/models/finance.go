package models

import "time"

// SalaryStatus is the payroll state of a salary record
type SalaryStatus string

const (
	SalaryStatusPending  SalaryStatus = "pending"
	SalaryStatusApproved SalaryStatus = "approved"
	SalaryStatusPaid     SalaryStatus = "paid"
	SalaryStatusRejected SalaryStatus = "rejected"
)

var salaryTransitions = map[SalaryStatus][]SalaryStatus{
	SalaryStatusPending:  {SalaryStatusApproved, SalaryStatusRejected},
	SalaryStatusApproved: {SalaryStatusPaid},
	SalaryStatusPaid:     {},
	SalaryStatusRejected: {},
}

// CanTransitionTo reports whether the status change is allowed.
func (s SalaryStatus) CanTransitionTo(next SalaryStatus) bool {
	return contains(salaryTransitions[s], next)
}

// Salary is one employee's pay for one month; unique per (employee, month)
type Salary struct {
	ID         int64        `json:"id" db:"id"`
	EmployeeID int64        `json:"employeeId" db:"employee_id"`
	Month      string       `json:"month" db:"month"` // YYYY-MM
	BaseAmount float64      `json:"baseAmount" db:"base_amount"`
	Bonus      float64      `json:"bonus" db:"bonus"`
	Deductions float64      `json:"deductions" db:"deductions"`
	Status     SalaryStatus `json:"status" db:"status"`
	PaidAt     *time.Time   `json:"paidAt,omitempty" db:"paid_at"`
	CreatedBy  *int64       `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt  time.Time    `json:"createdAt" db:"created_at"`
}

// NetAmount is base plus bonus minus deductions.
func (s *Salary) NetAmount() float64 {
	return s.BaseAmount + s.Bonus - s.Deductions
}

// ExpenseStatus is the approval state of an expense
type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "pending"
	ExpenseStatusApproved ExpenseStatus = "approved"
	ExpenseStatusRejected ExpenseStatus = "rejected"
)

var expenseTransitions = map[ExpenseStatus][]ExpenseStatus{
	ExpenseStatusPending:  {ExpenseStatusApproved, ExpenseStatusRejected},
	ExpenseStatusApproved: {},
	ExpenseStatusRejected: {},
}

// CanTransitionTo reports whether the status change is allowed.
func (s ExpenseStatus) CanTransitionTo(next ExpenseStatus) bool {
	return contains(expenseTransitions[s], next)
}

// Expense is a recorded institute expense pending approval
type Expense struct {
	ID          int64         `json:"id" db:"id"`
	Title       string        `json:"title" db:"title"`
	Category    string        `json:"category" db:"category"`
	Amount      float64       `json:"amount" db:"amount"`
	Description string        `json:"description,omitempty" db:"description"`
	Status      ExpenseStatus `json:"status" db:"status"`
	IncurredAt  time.Time     `json:"incurredAt" db:"incurred_at"`
	RecordedBy  *int64        `json:"recordedBy,omitempty" db:"recorded_by"`
	ApprovedBy  *int64        `json:"approvedBy,omitempty" db:"approved_by"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
}

// TransactionType classifies a ledger entry
type TransactionType string

const (
	TransactionTypeFee      TransactionType = "fee"
	TransactionTypeSalary   TransactionType = "salary"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeRefund   TransactionType = "refund"
	TransactionTypeOther    TransactionType = "other"
)

// ValidTransactionType reports whether the value is a known type.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TransactionTypeFee, TransactionTypeSalary, TransactionTypeExpense,
		TransactionTypePurchase, TransactionTypeRefund, TransactionTypeOther:
		return true
	}
	return false
}

// Transaction is a single ledger entry; income when the amount flows in
type Transaction struct {
	ID          int64           `json:"id" db:"id"`
	Type        TransactionType `json:"type" db:"type"`
	Amount      float64         `json:"amount" db:"amount"`
	IsIncome    bool            `json:"isIncome" db:"is_income"`
	Description string          `json:"description,omitempty" db:"description"`
	ReferenceID *int64          `json:"referenceId,omitempty" db:"reference_id"`
	RecordedBy  *int64          `json:"recordedBy,omitempty" db:"recorded_by"`
	OccurredAt  time.Time       `json:"occurredAt" db:"occurred_at"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}

// FinancialOverview is the monthly rollup; unique per month
type FinancialOverview struct {
	ID            int64     `json:"id" db:"id"`
	Month         string    `json:"month" db:"month"` // YYYY-MM
	TotalIncome   float64   `json:"totalIncome" db:"total_income"`
	TotalExpense  float64   `json:"totalExpense" db:"total_expense"`
	TotalSalaries float64   `json:"totalSalaries" db:"total_salaries"`
	NetBalance    float64   `json:"netBalance" db:"net_balance"`
	GeneratedBy   *int64    `json:"generatedBy,omitempty" db:"generated_by"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}
