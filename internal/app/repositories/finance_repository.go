package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/pkg/apperrors"
	"github.com/instracore/backend/internal/pkg/dberrors"
	"github.com/instracore/backend/internal/pkg/logger"
)

const salaryColumns = "id, employee_id, month, base_amount, bonus, deductions, status, paid_at, created_by, created_at"
const feeColumns = "id, student_id, course_id, amount, status, due_date, paid_at, method, reference, created_at"

// FinanceRepository handles salary, expense, transaction, fee and overview persistence
type FinanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFinanceRepository creates a new FinanceRepository
func NewFinanceRepository(db *pgxpool.Pool) *FinanceRepository {
	return &FinanceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanSalary(row pgx.Row) (*models.Salary, error) {
	s := &models.Salary{}
	err := row.Scan(&s.ID, &s.EmployeeID, &s.Month, &s.BaseAmount, &s.Bonus, &s.Deductions,
		&s.Status, &s.PaidAt, &s.CreatedBy, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func scanFeePayment(row pgx.Row) (*models.FeePayment, error) {
	f := &models.FeePayment{}
	err := row.Scan(&f.ID, &f.StudentID, &f.CourseID, &f.Amount, &f.Status, &f.DueDate,
		&f.PaidAt, &f.Method, &f.Reference, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// CreateSalary records one employee's pay for one month. The unique constraint
// on (employee_id, month) enforces a single record per pair.
func (r *FinanceRepository) CreateSalary(ctx context.Context, s *models.Salary) (int64, error) {
	sql, args, err := r.sb.Insert("salaries").
		Columns("employee_id", "month", "base_amount", "bonus", "deductions", "status", "created_by", "created_at").
		Values(s.EmployeeID, s.Month, s.BaseAmount, s.Bonus, s.Deductions, s.Status, s.CreatedBy, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create salary query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrSalaryExists
		}
		logger.Error().Err(err).Int64("employeeID", s.EmployeeID).Str("month", s.Month).Msg("Error creating salary")
		return 0, fmt.Errorf("error creating salary: %w", err)
	}

	return id, nil
}

// GetSalaryByID retrieves a salary record by ID
func (r *FinanceRepository) GetSalaryByID(ctx context.Context, id int64) (*models.Salary, error) {
	sql, args, err := r.sb.Select(salaryColumns).
		From("salaries").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get salary query: %w", err)
	}

	salary, err := scanSalary(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("salaryID", id).Msg("Error scanning salary row")
		return nil, fmt.Errorf("error getting salary by ID: %w", err)
	}

	return salary, nil
}

// UpdateSalaryStatus sets a salary record's status, stamping paid_at on payment
func (r *FinanceRepository) UpdateSalaryStatus(ctx context.Context, id int64, status models.SalaryStatus) error {
	update := r.sb.Update("salaries").
		Set("status", status).
		Where(squirrel.Eq{"id": id})

	if status == models.SalaryStatusPaid {
		update = update.Set("paid_at", time.Now())
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update salary status query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("salaryID", id).Msg("Error updating salary status")
		return fmt.Errorf("error updating salary status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListSalaries retrieves salaries for a month with pagination; month may be empty
func (r *FinanceRepository) ListSalaries(ctx context.Context, month string, offset uint64, limit int) ([]*models.Salary, int64, error) {
	base := r.sb.Select(salaryColumns).From("salaries")
	countQuery := r.sb.Select("COUNT(*)").From("salaries")

	if month != "" {
		base = base.Where(squirrel.Eq{"month": month})
		countQuery = countQuery.Where(squirrel.Eq{"month": month})
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count salaries query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting salaries")
		return nil, 0, fmt.Errorf("error counting salaries: %w", err)
	}

	sql, args, err := base.
		OrderBy("month DESC, employee_id ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list salaries query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing salaries")
		return nil, 0, fmt.Errorf("error listing salaries: %w", err)
	}
	defer rows.Close()

	salaries := []*models.Salary{}
	for rows.Next() {
		salary, err := scanSalary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning salary row: %w", err)
		}
		salaries = append(salaries, salary)
	}

	return salaries, total, rows.Err()
}

// ListSalariesByEmployee retrieves one employee's salary history
func (r *FinanceRepository) ListSalariesByEmployee(ctx context.Context, employeeID int64) ([]*models.Salary, error) {
	sql, args, err := r.sb.Select(salaryColumns).
		From("salaries").
		Where(squirrel.Eq{"employee_id": employeeID}).
		OrderBy("month DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list employee salaries query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("employeeID", employeeID).Msg("Error listing employee salaries")
		return nil, fmt.Errorf("error listing employee salaries: %w", err)
	}
	defer rows.Close()

	salaries := []*models.Salary{}
	for rows.Next() {
		salary, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning salary row: %w", err)
		}
		salaries = append(salaries, salary)
	}

	return salaries, rows.Err()
}

// CountSalariesByStatus counts salaries in a status
func (r *FinanceRepository) CountSalariesByStatus(ctx context.Context, status models.SalaryStatus) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("salaries").
		Where(squirrel.Eq{"status": status}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build count salaries query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting salaries by status: %w", err)
	}

	return count, nil
}

// CreateExpense records an institute expense in pending status
func (r *FinanceRepository) CreateExpense(ctx context.Context, e *models.Expense) (int64, error) {
	sql, args, err := r.sb.Insert("expenses").
		Columns("title", "category", "amount", "description", "status", "incurred_at", "recorded_by", "created_at").
		Values(e.Title, e.Category, e.Amount, e.Description, e.Status, e.IncurredAt, e.RecordedBy, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create expense query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Str("title", e.Title).Msg("Error creating expense")
		return 0, fmt.Errorf("error creating expense: %w", err)
	}

	return id, nil
}

// GetExpenseByID retrieves an expense by ID
func (r *FinanceRepository) GetExpenseByID(ctx context.Context, id int64) (*models.Expense, error) {
	sql, args, err := r.sb.Select("id", "title", "category", "amount", "description", "status", "incurred_at", "recorded_by", "approved_by", "created_at").
		From("expenses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get expense query: %w", err)
	}

	e := &models.Expense{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.Title, &e.Category, &e.Amount, &e.Description,
		&e.Status, &e.IncurredAt, &e.RecordedBy, &e.ApprovedBy, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("expenseID", id).Msg("Error scanning expense row")
		return nil, fmt.Errorf("error getting expense by ID: %w", err)
	}

	return e, nil
}

// UpdateExpenseStatus approves or rejects an expense
func (r *FinanceRepository) UpdateExpenseStatus(ctx context.Context, id int64, status models.ExpenseStatus, approvedBy int64) error {
	sql, args, err := r.sb.Update("expenses").
		Set("status", status).
		Set("approved_by", approvedBy).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update expense status query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("expenseID", id).Msg("Error updating expense status")
		return fmt.Errorf("error updating expense status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListExpenses retrieves expenses with pagination
func (r *FinanceRepository) ListExpenses(ctx context.Context, offset uint64, limit int) ([]*models.Expense, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("expenses").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count expenses query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting expenses")
		return nil, 0, fmt.Errorf("error counting expenses: %w", err)
	}

	sql, args, err := r.sb.Select("id", "title", "category", "amount", "description", "status", "incurred_at", "recorded_by", "approved_by", "created_at").
		From("expenses").
		OrderBy("incurred_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list expenses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing expenses")
		return nil, 0, fmt.Errorf("error listing expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*models.Expense{}
	for rows.Next() {
		e := &models.Expense{}
		err := rows.Scan(&e.ID, &e.Title, &e.Category, &e.Amount, &e.Description,
			&e.Status, &e.IncurredAt, &e.RecordedBy, &e.ApprovedBy, &e.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning expense row: %w", err)
		}
		expenses = append(expenses, e)
	}

	return expenses, total, rows.Err()
}

// CountExpensesByStatus counts expenses in a status
func (r *FinanceRepository) CountExpensesByStatus(ctx context.Context, status models.ExpenseStatus) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("expenses").
		Where(squirrel.Eq{"status": status}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build count expenses query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting expenses by status: %w", err)
	}

	return count, nil
}

// CreateTransaction records a ledger entry
func (r *FinanceRepository) CreateTransaction(ctx context.Context, t *models.Transaction) (int64, error) {
	sql, args, err := r.sb.Insert("transactions").
		Columns("type", "amount", "is_income", "description", "reference_id", "recorded_by", "occurred_at", "created_at").
		Values(t.Type, t.Amount, t.IsIncome, t.Description, t.ReferenceID, t.RecordedBy, t.OccurredAt, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create transaction query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Str("type", string(t.Type)).Msg("Error creating transaction")
		return 0, fmt.Errorf("error creating transaction: %w", err)
	}

	return id, nil
}

// ListTransactions retrieves ledger entries with pagination
func (r *FinanceRepository) ListTransactions(ctx context.Context, offset uint64, limit int) ([]*models.Transaction, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("transactions").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count transactions query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting transactions")
		return nil, 0, fmt.Errorf("error counting transactions: %w", err)
	}

	sql, args, err := r.sb.Select("id", "type", "amount", "is_income", "description", "reference_id", "recorded_by", "occurred_at", "created_at").
		From("transactions").
		OrderBy("occurred_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list transactions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing transactions")
		return nil, 0, fmt.Errorf("error listing transactions: %w", err)
	}
	defer rows.Close()

	transactions := []*models.Transaction{}
	for rows.Next() {
		t := &models.Transaction{}
		err := rows.Scan(&t.ID, &t.Type, &t.Amount, &t.IsIncome, &t.Description,
			&t.ReferenceID, &t.RecordedBy, &t.OccurredAt, &t.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning transaction row: %w", err)
		}
		transactions = append(transactions, t)
	}

	return transactions, total, rows.Err()
}

// MonthlyTransactionTotals sums income and expense per month over a year window
func (r *FinanceRepository) MonthlyTransactionTotals(ctx context.Context, from, to time.Time) (income, expense map[string]float64, err error) {
	sql, args, err := r.sb.Select(
		"to_char(occurred_at, 'YYYY-MM') AS month",
		"is_income",
		"COALESCE(SUM(amount), 0)").
		From("transactions").
		Where(squirrel.GtOrEq{"occurred_at": from}).
		Where(squirrel.Lt{"occurred_at": to}).
		GroupBy("month", "is_income").
		OrderBy("month ASC").
		ToSql()

	if err != nil {
		return nil, nil, fmt.Errorf("failed to build monthly totals query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying monthly transaction totals")
		return nil, nil, fmt.Errorf("error querying monthly transaction totals: %w", err)
	}
	defer rows.Close()

	income = map[string]float64{}
	expense = map[string]float64{}
	for rows.Next() {
		var month string
		var isIncome bool
		var total float64
		if err := rows.Scan(&month, &isIncome, &total); err != nil {
			return nil, nil, fmt.Errorf("error scanning monthly total row: %w", err)
		}
		if isIncome {
			income[month] = total
		} else {
			expense[month] = total
		}
	}

	return income, expense, rows.Err()
}

// MonthlySalaryTotals sums paid salaries per month over a year window
func (r *FinanceRepository) MonthlySalaryTotals(ctx context.Context, fromMonth, toMonth string) (map[string]float64, error) {
	sql, args, err := r.sb.Select("month", "COALESCE(SUM(base_amount + bonus - deductions), 0)").
		From("salaries").
		Where(squirrel.Eq{"status": models.SalaryStatusPaid}).
		Where(squirrel.GtOrEq{"month": fromMonth}).
		Where(squirrel.LtOrEq{"month": toMonth}).
		GroupBy("month").
		OrderBy("month ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build monthly salary totals query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying monthly salary totals")
		return nil, fmt.Errorf("error querying monthly salary totals: %w", err)
	}
	defer rows.Close()

	totals := map[string]float64{}
	for rows.Next() {
		var month string
		var total float64
		if err := rows.Scan(&month, &total); err != nil {
			return nil, fmt.Errorf("error scanning salary total row: %w", err)
		}
		totals[month] = total
	}

	return totals, rows.Err()
}

// CreateFeePaymentTx inserts a fee payment inside an existing transaction
func (r *FinanceRepository) CreateFeePaymentTx(ctx context.Context, tx pgx.Tx, f *models.FeePayment) (int64, error) {
	sql, args, err := r.sb.Insert("fee_payments").
		Columns("student_id", "course_id", "amount", "status", "due_date", "method", "reference", "created_at").
		Values(f.StudentID, f.CourseID, f.Amount, f.Status, f.DueDate, f.Method, f.Reference, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create fee payment query: %w", err)
	}

	var id int64
	err = tx.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", f.StudentID).Msg("Error creating fee payment")
		return 0, fmt.Errorf("error creating fee payment: %w", err)
	}

	return id, nil
}

// GetFeePaymentByID retrieves a fee payment by ID
func (r *FinanceRepository) GetFeePaymentByID(ctx context.Context, id int64) (*models.FeePayment, error) {
	sql, args, err := r.sb.Select(feeColumns).
		From("fee_payments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get fee payment query: %w", err)
	}

	fee, err := scanFeePayment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFeePaymentNotFound
		}
		logger.Error().Err(err).Int64("feeID", id).Msg("Error scanning fee payment row")
		return nil, fmt.Errorf("error getting fee payment by ID: %w", err)
	}

	return fee, nil
}

// UpdateFeePaymentStatus sets a fee's status, stamping paid_at and method on payment
func (r *FinanceRepository) UpdateFeePaymentStatus(ctx context.Context, id int64, status models.FeePaymentStatus, method, reference string) error {
	update := r.sb.Update("fee_payments").
		Set("status", status).
		Where(squirrel.Eq{"id": id})

	if status == models.FeePaymentStatusPaid {
		update = update.
			Set("paid_at", time.Now()).
			Set("method", method).
			Set("reference", reference)
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update fee payment status query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("feeID", id).Msg("Error updating fee payment status")
		return fmt.Errorf("error updating fee payment status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrFeePaymentNotFound
	}

	return nil
}

// ListFeePaymentsByStudent retrieves a student's fees
func (r *FinanceRepository) ListFeePaymentsByStudent(ctx context.Context, studentID int64) ([]*models.FeePayment, error) {
	sql, args, err := r.sb.Select(feeColumns).
		From("fee_payments").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("due_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list fee payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error listing fee payments")
		return nil, fmt.Errorf("error listing fee payments: %w", err)
	}
	defer rows.Close()

	fees := []*models.FeePayment{}
	for rows.Next() {
		fee, err := scanFeePayment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning fee payment row: %w", err)
		}
		fees = append(fees, fee)
	}

	return fees, rows.Err()
}

// PendingFeeTotals returns the count and total amount of a student's unpaid fees
func (r *FinanceRepository) PendingFeeTotals(ctx context.Context, studentID int64) (count int64, amount float64, err error) {
	sql, args, err := r.sb.Select("COUNT(*)", "COALESCE(SUM(amount), 0)").
		From("fee_payments").
		Where(squirrel.Eq{"student_id": studentID}).
		Where(squirrel.Eq{"status": []models.FeePaymentStatus{models.FeePaymentStatusPending, models.FeePaymentStatusOverdue}}).
		ToSql()

	if err != nil {
		return 0, 0, fmt.Errorf("failed to build pending fee totals query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count, &amount); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error querying pending fee totals")
		return 0, 0, fmt.Errorf("error querying pending fee totals: %w", err)
	}

	return count, amount, nil
}

// CountOverdueFees counts fees past their due date and still unpaid
func (r *FinanceRepository) CountOverdueFees(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("fee_payments").
		Where(squirrel.Or{
			squirrel.Eq{"status": models.FeePaymentStatusOverdue},
			squirrel.And{
				squirrel.Eq{"status": models.FeePaymentStatusPending},
				squirrel.Lt{"due_date": time.Now()},
			},
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build count overdue fees query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting overdue fees: %w", err)
	}

	return count, nil
}

// CollectedFeeTotal sums fees paid inside a window
func (r *FinanceRepository) CollectedFeeTotal(ctx context.Context, from, to time.Time) (float64, error) {
	sql, args, err := r.sb.Select("COALESCE(SUM(amount), 0)").
		From("fee_payments").
		Where(squirrel.Eq{"status": models.FeePaymentStatusPaid}).
		Where(squirrel.GtOrEq{"paid_at": from}).
		Where(squirrel.Lt{"paid_at": to}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build collected fees query: %w", err)
	}

	var total float64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error querying collected fees: %w", err)
	}

	return total, nil
}

// GetOverviewByMonth retrieves the rollup for a month; ErrNotFound when absent
func (r *FinanceRepository) GetOverviewByMonth(ctx context.Context, month string) (*models.FinancialOverview, error) {
	sql, args, err := r.sb.Select("id", "month", "total_income", "total_expense", "total_salaries", "net_balance", "generated_by", "updated_at").
		From("financial_overviews").
		Where(squirrel.Eq{"month": month}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get overview query: %w", err)
	}

	o := &models.FinancialOverview{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&o.ID, &o.Month, &o.TotalIncome, &o.TotalExpense,
		&o.TotalSalaries, &o.NetBalance, &o.GeneratedBy, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("month", month).Msg("Error scanning overview row")
		return nil, fmt.Errorf("error getting overview by month: %w", err)
	}

	return o, nil
}

// UpsertOverview writes the monthly rollup; one row per month
func (r *FinanceRepository) UpsertOverview(ctx context.Context, o *models.FinancialOverview) error {
	sql, args, err := r.sb.Insert("financial_overviews").
		Columns("month", "total_income", "total_expense", "total_salaries", "net_balance", "generated_by", "updated_at").
		Values(o.Month, o.TotalIncome, o.TotalExpense, o.TotalSalaries, o.NetBalance, o.GeneratedBy, time.Now()).
		Suffix("ON CONFLICT (month) DO UPDATE SET total_income = EXCLUDED.total_income, total_expense = EXCLUDED.total_expense, total_salaries = EXCLUDED.total_salaries, net_balance = EXCLUDED.net_balance, generated_by = EXCLUDED.generated_by, updated_at = EXCLUDED.updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build upsert overview query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("month", o.Month).Msg("Error upserting overview")
		return fmt.Errorf("error upserting overview: %w", err)
	}

	return nil
}
