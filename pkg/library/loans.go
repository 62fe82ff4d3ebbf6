package library

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	libraryDB "github.com/Johnmontoya/library-backend/pkg/db/library"
	libTypes "github.com/Johnmontoya/library-backend/pkg/library/types"
	"github.com/Johnmontoya/library-backend/pkg/records"
)

type LoanDTO struct {
	ID         string  `json:"id"`
	AccountID  string  `json:"accountId"`
	BookID     string  `json:"bookId"`
	LoanDate   string  `json:"loanDate"`
	ReturnDate *string `json:"returnDate"`
}

type LoanRepo struct {
	store *libraryDB.LibraryDBService
	now   func() time.Time
}

func NewLoanRepo(store *libraryDB.LibraryDBService) *LoanRepo {
	return &LoanRepo{store: store, now: time.Now}
}

func (r *LoanRepo) Validate(ctx context.Context, dto LoanDTO) *records.Problem {
	prob := records.NewProblem("validation failed", http.StatusBadRequest)

	if dto.AccountID == "" {
		prob.AddFieldError("accountId", "accountId is required")
	}
	if dto.BookID == "" {
		prob.AddFieldError("bookId", "bookId is required")
	}
	if dto.LoanDate != "" {
		if _, err := time.Parse(libTypes.DateLayout, dto.LoanDate); err != nil {
			prob.AddFieldError("loanDate", "loanDate must use the format "+libTypes.DateLayout)
		}
	}
	if dto.ReturnDate != nil && *dto.ReturnDate != "" {
		if _, err := time.Parse(libTypes.DateLayout, *dto.ReturnDate); err != nil {
			prob.AddFieldError("returnDate", "returnDate must use the format "+libTypes.DateLayout)
		}
	}

	if prob.HasFieldErrors() {
		return prob
	}
	return nil
}

func (r *LoanRepo) rules(dto LoanDTO) []records.Rule {
	return []records.Rule{
		r.referenceExists(libraryDB.TABLE_NAME_ACCOUNTS, dto.AccountID, "accountId", "account does not exist"),
		r.referenceExists(libraryDB.TABLE_NAME_BOOKS, dto.BookID, "bookId", "book does not exist"),
	}
}

func (r *LoanRepo) referenceExists(table string, id string, field string, msg string) records.Rule {
	return records.RuleFunc(func(ctx context.Context) *records.Problem {
		found, err := r.store.Exists(ctx, table, id)
		if err != nil {
			return records.InternalProblem("could not validate loan", "loan", err)
		}
		if !found {
			prob := records.NewProblem("validation failed", http.StatusBadRequest)
			prob.AddFieldError(field, msg)
			return prob
		}
		return nil
	})
}

func (r *LoanRepo) GetAll(ctx context.Context) ([]libTypes.Loan, error) {
	return r.store.Loans.GetAll(ctx)
}

func (r *LoanRepo) GetByID(ctx context.Context, id string) (libTypes.Loan, error) {
	return r.store.Loans.GetByID(ctx, id)
}

func (r *LoanRepo) Add(ctx context.Context, dto LoanDTO) *records.Problem {
	if prob := r.Validate(ctx, dto); prob != nil {
		return prob
	}
	loanDate := dto.LoanDate
	if loanDate == "" {
		loanDate = r.now().Format(libTypes.DateLayout)
	}
	loan := libTypes.Loan{
		ID:         uuid.NewString(),
		AccountID:  dto.AccountID,
		BookID:     dto.BookID,
		LoanDate:   loanDate,
		ReturnDate: dto.ReturnDate,
	}
	return r.store.Loans.Add(ctx, loan, r.rules(dto))
}

func (r *LoanRepo) Update(ctx context.Context, id string, dto LoanDTO) *records.Problem {
	dto.ID = id
	if prob := r.Validate(ctx, dto); prob != nil {
		return prob
	}
	loanDate := dto.LoanDate
	if loanDate == "" {
		loanDate = r.now().Format(libTypes.DateLayout)
	}
	loan := libTypes.Loan{
		ID:         id,
		AccountID:  dto.AccountID,
		BookID:     dto.BookID,
		LoanDate:   loanDate,
		ReturnDate: dto.ReturnDate,
	}
	return r.store.Loans.Update(ctx, id, loan, r.rules(dto))
}

func (r *LoanRepo) Delete(ctx context.Context, id string) *records.Problem {
	return r.store.Loans.Delete(ctx, id, nil)
}
