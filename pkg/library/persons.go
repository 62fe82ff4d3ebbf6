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

type PersonDTO struct {
	ID         string `json:"id"`
	NationalID *int   `json:"nationalId"`
	BirthDate  string `json:"birthDate"`
	Address    string `json:"address"`
	City       string `json:"city"`
}

// PersonRepo manages the profile owned 1:1 by an account. Creation is
// rejected when the account already has a profile.
type PersonRepo struct {
	store *libraryDB.LibraryDBService
}

func NewPersonRepo(store *libraryDB.LibraryDBService) *PersonRepo {
	return &PersonRepo{store: store}
}

func (r *PersonRepo) Validate(ctx context.Context, dto PersonDTO) *records.Problem {
	prob := records.NewProblem("validation failed", http.StatusBadRequest)

	if dto.NationalID == nil {
		prob.AddFieldError("nationalId", "nationalId is required")
	} else {
		if *dto.NationalID <= 0 {
			prob.AddFieldError("nationalId", "nationalId must be positive")
		}
		taken, err := r.store.ExistsOther(ctx, libraryDB.TABLE_NAME_PERSONS, "national_id", *dto.NationalID, dto.ID)
		if err != nil {
			return records.InternalProblem("could not validate profile", "person", err)
		}
		if taken {
			prob.AddFieldError("nationalId", "nationalId is already in use")
		}
	}

	if dto.BirthDate == "" {
		prob.AddFieldError("birthDate", "birthDate is required")
	} else if _, err := time.Parse(libTypes.DateLayout, dto.BirthDate); err != nil {
		prob.AddFieldError("birthDate", "birthDate must use the format "+libTypes.DateLayout)
	}
	if dto.Address == "" {
		prob.AddFieldError("address", "address is required")
	}
	if dto.City == "" {
		prob.AddFieldError("city", "city is required")
	}

	if prob.HasFieldErrors() {
		return prob
	}
	return nil
}

// GetByAccountID resolves the profile attached to an account.
func (r *PersonRepo) GetByAccountID(ctx context.Context, accountID string) (libTypes.Person, error) {
	return r.store.GetPersonByAccountID(ctx, accountID)
}

func (r *PersonRepo) GetByID(ctx context.Context, id string) (libTypes.Person, error) {
	return r.store.Persons.GetByID(ctx, id)
}

func (r *PersonRepo) Add(ctx context.Context, accountID string, dto PersonDTO) *records.Problem {
	if prob := r.Validate(ctx, dto); prob != nil {
		return prob
	}
	person := libTypes.Person{
		ID:         uuid.NewString(),
		AccountID:  accountID,
		NationalID: *dto.NationalID,
		BirthDate:  dto.BirthDate,
		Address:    dto.Address,
		City:       dto.City,
	}
	return r.store.Persons.Add(ctx, person, []records.Rule{r.noExistingProfile(accountID)})
}

func (r *PersonRepo) Update(ctx context.Context, id string, accountID string, dto PersonDTO) *records.Problem {
	dto.ID = id
	if prob := r.Validate(ctx, dto); prob != nil {
		return prob
	}
	person := libTypes.Person{
		ID:         id,
		AccountID:  accountID,
		NationalID: *dto.NationalID,
		BirthDate:  dto.BirthDate,
		Address:    dto.Address,
		City:       dto.City,
	}
	return r.store.Persons.Update(ctx, id, person, nil)
}

// noExistingProfile rejects a second profile for the same account.
func (r *PersonRepo) noExistingProfile(accountID string) records.Rule {
	return records.RuleFunc(func(ctx context.Context) *records.Problem {
		exists, err := r.store.ExistsOther(ctx, libraryDB.TABLE_NAME_PERSONS, "account_id", accountID, "")
		if err != nil {
			return records.InternalProblem("could not validate profile", "person", err)
		}
		if exists {
			prob := records.NewProblem("profile already exists for this account", http.StatusBadRequest)
			return prob
		}
		return nil
	})
}
