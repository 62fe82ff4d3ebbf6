package library

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	libraryDB "github.com/Johnmontoya/library-backend/pkg/db/library"
	libTypes "github.com/Johnmontoya/library-backend/pkg/library/types"
	"github.com/Johnmontoya/library-backend/pkg/records"
)

type CategoryDTO struct {
	ID   string `json:"id"`
	Key  *int   `json:"key"`
	Name string `json:"name"`
}

// CategoryRepo translates category DTOs to records and supplies the
// rule set for the generic gateway.
type CategoryRepo struct {
	store *libraryDB.LibraryDBService
}

func NewCategoryRepo(store *libraryDB.LibraryDBService) *CategoryRepo {
	return &CategoryRepo{store: store}
}

// Validate runs the required-field and uniqueness checks. The
// uniqueness queries exclude the record's own id, so updates do not
// conflict with themselves.
func (r *CategoryRepo) Validate(ctx context.Context, dto CategoryDTO) *records.Problem {
	prob := records.NewProblem("validation failed", http.StatusBadRequest)

	if dto.Key == nil {
		prob.AddFieldError("key", "key is required")
	} else {
		if *dto.Key < 0 || *dto.Key >= 100 {
			prob.AddFieldError("key", "key must be between 0 and 99")
		}
		taken, err := r.store.ExistsOther(ctx, libraryDB.TABLE_NAME_CATEGORIES, "key", *dto.Key, dto.ID)
		if err != nil {
			return records.InternalProblem("could not validate category", "category", err)
		}
		if taken {
			prob.AddFieldError("key", "key is already in use")
		}
	}

	if dto.Name == "" {
		prob.AddFieldError("name", "name is required")
	} else {
		taken, err := r.store.ExistsOther(ctx, libraryDB.TABLE_NAME_CATEGORIES, "name", dto.Name, dto.ID)
		if err != nil {
			return records.InternalProblem("could not validate category", "category", err)
		}
		if taken {
			prob.AddFieldError("name", "name is already in use")
		}
	}

	if prob.HasFieldErrors() {
		return prob
	}
	return nil
}

func (r *CategoryRepo) GetAll(ctx context.Context) ([]libTypes.Category, error) {
	return r.store.Categories.GetAll(ctx)
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (libTypes.Category, error) {
	return r.store.Categories.GetByID(ctx, id)
}

func (r *CategoryRepo) Add(ctx context.Context, dto CategoryDTO) *records.Problem {
	if prob := r.Validate(ctx, dto); prob != nil {
		return prob
	}
	category := libTypes.Category{
		ID:   uuid.NewString(),
		Key:  *dto.Key,
		Name: dto.Name,
	}
	return r.store.Categories.Add(ctx, category, nil)
}

func (r *CategoryRepo) Update(ctx context.Context, id string, dto CategoryDTO) *records.Problem {
	dto.ID = id
	if prob := r.Validate(ctx, dto); prob != nil {
		return prob
	}
	category := libTypes.Category{
		ID:   id,
		Key:  *dto.Key,
		Name: dto.Name,
	}
	return r.store.Categories.Update(ctx, id, category, nil)
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) *records.Problem {
	return r.store.Categories.Delete(ctx, id, nil)
}
