package library

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	libraryDB "github.com/Johnmontoya/library-backend/pkg/db/library"
	libTypes "github.com/Johnmontoya/library-backend/pkg/library/types"
	"github.com/Johnmontoya/library-backend/pkg/records"
)

type AuthorDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
}

type AuthorRepo struct {
	store *libraryDB.LibraryDBService
}

func NewAuthorRepo(store *libraryDB.LibraryDBService) *AuthorRepo {
	return &AuthorRepo{store: store}
}

func (r *AuthorRepo) Validate(ctx context.Context, dto AuthorDTO) *records.Problem {
	prob := records.NewProblem("validation failed", http.StatusBadRequest)

	if dto.Name == "" {
		prob.AddFieldError("name", "name is required")
	} else {
		taken, err := r.store.ExistsOther(ctx, libraryDB.TABLE_NAME_AUTHORS, "name", dto.Name, dto.ID)
		if err != nil {
			return records.InternalProblem("could not validate author", "author", err)
		}
		if taken {
			prob.AddFieldError("name", "name is already in use")
		}
	}

	if dto.Nationality == "" {
		prob.AddFieldError("nationality", "nationality is required")
	}

	if prob.HasFieldErrors() {
		return prob
	}
	return nil
}

func (r *AuthorRepo) GetAll(ctx context.Context) ([]libTypes.Author, error) {
	return r.store.Authors.GetAll(ctx)
}

func (r *AuthorRepo) GetByID(ctx context.Context, id string) (libTypes.Author, error) {
	return r.store.Authors.GetByID(ctx, id)
}

func (r *AuthorRepo) Add(ctx context.Context, dto AuthorDTO) *records.Problem {
	if prob := r.Validate(ctx, dto); prob != nil {
		return prob
	}
	author := libTypes.Author{
		ID:          uuid.NewString(),
		Name:        dto.Name,
		Nationality: dto.Nationality,
	}
	return r.store.Authors.Add(ctx, author, nil)
}

func (r *AuthorRepo) Update(ctx context.Context, id string, dto AuthorDTO) *records.Problem {
	dto.ID = id
	if prob := r.Validate(ctx, dto); prob != nil {
		return prob
	}
	author := libTypes.Author{
		ID:          id,
		Name:        dto.Name,
		Nationality: dto.Nationality,
	}
	return r.store.Authors.Update(ctx, id, author, nil)
}

func (r *AuthorRepo) Delete(ctx context.Context, id string) *records.Problem {
	return r.store.Authors.Delete(ctx, id, nil)
}
