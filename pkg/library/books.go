package library

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	libraryDB "github.com/Johnmontoya/library-backend/pkg/db/library"
	libTypes "github.com/Johnmontoya/library-backend/pkg/library/types"
	"github.com/Johnmontoya/library-backend/pkg/records"
)

type BookDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Publisher  string `json:"publisher"`
	CategoryID string `json:"categoryId"`
	AuthorID   string `json:"authorId"`
}

type BookRepo struct {
	store *libraryDB.LibraryDBService
}

func NewBookRepo(store *libraryDB.LibraryDBService) *BookRepo {
	return &BookRepo{store: store}
}

func (r *BookRepo) Validate(ctx context.Context, dto BookDTO) *records.Problem {
	prob := records.NewProblem("validation failed", http.StatusBadRequest)

	if dto.Name == "" {
		prob.AddFieldError("name", "name is required")
	} else {
		taken, err := r.store.ExistsOther(ctx, libraryDB.TABLE_NAME_BOOKS, "name", dto.Name, dto.ID)
		if err != nil {
			return records.InternalProblem("could not validate book", "book", err)
		}
		if taken {
			prob.AddFieldError("name", "name is already in use")
		}
	}
	if dto.Publisher == "" {
		prob.AddFieldError("publisher", "publisher is required")
	}
	if dto.CategoryID == "" {
		prob.AddFieldError("categoryId", "categoryId is required")
	}
	if dto.AuthorID == "" {
		prob.AddFieldError("authorId", "authorId is required")
	}

	if prob.HasFieldErrors() {
		return prob
	}
	return nil
}

// rules require the referenced category and author to exist at write
// time; a dangling reference aborts the operation before the store is
// touched.
func (r *BookRepo) rules(dto BookDTO) []records.Rule {
	return []records.Rule{
		r.referenceExists(libraryDB.TABLE_NAME_CATEGORIES, dto.CategoryID, "categoryId", "category does not exist"),
		r.referenceExists(libraryDB.TABLE_NAME_AUTHORS, dto.AuthorID, "authorId", "author does not exist"),
	}
}

func (r *BookRepo) referenceExists(table string, id string, field string, msg string) records.Rule {
	return records.RuleFunc(func(ctx context.Context) *records.Problem {
		found, err := r.store.Exists(ctx, table, id)
		if err != nil {
			return records.InternalProblem("could not validate book", "book", err)
		}
		if !found {
			prob := records.NewProblem("validation failed", http.StatusBadRequest)
			prob.AddFieldError(field, msg)
			return prob
		}
		return nil
	})
}

func (r *BookRepo) GetAll(ctx context.Context) ([]libTypes.Book, error) {
	return r.store.Books.GetAll(ctx)
}

func (r *BookRepo) GetByID(ctx context.Context, id string) (libTypes.Book, error) {
	return r.store.Books.GetByID(ctx, id)
}

func (r *BookRepo) Add(ctx context.Context, dto BookDTO) *records.Problem {
	if prob := r.Validate(ctx, dto); prob != nil {
		return prob
	}
	book := libTypes.Book{
		ID:         uuid.NewString(),
		Name:       dto.Name,
		Publisher:  dto.Publisher,
		CategoryID: dto.CategoryID,
		AuthorID:   dto.AuthorID,
	}
	return r.store.Books.Add(ctx, book, r.rules(dto))
}

func (r *BookRepo) Update(ctx context.Context, id string, dto BookDTO) *records.Problem {
	dto.ID = id
	if prob := r.Validate(ctx, dto); prob != nil {
		return prob
	}
	book := libTypes.Book{
		ID:         id,
		Name:       dto.Name,
		Publisher:  dto.Publisher,
		CategoryID: dto.CategoryID,
		AuthorID:   dto.AuthorID,
	}
	return r.store.Books.Update(ctx, id, book, r.rules(dto))
}

func (r *BookRepo) Delete(ctx context.Context, id string) *records.Problem {
	return r.store.Books.Delete(ctx, id, nil)
}
