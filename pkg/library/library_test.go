package library

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	libraryDB "github.com/Johnmontoya/library-backend/pkg/db/library"
	userDB "github.com/Johnmontoya/library-backend/pkg/db/user"
	"github.com/Johnmontoya/library-backend/pkg/records"
	userTypes "github.com/Johnmontoya/library-backend/pkg/user-management/types"

	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) (*libraryDB.LibraryDBService, *userDB.AccountDBService) {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	ctx := context.Background()
	accountStore := userDB.NewAccountDBServiceWithDB(db, "sqlite3")
	if err := accountStore.EnsureSchema(ctx); err != nil {
		t.Fatalf("failed to prepare account tables: %v", err)
	}
	libraryStore := libraryDB.NewLibraryDBServiceWithDB(db, "sqlite3")
	if err := libraryStore.EnsureSchema(ctx); err != nil {
		t.Fatalf("failed to prepare library tables: %v", err)
	}
	return libraryStore, accountStore
}

func intPtr(v int) *int { return &v }

func createTestAccount(t *testing.T, accountStore *userDB.AccountDBService, id string) {
	t.Helper()
	err := accountStore.CreateAccount(context.Background(), userTypes.Account{
		ID:             id,
		Email:          id + "@x.com",
		Username:       "user-" + id,
		Password:       "irrelevant",
		EmailConfirmed: true,
		LockoutEnabled: true,
		CreatedAt:      time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
}

func createTestCategory(t *testing.T, store *libraryDB.LibraryDBService, key int, name string) string {
	t.Helper()
	repo := NewCategoryRepo(store)
	if prob := repo.Add(context.Background(), CategoryDTO{Key: intPtr(key), Name: name}); prob != nil {
		t.Fatalf("failed to create category: %v (%v)", prob.Title, prob.Errors)
	}
	categories, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("failed to load categories: %v", err)
	}
	for _, category := range categories {
		if category.Name == name {
			return category.ID
		}
	}
	t.Fatal("created category not found")
	return ""
}

func createTestAuthor(t *testing.T, store *libraryDB.LibraryDBService, name string) string {
	t.Helper()
	repo := NewAuthorRepo(store)
	if prob := repo.Add(context.Background(), AuthorDTO{Name: name, Nationality: "Colombian"}); prob != nil {
		t.Fatalf("failed to create author: %v (%v)", prob.Title, prob.Errors)
	}
	authors, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("failed to load authors: %v", err)
	}
	for _, author := range authors {
		if author.Name == name {
			return author.ID
		}
	}
	t.Fatal("created author not found")
	return ""
}

func createTestBook(t *testing.T, store *libraryDB.LibraryDBService, name string, categoryID string, authorID string) string {
	t.Helper()
	repo := NewBookRepo(store)
	if prob := repo.Add(context.Background(), BookDTO{
		Name:       name,
		Publisher:  "Planeta",
		CategoryID: categoryID,
		AuthorID:   authorID,
	}); prob != nil {
		t.Fatalf("failed to create book: %v (%v)", prob.Title, prob.Errors)
	}
	books, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("failed to load books: %v", err)
	}
	for _, book := range books {
		if book.Name == name {
			return book.ID
		}
	}
	t.Fatal("created book not found")
	return ""
}

func TestCategoryValidation(t *testing.T) {
	store, _ := newTestStore(t)
	repo := NewCategoryRepo(store)
	ctx := context.Background()

	t.Run("missing fields", func(t *testing.T) {
		prob := repo.Add(ctx, CategoryDTO{})
		if prob == nil || prob.Status != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %+v", prob)
		}
		if len(prob.Errors["key"]) == 0 || len(prob.Errors["name"]) == 0 {
			t.Errorf("expected field errors for key and name, got %v", prob.Errors)
		}
	})

	t.Run("key out of range", func(t *testing.T) {
		prob := repo.Add(ctx, CategoryDTO{Key: intPtr(100), Name: "Novela"})
		if prob == nil || len(prob.Errors["key"]) == 0 {
			t.Fatalf("expected key field error, got %+v", prob)
		}
	})

	categoryID := createTestCategory(t, store, 10, "Novela")

	t.Run("duplicate key and name", func(t *testing.T) {
		prob := repo.Add(ctx, CategoryDTO{Key: intPtr(10), Name: "Novela"})
		if prob == nil || prob.Status != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %+v", prob)
		}
		if len(prob.Errors["key"]) == 0 || len(prob.Errors["name"]) == 0 {
			t.Errorf("expected uniqueness errors, got %v", prob.Errors)
		}
	})

	t.Run("update does not conflict with itself", func(t *testing.T) {
		prob := repo.Update(ctx, categoryID, CategoryDTO{Key: intPtr(10), Name: "Novela"})
		if prob != nil {
			t.Fatalf("self update failed: %v (%v)", prob.Title, prob.Errors)
		}
	})

	t.Run("update conflicts with other record", func(t *testing.T) {
		createTestCategory(t, store, 20, "Poesia")
		prob := repo.Update(ctx, categoryID, CategoryDTO{Key: intPtr(20), Name: "Novela"})
		if prob == nil || len(prob.Errors["key"]) == 0 {
			t.Fatalf("expected key uniqueness error, got %+v", prob)
		}
	})
}

func TestBookReferenceRules(t *testing.T) {
	store, _ := newTestStore(t)
	repo := NewBookRepo(store)
	ctx := context.Background()

	categoryID := createTestCategory(t, store, 1, "Novela")
	authorID := createTestAuthor(t, store, "Gabriel Garcia Marquez")

	t.Run("dangling category", func(t *testing.T) {
		prob := repo.Add(ctx, BookDTO{
			Name:       "Cien anos de soledad",
			Publisher:  "Planeta",
			CategoryID: "missing",
			AuthorID:   authorID,
		})
		if prob == nil || prob.Status != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %+v", prob)
		}
		if len(prob.Errors["categoryId"]) == 0 {
			t.Errorf("expected categoryId error, got %v", prob.Errors)
		}
	})

	t.Run("dangling author", func(t *testing.T) {
		prob := repo.Add(ctx, BookDTO{
			Name:       "Cien anos de soledad",
			Publisher:  "Planeta",
			CategoryID: categoryID,
			AuthorID:   "missing",
		})
		if prob == nil || len(prob.Errors["authorId"]) == 0 {
			t.Fatalf("expected authorId error, got %+v", prob)
		}
	})

	createTestBook(t, store, "Cien anos de soledad", categoryID, authorID)

	t.Run("duplicate name", func(t *testing.T) {
		prob := repo.Add(ctx, BookDTO{
			Name:       "Cien anos de soledad",
			Publisher:  "Planeta",
			CategoryID: categoryID,
			AuthorID:   authorID,
		})
		if prob == nil || len(prob.Errors["name"]) == 0 {
			t.Fatalf("expected name uniqueness error, got %+v", prob)
		}
	})
}

func TestLoanDefaultsLoanDate(t *testing.T) {
	store, accountStore := newTestStore(t)
	repo := NewLoanRepo(store)
	ctx := context.Background()

	createTestAccount(t, accountStore, "acc-1")
	categoryID := createTestCategory(t, store, 1, "Novela")
	authorID := createTestAuthor(t, store, "Gabriel Garcia Marquez")
	bookID := createTestBook(t, store, "Cien anos de soledad", categoryID, authorID)

	fixedNow := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixedNow }

	if prob := repo.Add(ctx, LoanDTO{AccountID: "acc-1", BookID: bookID}); prob != nil {
		t.Fatalf("failed to create loan: %v (%v)", prob.Title, prob.Errors)
	}

	loans, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("failed to load loans: %v", err)
	}
	if len(loans) != 1 {
		t.Fatalf("expected 1 loan, got %d", len(loans))
	}
	if loans[0].LoanDate != "2024-05-17" {
		t.Errorf("expected defaulted loan date, got %s", loans[0].LoanDate)
	}
	if loans[0].ReturnDate != nil {
		t.Errorf("expected open return date, got %v", *loans[0].ReturnDate)
	}

	t.Run("invalid date format", func(t *testing.T) {
		prob := repo.Add(ctx, LoanDTO{AccountID: "acc-1", BookID: bookID, LoanDate: "17.05.2024"})
		if prob == nil || len(prob.Errors["loanDate"]) == 0 {
			t.Fatalf("expected loanDate error, got %+v", prob)
		}
	})

	t.Run("dangling account", func(t *testing.T) {
		prob := repo.Add(ctx, LoanDTO{AccountID: "missing", BookID: bookID})
		if prob == nil || len(prob.Errors["accountId"]) == 0 {
			t.Fatalf("expected accountId error, got %+v", prob)
		}
	})
}

func TestPersonProfile(t *testing.T) {
	store, accountStore := newTestStore(t)
	repo := NewPersonRepo(store)
	ctx := context.Background()

	createTestAccount(t, accountStore, "acc-1")
	createTestAccount(t, accountStore, "acc-2")

	dto := PersonDTO{
		NationalID: intPtr(12345678),
		BirthDate:  "1990-01-31",
		Address:    "Calle 1 # 2-3",
		City:       "Bogota",
	}
	if prob := repo.Add(ctx, "acc-1", dto); prob != nil {
		t.Fatalf("failed to create profile: %v (%v)", prob.Title, prob.Errors)
	}

	t.Run("second profile for same account", func(t *testing.T) {
		second := dto
		second.NationalID = intPtr(87654321)
		prob := repo.Add(ctx, "acc-1", second)
		if prob == nil || prob.Status != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %+v", prob)
		}
		if prob.Title != "profile already exists for this account" {
			t.Errorf("unexpected reason: %s", prob.Title)
		}
	})

	t.Run("duplicate national id", func(t *testing.T) {
		prob := repo.Add(ctx, "acc-2", dto)
		if prob == nil || len(prob.Errors["nationalId"]) == 0 {
			t.Fatalf("expected nationalId error, got %+v", prob)
		}
	})

	t.Run("update keeps own national id", func(t *testing.T) {
		person, err := repo.GetByAccountID(ctx, "acc-1")
		if err != nil {
			t.Fatalf("failed to load profile: %v", err)
		}
		updated := dto
		updated.City = "Medellin"
		if prob := repo.Update(ctx, person.ID, "acc-1", updated); prob != nil {
			t.Fatalf("self update failed: %v (%v)", prob.Title, prob.Errors)
		}
	})

	t.Run("missing profile", func(t *testing.T) {
		if _, err := repo.GetByAccountID(ctx, "acc-3"); !errors.Is(err, records.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestCascadingDeletes(t *testing.T) {
	store, accountStore := newTestStore(t)
	ctx := context.Background()

	createTestAccount(t, accountStore, "acc-1")
	categoryID := createTestCategory(t, store, 1, "Novela")
	authorID := createTestAuthor(t, store, "Gabriel Garcia Marquez")
	bookID := createTestBook(t, store, "Cien anos de soledad", categoryID, authorID)

	loanRepo := NewLoanRepo(store)
	if prob := loanRepo.Add(ctx, LoanDTO{AccountID: "acc-1", BookID: bookID, LoanDate: "2024-05-17"}); prob != nil {
		t.Fatalf("failed to create loan: %v (%v)", prob.Title, prob.Errors)
	}

	if prob := NewCategoryRepo(store).Delete(ctx, categoryID); prob != nil {
		t.Fatalf("failed to delete category: %v", prob.Title)
	}

	if _, err := NewBookRepo(store).GetByID(ctx, bookID); !errors.Is(err, records.ErrNotFound) {
		t.Errorf("expected book to be removed with its category, got %v", err)
	}
	loans, err := loanRepo.GetAll(ctx)
	if err != nil {
		t.Fatalf("failed to load loans: %v", err)
	}
	if len(loans) != 0 {
		t.Errorf("expected loans to be removed with the book, got %d", len(loans))
	}
}
