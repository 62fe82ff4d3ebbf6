package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	libraryDB "github.com/Johnmontoya/library-backend/pkg/db/library"
	"github.com/Johnmontoya/library-backend/pkg/library"
	usermanagement "github.com/Johnmontoya/library-backend/pkg/user-management"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	tokenSignKey string

	userService *usermanagement.Service

	categories *library.CategoryRepo
	authors    *library.AuthorRepo
	books      *library.BookRepo
	loans      *library.LoanRepo
	persons    *library.PersonRepo
}

func NewHTTPHandler(
	tokenSignKey string,
	userService *usermanagement.Service,
	libraryDBConn *libraryDB.LibraryDBService,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey: tokenSignKey,
		userService:  userService,
		categories:   library.NewCategoryRepo(libraryDBConn),
		authors:      library.NewAuthorRepo(libraryDBConn),
		books:        library.NewBookRepo(libraryDBConn),
		loans:        library.NewLoanRepo(libraryDBConn),
		persons:      library.NewPersonRepo(libraryDBConn),
	}
}
