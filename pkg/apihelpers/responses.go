package apihelpers

import (
	"github.com/gin-gonic/gin"

	"github.com/Johnmontoya/library-backend/pkg/records"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Status int                 `json:"status"`
	Title  string              `json:"title"`
	Errors map[string][]string `json:"errors,omitempty"`
	Token  string              `json:"token,omitempty"`
}

// WriteProblem renders a failed operation as the response envelope.
func WriteProblem(c *gin.Context, problem *records.Problem) {
	c.JSON(problem.Status, APIResponse{
		Status: problem.Status,
		Title:  problem.Title,
		Errors: problem.Errors,
	})
}

// WriteStatus renders a success envelope without payload.
func WriteStatus(c *gin.Context, status int, title string) {
	c.JSON(status, APIResponse{Status: status, Title: title})
}
