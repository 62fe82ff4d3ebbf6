package records

import "net/http"

// Problem is the structured error attached to failing rules and
// validators. It maps directly onto the API response envelope.
type Problem struct {
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Errors map[string][]string `json:"errors"`
}

func (p *Problem) Error() string {
	return p.Title
}

func NewProblem(title string, status int) *Problem {
	return &Problem{
		Title:  title,
		Status: status,
		Errors: map[string][]string{},
	}
}

// AddFieldError appends a message under the given field key.
func (p *Problem) AddFieldError(field string, msg string) *Problem {
	if p.Errors == nil {
		p.Errors = map[string][]string{}
	}
	p.Errors[field] = append(p.Errors[field], msg)
	return p
}

func (p *Problem) HasFieldErrors() bool {
	return len(p.Errors) > 0
}

func NotFoundProblem(title string) *Problem {
	return NewProblem(title, http.StatusNotFound)
}

// InternalProblem wraps an unexpected collaborator failure under a generic
// category key, so it is reported instead of crashing the request.
func InternalProblem(title string, category string, err error) *Problem {
	p := NewProblem(title, http.StatusInternalServerError)
	if err != nil {
		p.AddFieldError(category, err.Error())
	}
	return p
}
