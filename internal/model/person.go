package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinAge = 1
	MaxAge = 120
)

// Person is the record served by the persons API.
// ID is assigned by the server; a zero ID marks a record not yet created.
type Person struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// personInput is what the form hands over before it becomes a Person.
type personInput struct {
	Name string `validate:"required"`
	Age  int    `validate:"min=1,max=120"`
}

var validate = validator.New()

// ValidationError is returned for local input problems; no request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ParsePerson validates raw name/age input and builds a transient Person.
// The name is trimmed; the age must be an integer in [MinAge, MaxAge].
func ParsePerson(name, age string) (Person, error) {
	name = strings.TrimSpace(name)
	n, err := strconv.Atoi(strings.TrimSpace(age))
	if err != nil {
		if name == "" {
			return Person{}, invalidInput("name")
		}
		return Person{}, invalidInput("age")
	}

	in := personInput{Name: name, Age: n}
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Person{}, invalidInput(strings.ToLower(verrs[0].Field()))
		}
		return Person{}, fmt.Errorf("validate person: %w", err)
	}
	return Person{Name: in.Name, Age: in.Age}, nil
}

func invalidInput(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("Please enter a valid name and an age between %d and %d.", MinAge, MaxAge),
	}
}
