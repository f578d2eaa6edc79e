package validation

import (
	"testing"

	. "github.com/onsi/gomega"

	"taskboard/internal/core/model/request"
	"taskboard/internal/core/util"
)

func TestFormatValidationErrors_UsesJSONNames(t *testing.T) {
	RegisterTestingT(t)

	err := Validator.Struct(request.CreateListRequest{})
	errors := FormatValidationErrors(err)

	Expect(errors).To(HaveLen(2))
	Expect(errors[0].Field).To(Equal("name"))
	Expect(errors[0].Message).To(Equal("Name is required"))
	Expect(errors[1].Field).To(Equal("userId"))
	Expect(errors[1].Message).To(Equal("User ID is required"))
}

func TestFormatValidationErrors_Limits(t *testing.T) {
	RegisterTestingT(t)

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}

	errors := FormatValidationErrors(Validator.Struct(request.CreateListRequest{Name: string(long), UserID: "u1"}))
	Expect(errors).To(HaveLen(1))
	Expect(errors[0].Message).To(Equal("Name must be less than or equal to 50 characters"))

	errors = FormatValidationErrors(Validator.Struct(request.CreateUserRequest{Username: "ab", Password: "12345678"}))
	Expect(errors).To(HaveLen(1))
	Expect(errors[0].Message).To(Equal("Username must be at least 3 characters"))
}

func TestValidator_OptionalUpdateFields(t *testing.T) {
	RegisterTestingT(t)

	Expect(Validator.Struct(request.UpdateTodoRequest{})).To(Succeed())
	Expect(Validator.Struct(request.UpdateListRequest{Name: util.Ptr("")})).NotTo(Succeed())
	Expect(Validator.Struct(request.ReorderRequest{Priority: util.Ptr(0), UserID: "u1"})).To(Succeed())
	Expect(Validator.Struct(request.ReorderRequest{UserID: "u1"})).NotTo(Succeed())
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	RegisterTestingT(t)

	Expect(FormatValidationErrors(nil)).To(BeEmpty())
}
