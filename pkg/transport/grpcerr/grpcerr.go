// Package grpcerr maps validation results onto gRPC statuses so a server can
// return field errors to its callers and a client can read them back.
package grpcerr

import (
	"errors"

	"buf.build/gen/go/bufbuild/protovalidate/protocolbuffers/go/buf/validate"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"

	"github.com/architeacher/fieldcompare/pkg/validation"
)

const (
	// rulePrefix namespaces rule ids in violations.
	rulePrefix = "fieldcompare."

	invalidMessage = "validation failed"
)

// ToStatus converts err into a gRPC status. A nil error or an empty
// validation result is OK. Validation errors become
// InvalidArgument with a BadRequest detail carrying one violation per field
// error; structural errors of the model become FailedPrecondition. Any other
// error is Internal.
func ToStatus(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}

	var errs *validation.Errors
	if errors.As(err, &errs) {
		if !errs.HasErrors() {
			return status.New(codes.OK, "")
		}

		return fromErrors(errs.Errors)
	}

	var fe *validation.FieldError
	if errors.As(err, &fe) {
		return fromErrors([]validation.FieldError{*fe})
	}

	if errors.Is(err, validation.ErrPropertyNotFound) {
		return status.New(codes.FailedPrecondition, err.Error())
	}

	return status.New(codes.Internal, "internal error")
}

func fromErrors(fieldErrors []validation.FieldError) *status.Status {
	code := codes.InvalidArgument

	for _, fe := range fieldErrors {
		if fe.Code == validation.CodeUnknownProperty {
			code = codes.FailedPrecondition

			break
		}
	}

	st := status.New(code, invalidMessage)

	br := &errdetails.BadRequest{}
	for _, fe := range fieldErrors {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       fe.Field,
			Description: fe.Message,
			Reason:      string(fe.Code),
		})
	}

	detailed, err := st.WithDetails(br)
	if err != nil {
		return st
	}

	return detailed
}

// FromStatus reads the field errors carried by st. It returns nil when st
// carries none.
func FromStatus(st *status.Status) *validation.Errors {
	var errs *validation.Errors

	for _, detail := range st.Details() {
		br, ok := detail.(*errdetails.BadRequest)
		if !ok {
			continue
		}

		if errs == nil {
			errs = validation.NewErrors()
		}

		for _, v := range br.GetFieldViolations() {
			errs.Errors = append(errs.Errors, validation.FieldError{
				Field:   v.GetField(),
				Code:    validation.ErrorCode(v.GetReason()),
				Message: v.GetDescription(),
			})
		}
	}

	return errs
}

// ToViolations converts field errors into protovalidate violations, with the
// rule id naming the error code.
func ToViolations(errs *validation.Errors) *validate.Violations {
	out := &validate.Violations{}

	if errs == nil {
		return out
	}

	for _, fe := range errs.Errors {
		out.Violations = append(out.Violations, &validate.Violation{
			Field: &validate.FieldPath{
				Elements: []*validate.FieldPathElement{
					{FieldName: proto.String(fe.Field)},
				},
			},
			RuleId:  proto.String(rulePrefix + string(fe.Code)),
			Message: proto.String(fe.Message),
		})
	}

	return out
}
