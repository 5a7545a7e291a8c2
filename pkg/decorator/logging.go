package decorator

import (
	"context"
	"errors"

	"github.com/architeacher/fieldcompare/pkg/logger"
	"github.com/architeacher/fieldcompare/pkg/validation"
)

type validatorLoggingDecorator struct {
	base   validation.Validator
	logger logger.Logger
}

func (d validatorLoggingDecorator) Describe() validation.Description {
	return validation.Describe(d.base)
}

func (d validatorLoggingDecorator) Validate(ctx context.Context, field validation.Field) error {
	desc := validation.Describe(d.base)
	log := d.logger.WithContext(ctx)

	err := d.base.Validate(ctx, field)

	if validation.IsStructural(err) {
		log.Warn().
			Str("field", field.Name).
			Str("rule", desc.Rule).
			Str("other", desc.Other).
			Msg(err.Error())

		return err
	}

	event := log.Debug().
		Str("field", field.Name).
		Str("rule", desc.Rule).
		Bool("valid", err == nil)

	if desc.DataType != "" {
		event = event.Str("data_type", desc.DataType.String())
	}

	if desc.Operator != "" {
		event = event.Str("operator", desc.Operator.String())
	}

	var fe *validation.FieldError
	if errors.As(err, &fe) {
		event = event.Str("code", string(fe.Code))
	}

	event.Msg("field validated")

	return err
}
