package usecase

import "taskhive/internal/shared/apperr"

// ErrEmptyUpdate is returned by Update when the patch carries no fields.
var ErrEmptyUpdate = apperr.New(apperr.ErrValidation, "nothing to update")
