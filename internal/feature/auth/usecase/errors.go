package usecase

import "taskhive/internal/shared/apperr"

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong
// password alike.
var ErrInvalidCredentials = apperr.New(apperr.ErrInvalidCredentials, "invalid email or password")
