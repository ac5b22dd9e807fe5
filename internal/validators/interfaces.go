// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for registration, login and
// note payloads.
//
// Validators are built on go-playground/validator struct tags declared on the
// models. Field-level problems are reported as a *[ValidationError] keyed by
// JSON field name, so the transport layer can render them verbatim.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
