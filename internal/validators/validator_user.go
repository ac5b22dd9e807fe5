// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/go-playground/validator/v10"
)

// Field names accepted for field-level scoping of user payloads.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldPasswordConfirm = "password_confirm"
)

// UserValidator checks registration and login payloads.
type UserValidator struct {
	engine *validator.Validate
}

// NewUserValidator constructs a UserValidator and returns it as the
// Validator interface.
func NewUserValidator() Validator {
	return &UserValidator{engine: newEngine()}
}

// Validate dispatches on the dynamic type of obj. Supported types are
// models.RegisterRequest and models.Credentials, by value or pointer.
//
// Field problems are returned as *ValidationError.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegistration(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegistration(ctx, *value, fields...)
	case models.Credentials:
		return v.validateCredentials(ctx, value)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value)
	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateCredentials(ctx context.Context, creds models.Credentials) error {
	verr := NewValidationError()
	if err := collect(v.engine.StructCtx(ctx, creds), verr); err != nil {
		return err
	}

	return verr.orNil()
}

// validateRegistration runs the tag rules and then the password policy:
// not entirely numeric, not similar to the username, and matching the
// confirmation when one is given or required.
func (v *UserValidator) validateRegistration(ctx context.Context, req models.RegisterRequest, fields ...string) error {
	verr := NewValidationError()

	if err := collect(v.engine.StructCtx(ctx, req), verr); err != nil {
		return err
	}

	if _, bad := verr.Fields[FieldPassword]; !bad && req.Password != "" {
		if isNumeric(req.Password) {
			verr.Add(FieldPassword, MsgPasswordNumeric)
		}
		if req.Username != "" && strings.EqualFold(req.Password, req.Username) {
			verr.Add(FieldPassword, MsgPasswordSimilar)
		}
	}

	confirmation := req.Confirmation()
	switch {
	case confirmation == "" && req.ConfirmationRequired:
		verr.Add(FieldPasswordConfirm, MsgRequired)
	case confirmation != "" && confirmation != req.Password:
		verr.Add(FieldPasswordConfirm, MsgPasswordMatch)
	}

	return verr.only(fields...).orNil()
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
