// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

// Package validation provides struct validation using go-playground/validator v10.
//
// The package holds a thread-safe singleton validator with the custom rules
// the service needs and translates failures into the VALIDATION_ERROR
// envelope used by the API.
//
// # Custom Validators
//
//   - httpurl: absolute http or https URL with a host
//   - filmyear: integer between MinFilmYear and MaxFilmYear
//
// Field names in messages come from the `query` struct tag when present, so
// errors name the query parameter the client sent.
//
// # Usage
//
//	type searchQuery struct {
//	    Query string `query:"query" validate:"required,max=200"`
//	    Year  *int   `query:"year" validate:"omitempty,filmyear"`
//	    Page  int    `query:"page" validate:"min=1,max=500"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// Single values can be checked directly:
//
//	ok := validation.IsHTTPURL(poster)
package validation
