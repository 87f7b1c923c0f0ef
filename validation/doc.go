// Package validation validates request structs with go-playground/validator
// and converts failures into *errors.AppError values with per-field details.
//
//	type setURLRequest struct {
//	    URL string `json:"ngrok_url" validate:"required,httpurl"`
//	}
//	if err := validation.Validate(req); err != nil { ... }
package validation
