// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegistrationForm represents the form body for POST /registration.
// It uses Gin's binding tags for validation (required fields, email format).
type RegistrationForm struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
	Remember bool   `form:"remember"`
}
