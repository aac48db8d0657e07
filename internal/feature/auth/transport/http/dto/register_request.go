// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq is the request body for POST /auth/register.
type RegisterReq struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}
