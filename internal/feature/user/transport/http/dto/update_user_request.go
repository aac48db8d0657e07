// Package dto defines data transfer objects for the user feature's HTTP transport layer.
package dto

// UpdateUserReq is the request body for PUT /user/me. Absent or null keys are left untouched.
type UpdateUserReq struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
}
