// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"atlas/internal/core/id"
)

// Response is the uniform envelope every endpoint returns.
type Response struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Msg     string `json:"msg"`
	Data    any    `json:"data,omitempty"`
	Err     any    `json:"err,omitempty"`
}

// OK wraps successful data.
func OK(data any) Response {
	return Response{
		Success: true,
		Code:    "OK",
		Msg:     "success",
		Data:    data,
	}
}

// OKMsg wraps a success without payload.
func OKMsg(msg string) Response {
	return Response{
		Success: true,
		Code:    "OK",
		Msg:     msg,
	}
}

// Fail wraps an error outcome.
func Fail(code, msg string, details any) Response {
	return Response{
		Success: false,
		Code:    code,
		Msg:     msg,
		Err:     details,
	}
}

// IDResponse for create operations.
type IDResponse struct {
	ID id.ID `json:"id"`
}

// StatusRequest flips an entity's status.
type StatusRequest struct {
	Status *int `json:"status" binding:"required"`
}
