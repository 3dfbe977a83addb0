package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies failures at the request boundary.
type ErrorKind string

const (
	KindUnauthorized       ErrorKind = "unauthorized"
	KindForbidden          ErrorKind = "forbidden"
	KindNotFound           ErrorKind = "notFound"
	KindConflict           ErrorKind = "conflict"
	KindInvalidInput       ErrorKind = "invalidInput"
	KindUpstream           ErrorKind = "upstream"
	KindInternal           ErrorKind = "internal"
	KindPaymentNotRecorded ErrorKind = "paymentNotRecorded"
)

// AppError carries a kind, a client-safe message and the underlying cause.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
	// TransactionID is set on KindPaymentNotRecorded so an operator can reconcile.
	TransactionID string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewUnauthorized(msg string) error { return &AppError{Kind: KindUnauthorized, Message: msg} }
func NewForbidden(msg string) error    { return &AppError{Kind: KindForbidden, Message: msg} }
func NewNotFound(msg string) error     { return &AppError{Kind: KindNotFound, Message: msg} }
func NewConflict(msg string) error     { return &AppError{Kind: KindConflict, Message: msg} }
func NewInvalidInput(msg string) error { return &AppError{Kind: KindInvalidInput, Message: msg} }

func NewUpstream(msg string, err error) error {
	return &AppError{Kind: KindUpstream, Message: msg, Err: err}
}

func NewInternal(msg string, err error) error {
	return &AppError{Kind: KindInternal, Message: msg, Err: err}
}

// NewPaymentNotRecorded reports that the gateway confirmed a payment but it could not be persisted.
func NewPaymentNotRecorded(transactionID string, err error) error {
	return &AppError{
		Kind:          KindPaymentNotRecorded,
		Message:       "payment succeeded but could not be recorded",
		Err:           err,
		TransactionID: transactionID,
	}
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error kind to a response status.
func HTTPStatus(kind ErrorKind) int {
	switch kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message          string `json:"message"`
	Details          string `json:"details,omitempty"`
	Code             string `json:"code,omitempty"`
	Retryable        bool   `json:"retryable,omitempty"`
	PaymentSucceeded bool   `json:"paymentSucceeded,omitempty"`
	TransactionID    string `json:"transactionId,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// AbortWithError translates err into its HTTP status and JSON body and aborts the chain.
func AbortWithError(c *gin.Context, err error) {
	kind := KindOf(err)
	status := HTTPStatus(kind)
	resp := ErrorResponse{Code: string(kind)}

	var appErr *AppError
	if errors.As(err, &appErr) {
		resp.Message = appErr.Message
		resp.TransactionID = appErr.TransactionID
	} else {
		resp.Message = "Internal Server Error"
	}

	switch kind {
	case KindUpstream:
		resp.Retryable = true
	case KindPaymentNotRecorded:
		resp.PaymentSucceeded = true
	}

	logger := GetLogger().With(
		zap.String("path", c.FullPath()),
		zap.String("kind", string(kind)),
		zap.Error(err),
	)
	if status >= http.StatusInternalServerError {
		logger.Error(resp.Message)
	} else {
		logger.Warn(resp.Message)
	}
	c.AbortWithStatusJSON(status, resp)
}
