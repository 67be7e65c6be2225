package httperr

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

// Mensagens amigáveis por código de negócio.
var messages = map[string]string{
	CodeInvalidAmount:        "amount must be greater than zero",
	CodeInvalidDuration:      "service duration must be greater than zero",
	CodeSameAccount:          "source and destination accounts must be different",
	CodeAccountNotFound:      "account not found",
	CodeServiceNotFound:      "service not found",
	CodeInsufficientFunds:    "insufficient balance in source account",
	CodeProtectedTransaction: "this entry belongs to a transfer or appointment and cannot be changed directly",
	CodeTimeConflict:         "selected time is no longer available",

	"invalid_state":         "appointment status does not allow this action",
	"too_soon":              "appointments require a minimum advance notice",
	"outside_service_hours": "selected time is outside the service hours",
	"appointment_not_found": "appointment not found",
	"client_not_found":      "client not found",
	"pet_not_found":         "pet not found",
	"transfer_not_found":    "transfer not found",
	"transaction_not_found": "transaction not found",
}

func Message(code string) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return code
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// WriteBusiness escolhe o status HTTP a partir do código de negócio.
func WriteBusiness(c *gin.Context, code string) {
	switch {
	case strings.HasSuffix(code, "_not_found"):
		NotFound(c, code, Message(code))
	case code == CodeInsufficientFunds,
		code == CodeTimeConflict,
		code == CodeProtectedTransaction,
		code == "invalid_state":
		Conflict(c, code, Message(code))
	default:
		BadRequest(c, code, Message(code))
	}
}
