package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextErrorCode guarda no gin.Context o código escrito por Respond,
// lido pelo log de requisição e pelas métricas.
const ContextErrorCode = "errorCode"

type HTTPError struct {
	Code          string `json:"error_code"`
	Message       string `json:"message"`
	ConflictingID uint   `json:"conflicting_id,omitempty"`
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

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// ======================================================
// Mapeamento erro de domínio → HTTP
// ======================================================

var businessStatus = map[string]int{
	CodeOutOfWorkingHours:  http.StatusUnprocessableEntity,
	CodeSlotConflict:       http.StatusConflict,
	CodeInvalidTransition:  http.StatusConflict,
	CodeNotFound:           http.StatusNotFound,
	CodeInvalidAmount:      http.StatusUnprocessableEntity,
	CodeSessionAlreadyOpen: http.StatusConflict,
	CodeSessionNotOpen:     http.StatusConflict,
	CodeInvalidInput:       http.StatusBadRequest,
}

var businessMessage = map[string]string{
	CodeOutOfWorkingHours:  "Fora do horário de atendimento.",
	CodeSlotConflict:       "Conflito de horário.",
	CodeInvalidTransition:  "Mudança de status não permitida.",
	CodeNotFound:           "Registro não encontrado.",
	CodeInvalidAmount:      "Valor inválido.",
	CodeSessionAlreadyOpen: "Já existe um caixa aberto.",
	CodeSessionNotOpen:     "O caixa não está aberto.",
	CodeInvalidInput:       "Dados inválidos.",
}

// Respond escreve err no formato padrão. Erros de domínio viram 4xx,
// StoreError vira 503 (repetível) e o resto 500.
func Respond(c *gin.Context, err error) {
	if code := Code(err); code != "" {
		c.Set(ContextErrorCode, code)
		status, ok := businessStatus[code]
		if !ok {
			status = http.StatusBadRequest
		}
		body := HTTPError{Code: code, Message: businessMessage[code]}
		if id, ok := ConflictingID(err); ok {
			body.ConflictingID = id
		}
		c.JSON(status, body)
		return
	}

	if IsStore(err) {
		c.Set(ContextErrorCode, "store_unavailable")
		Write(c, http.StatusServiceUnavailable, "store_unavailable", "Falha temporária. Tente novamente.")
		return
	}

	Internal(c, "internal_error", "Erro interno.")
}
