package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
)

// mapBusinessError traduz falhas de regra de negócio para o status
// HTTP correto; qualquer outro erro vira 500 genérico.
func mapBusinessError(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		httperr.WriteBusiness(c, code)
		return
	}

	httperr.Internal(c, "internal_error", "Erro interno. Tente novamente.")
}
