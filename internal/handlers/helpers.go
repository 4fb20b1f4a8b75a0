package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/store"
)

// ======================================================
// SESSÃO E PARÂMETROS
// ======================================================

func session(c *gin.Context) (auth.Session, bool) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		httperr.Unauthorized(c, "missing_session", "Sessão ausente.")
		return auth.Session{}, false
	}
	return sess, true
}

func invalid(c *gin.Context, format string, args ...any) {
	httperr.Respond(c, httperr.ErrBusinessf(httperr.CodeInvalidInput, format, args...))
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		invalid(c, "invalid %s", name)
		return 0, false
	}
	return uint(n), true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		invalid(c, "invalid %s", name)
		return uuid.Nil, false
	}
	return id, true
}

// optionalUint lê um id opcional da query; vazio devolve nil.
func optionalUint(c *gin.Context, key string) (*uint, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		invalid(c, "invalid %s", key)
		return nil, false
	}
	id := uint(n)
	return &id, true
}

// splitList aceita "a,b" e também a chave repetida (?status=a&status=b).
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func uintList(values []string) ([]uint, error) {
	parts := splitList(values)
	out := make([]uint, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil || n == 0 {
			return nil, errors.New("invalid id " + p)
		}
		out = append(out, uint(n))
	}
	return out, nil
}

func pageQuery(c *gin.Context) store.Query {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return store.Query{Page: page, Limit: limit}
}

// storeErr traduz erros do store genérico para o formato padrão.
func storeErr(c *gin.Context, op, what string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		httperr.Respond(c, httperr.ErrBusinessf(httperr.CodeNotFound, "%s not found", what))
		return
	}
	httperr.Respond(c, httperr.Store(op, err))
}

func salonScope(sess auth.Session) store.Filter {
	return store.Where("salon_id", store.Eq, sess.SalonID)
}
