package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"transit_api/internal/repository"
)

const msgUnexpected = "Oops! Não foi possível executar essa ação"

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health handles GET /health.
func Health(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			logrus.WithError(err).Warn("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// respondError maps a repository error onto the HTTP response.
// NotFound and Conflict are caller errors; anything else is a store failure.
func respondError(c *gin.Context, op string, err error) {
	var nf *repository.NotFoundError
	var cf *repository.ConflictError
	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusBadRequest, gin.H{"message": nf.Message})
	case errors.As(err, &cf):
		c.JSON(http.StatusBadRequest, gin.H{"message": cf.Message})
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"operation": op,
			"path":      c.Request.URL.Path,
		}).Error("persistence failure")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": msgUnexpected,
			"error":   err.Error(),
		})
	}
}

// respondBindError reports a request that failed binding or validation,
// listing the rule each offending field broke.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Dados da requisição inválidos",
			"errors":  fields,
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Dados da requisição inválidos",
		"error":   err.Error(),
	})
}

// parseID reads the :id path parameter.
// On failure it writes a 400 response and returns (0, false).
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "O id deve ser um número inteiro"})
		return 0, false
	}
	return id, true
}
