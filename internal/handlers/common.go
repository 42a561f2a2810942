package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/smp-team-2025/smp-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"SESSION_NOT_FOUND"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// respondError translates domain errors into their status + stable code and
// hides everything else behind a generic 500.
func respondError(c *gin.Context, err error) {
	var domainErr *services.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(domainErr.Status, ErrorResponse{Error: domainErr.Code})
		return
	}

	slog.Error("unexpected error", "path", c.FullPath(), "err", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL_ERROR"})
}

// respondEligibilityError adds the evaluator's reasons when an issuance is
// rejected on eligibility grounds.
func respondEligibilityError(c *gin.Context, err error, reasons []string) {
	var domainErr *services.DomainError
	if errors.As(err, &domainErr) && domainErr == services.ErrNotEligible {
		c.JSON(domainErr.Status, gin.H{"error": domainErr.Code, "reasons": reasons})
		return
	}
	respondError(c, err)
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_" + upperSnake(name)})
		return 0, false
	}
	return uint(v), true
}

func queryUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

func upperSnake(name string) string {
	out := make([]byte, 0, len(name)+4)
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if ch >= 'A' && ch <= 'Z' {
			out = append(out, '_', ch)
			continue
		}
		if ch >= 'a' && ch <= 'z' {
			out = append(out, ch-'a'+'A')
			continue
		}
		out = append(out, ch)
	}
	return string(out)
}
