package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// base carries what every resource handler needs.
type base struct {
	db     *gorm.DB
	logger *zap.Logger
}

func newBase(db *gorm.DB, logger *zap.Logger) base {
	if logger == nil {
		logger = zap.NewNop()
	}
	return base{db: db, logger: logger}
}

// dbFor scopes the handle to the request so queries are cancelled with it.
func (b base) dbFor(c *gin.Context) *gorm.DB {
	if b.db == nil {
		return nil
	}
	return b.db.WithContext(c.Request.Context())
}

func (b base) fail(c *gin.Context, status int, msg string, err error) {
	if err != nil {
		b.logger.Error(msg,
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
		)
	}
	c.JSON(status, gin.H{"error": msg})
}

// bindJSON writes a 400 and returns false when the body is unusable. A body
// that parses but lacks a required field gets requiredMsg.
func (b base) bindJSON(c *gin.Context, dest interface{}, requiredMsg string) bool {
	err := c.ShouldBindJSON(dest)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": requiredMsg})
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgInvalidBody})
	}
	return false
}

// paramID parses the :id segment. Malformed ids become uuid.Nil, which no
// row has, so they behave like missing rows.
func paramID(c *gin.Context) uuid.UUID {
	return uuid.FromStringOrNil(c.Param("id"))
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
