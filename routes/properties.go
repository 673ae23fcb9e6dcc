package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"property-api/metrics"
	"property-api/services"
	"property-api/validation"
)

const notFoundMessage = "Resource not found."

func setupPropertyRoutes(router *gin.Engine, store PropertyStore, log *zap.Logger) {
	rg := router.Group("/properties")

	// Liste mit optionalen Filtern und Paginierung; count ist immer die Gesamtzahl der Treffer
	rg.GET("", func(c *gin.Context) {
		q, err := validation.ParseFilterQueryString(c.Request.URL.RawQuery)
		if err != nil {
			badRequest(c, err)
			return
		}

		properties, count, err := store.QueryMany(c.Request.Context(), q)
		if err != nil {
			log.Error("Database query for properties failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": properties, "count": count})
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, err := validation.ParseID(c.Param("id"))
		if err != nil {
			badRequest(c, err)
			return
		}

		property, err := store.QueryByID(c.Request.Context(), id)
		if err != nil {
			storeError(c, log, err, "Database query for property failed", id)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": property})
	})

	rg.POST("", func(c *gin.Context) {
		in, err := validation.ParseInsertUpdateBody(c.Request.Body)
		if err != nil {
			badRequest(c, err)
			return
		}

		property, err := store.Create(c.Request.Context(), in)
		if err != nil {
			log.Error("DB error creating property", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		metrics.PropertiesCreated.Inc()
		c.JSON(http.StatusCreated, gin.H{"data": property})
	})

	// PUT ersetzt alle Felder; die ID wird vor dem Body geprüft
	rg.PUT("/:id", func(c *gin.Context) {
		id, err := validation.ParseID(c.Param("id"))
		if err != nil {
			badRequest(c, err)
			return
		}
		in, err := validation.ParseInsertUpdateBody(c.Request.Body)
		if err != nil {
			badRequest(c, err)
			return
		}

		property, err := store.Update(c.Request.Context(), id, in)
		if err != nil {
			storeError(c, log, err, "DB error updating property", id)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": property})
	})

	rg.DELETE("/:id", func(c *gin.Context) {
		id, err := validation.ParseID(c.Param("id"))
		if err != nil {
			badRequest(c, err)
			return
		}

		affected, err := store.Delete(c.Request.Context(), id)
		if err != nil {
			storeError(c, log, err, "DB error deleting property", id)
			return
		}
		if affected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
			return
		}
		metrics.PropertiesDeleted.Inc()
		c.Status(http.StatusNoContent)
	})
}

func badRequest(c *gin.Context, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"message": verr.Error(),
			"details": verr.Details,
		}})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": err.Error()}})
}

// storeError übersetzt ErrNotFound in 404, alles andere wird geloggt und als 500 gemeldet.
func storeError(c *gin.Context, log *zap.Logger, err error, msg string, id uint) {
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
		return
	}
	log.Error(msg, zap.Uint("id", id), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
}
