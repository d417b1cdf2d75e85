package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// parseID lee el id de la ruta. Un hex malformado no puede nombrar a
// ningún registro, así que el que llama responde su propio 404.
func parseID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// errorInterno registra el fallo y responde un 500 genérico, sin
// filtrar detalle interno al cliente.
func errorInterno(c *gin.Context, err error) {
	slog.Error("error interno", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
