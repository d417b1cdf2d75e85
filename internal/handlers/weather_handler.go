package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"escuela-backend/internal/weather"
)

type WeatherHandler struct {
	Client *weather.Client
}

func NewWeatherHandler(client *weather.Client) *WeatherHandler {
	return &WeatherHandler{Client: client}
}

func (h *WeatherHandler) Current(c *gin.Context) {
	if h.Client.APIKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API key de OpenWeatherMap no configurada"})
		return
	}
	ciudad := c.Param("city")
	datos, err := h.Client.Actual(c.Request.Context(), ciudad)
	if err != nil {
		if errors.Is(err, weather.ErrCiudadNoEncontrada) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ciudad no encontrada"})
			return
		}
		slog.Error("error obteniendo clima", "ciudad", ciudad, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener datos del clima"})
		return
	}
	c.JSON(http.StatusOK, datos)
}
