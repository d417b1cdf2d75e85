package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"escuela-backend/internal/handlers"
)

// Handlers agrupa todos los handlers que el router registra. Se
// construyen en main y se inyectan aquí.
type Handlers struct {
	Alumnos    *handlers.AlumnoHandler
	Profesores *handlers.ProfesorHandler
	Clases     *handlers.ClaseHandler
	Horarios   *handlers.HorarioHandler
	Auth       *handlers.AuthHandler
	Weather    *handlers.WeatherHandler
}

func Setup(r *gin.Engine, h Handlers) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "API running 🎵"})
	})

	alumnos := r.Group("/alumnos")
	{
		alumnos.GET("", h.Alumnos.List)
		alumnos.GET("/:id", h.Alumnos.Get)
		alumnos.POST("", h.Alumnos.Create)
		alumnos.PUT("/:id", h.Alumnos.Update)
		alumnos.DELETE("/:id", h.Alumnos.Delete)
	}

	profesores := r.Group("/profesores")
	{
		profesores.GET("", h.Profesores.List)
		profesores.GET("/:id", h.Profesores.Get)
		profesores.POST("", h.Profesores.Create)
		profesores.PUT("/:id", h.Profesores.Update)
		profesores.DELETE("/:id", h.Profesores.Delete)
	}

	clases := r.Group("/clases")
	{
		clases.GET("", h.Clases.List)
		clases.GET("/:id", h.Clases.Get)
		clases.POST("", h.Clases.Create)
		clases.PUT("/:id", h.Clases.Update)
		clases.DELETE("/:id", h.Clases.Delete)
	}

	horarios := r.Group("/horarios")
	{
		horarios.GET("", h.Horarios.List)
		horarios.GET("/export", h.Horarios.Export)
		horarios.GET("/:id", h.Horarios.Get)
		horarios.POST("", h.Horarios.Create)
		horarios.PUT("/:id", h.Horarios.Update)
		horarios.DELETE("/:id", h.Horarios.Delete)
	}

	auth := r.Group("/auth")
	{
		auth.GET("/google", h.Auth.Google)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}

	r.GET("/weather/current/:city", h.Weather.Current)
}
