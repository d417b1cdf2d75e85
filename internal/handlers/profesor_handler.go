package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"escuela-backend/internal/models"
	"escuela-backend/internal/store"
)

type ProfesorHandler struct {
	Profesores store.ProfesorStore
	Horarios   store.HorarioStore
}

func NewProfesorHandler(s store.Stores) *ProfesorHandler {
	return &ProfesorHandler{Profesores: s.Profesores, Horarios: s.Horarios}
}

type profesorInput struct {
	Nombre       string `json:"nombre"`
	Especialidad string `json:"especialidad"`
}

func (in *profesorInput) validar() string {
	if in.Nombre == "" || in.Especialidad == "" {
		return "nombre y especialidad son obligatorios"
	}
	return ""
}

func (h *ProfesorHandler) List(c *gin.Context) {
	rows, err := h.Profesores.FindAll(c.Request.Context())
	if err != nil {
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ProfesorHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, "Profesor no encontrado")
		return
	}
	p, err := h.Profesores.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNoEncontrado) {
			notFound(c, "Profesor no encontrado")
			return
		}
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfesorHandler) Create(c *gin.Context) {
	var in profesorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "cuerpo de la petición inválido")
		return
	}
	if msg := in.validar(); msg != "" {
		badRequest(c, msg)
		return
	}
	now := time.Now().UTC()
	p := models.Profesor{Nombre: in.Nombre, Especialidad: in.Especialidad, CreatedAt: now, UpdatedAt: now}
	if err := h.Profesores.Insert(c.Request.Context(), &p); err != nil {
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProfesorHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, "Profesor no encontrado")
		return
	}
	var in profesorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "cuerpo de la petición inválido")
		return
	}
	if msg := in.validar(); msg != "" {
		badRequest(c, msg)
		return
	}
	p := models.Profesor{Nombre: in.Nombre, Especialidad: in.Especialidad, UpdatedAt: time.Now().UTC()}
	out, err := h.Profesores.Update(c.Request.Context(), id, &p)
	if err != nil {
		if errors.Is(err, store.ErrNoEncontrado) {
			notFound(c, "Profesor no encontrado")
			return
		}
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProfesorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, "Profesor no encontrado")
		return
	}
	ctx := c.Request.Context()
	enUso, err := h.Horarios.ReferenciaEnUso(ctx, store.CampoProfesor, id)
	if err != nil {
		errorInterno(c, err)
		return
	}
	if enUso {
		c.JSON(http.StatusConflict, gin.H{"error": "No se puede eliminar: el profesor tiene horarios asignados"})
		return
	}
	p, err := h.Profesores.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNoEncontrado) {
			notFound(c, "Profesor no encontrado")
			return
		}
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
