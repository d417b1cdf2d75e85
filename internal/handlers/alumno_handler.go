package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"escuela-backend/internal/models"
	"escuela-backend/internal/store"
)

type AlumnoHandler struct {
	Alumnos  store.AlumnoStore
	Horarios store.HorarioStore
}

func NewAlumnoHandler(s store.Stores) *AlumnoHandler {
	return &AlumnoHandler{Alumnos: s.Alumnos, Horarios: s.Horarios}
}

type alumnoInput struct {
	Nombre string `json:"nombre"`
	Edad   *int   `json:"edad"`
}

func (in *alumnoInput) validar() string {
	if in.Nombre == "" {
		return "nombre es obligatorio"
	}
	if in.Edad != nil && *in.Edad < 0 {
		return "edad inválida"
	}
	return ""
}

func (h *AlumnoHandler) List(c *gin.Context) {
	rows, err := h.Alumnos.FindAll(c.Request.Context())
	if err != nil {
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *AlumnoHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, "Alumno no encontrado")
		return
	}
	a, err := h.Alumnos.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNoEncontrado) {
			notFound(c, "Alumno no encontrado")
			return
		}
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AlumnoHandler) Create(c *gin.Context) {
	var in alumnoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "cuerpo de la petición inválido")
		return
	}
	if msg := in.validar(); msg != "" {
		badRequest(c, msg)
		return
	}
	now := time.Now().UTC()
	a := models.Alumno{Nombre: in.Nombre, Edad: in.Edad, CreatedAt: now, UpdatedAt: now}
	if err := h.Alumnos.Insert(c.Request.Context(), &a); err != nil {
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AlumnoHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, "Alumno no encontrado")
		return
	}
	var in alumnoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "cuerpo de la petición inválido")
		return
	}
	if msg := in.validar(); msg != "" {
		badRequest(c, msg)
		return
	}
	a := models.Alumno{Nombre: in.Nombre, Edad: in.Edad, UpdatedAt: time.Now().UTC()}
	out, err := h.Alumnos.Update(c.Request.Context(), id, &a)
	if err != nil {
		if errors.Is(err, store.ErrNoEncontrado) {
			notFound(c, "Alumno no encontrado")
			return
		}
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AlumnoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, "Alumno no encontrado")
		return
	}
	ctx := c.Request.Context()
	enUso, err := h.Horarios.ReferenciaEnUso(ctx, store.CampoAlumno, id)
	if err != nil {
		errorInterno(c, err)
		return
	}
	if enUso {
		c.JSON(http.StatusConflict, gin.H{"error": "No se puede eliminar: el alumno tiene horarios asignados"})
		return
	}
	a, err := h.Alumnos.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNoEncontrado) {
			notFound(c, "Alumno no encontrado")
			return
		}
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
