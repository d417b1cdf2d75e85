package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"escuela-backend/internal/models"
	"escuela-backend/internal/store"
)

type ClaseHandler struct {
	Clases   store.ClaseStore
	Horarios store.HorarioStore
}

func NewClaseHandler(s store.Stores) *ClaseHandler {
	return &ClaseHandler{Clases: s.Clases, Horarios: s.Horarios}
}

type claseInput struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

func (in *claseInput) validar() string {
	if in.Nombre == "" || in.Descripcion == "" {
		return "nombre y descripcion son obligatorios"
	}
	return ""
}

func (h *ClaseHandler) List(c *gin.Context) {
	rows, err := h.Clases.FindAll(c.Request.Context())
	if err != nil {
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ClaseHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, "Clase no encontrada")
		return
	}
	cl, err := h.Clases.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNoEncontrado) {
			notFound(c, "Clase no encontrada")
			return
		}
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

func (h *ClaseHandler) Create(c *gin.Context) {
	var in claseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "cuerpo de la petición inválido")
		return
	}
	if msg := in.validar(); msg != "" {
		badRequest(c, msg)
		return
	}
	now := time.Now().UTC()
	cl := models.Clase{Nombre: in.Nombre, Descripcion: in.Descripcion, CreatedAt: now, UpdatedAt: now}
	if err := h.Clases.Insert(c.Request.Context(), &cl); err != nil {
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusCreated, cl)
}

func (h *ClaseHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, "Clase no encontrada")
		return
	}
	var in claseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "cuerpo de la petición inválido")
		return
	}
	if msg := in.validar(); msg != "" {
		badRequest(c, msg)
		return
	}
	cl := models.Clase{Nombre: in.Nombre, Descripcion: in.Descripcion, UpdatedAt: time.Now().UTC()}
	out, err := h.Clases.Update(c.Request.Context(), id, &cl)
	if err != nil {
		if errors.Is(err, store.ErrNoEncontrado) {
			notFound(c, "Clase no encontrada")
			return
		}
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ClaseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, "Clase no encontrada")
		return
	}
	ctx := c.Request.Context()
	enUso, err := h.Horarios.ReferenciaEnUso(ctx, store.CampoClase, id)
	if err != nil {
		errorInterno(c, err)
		return
	}
	if enUso {
		c.JSON(http.StatusConflict, gin.H{"error": "No se puede eliminar: la clase tiene horarios asignados"})
		return
	}
	cl, err := h.Clases.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNoEncontrado) {
			notFound(c, "Clase no encontrada")
			return
		}
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}
