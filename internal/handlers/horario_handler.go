package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"escuela-backend/internal/models"
	"escuela-backend/internal/schedule"
	"escuela-backend/internal/store"
)

type HorarioHandler struct {
	Stores    store.Stores
	Validador *schedule.Validador
}

func NewHorarioHandler(s store.Stores) *HorarioHandler {
	return &HorarioHandler{Stores: s, Validador: &schedule.Validador{Stores: s}}
}

func (h *HorarioHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	rows, err := h.Stores.Horarios.FindAll(ctx)
	if err != nil {
		errorInterno(c, err)
		return
	}
	out, err := h.expandir(ctx, rows)
	if err != nil {
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *HorarioHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, "Horario no encontrado")
		return
	}
	ctx := c.Request.Context()
	row, err := h.Stores.Horarios.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNoEncontrado) {
			notFound(c, "Horario no encontrado")
			return
		}
		errorInterno(c, err)
		return
	}
	out, err := h.expandirUno(ctx, row)
	if err != nil {
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *HorarioHandler) Create(c *gin.Context) {
	var in schedule.Candidato
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "cuerpo de la petición inválido")
		return
	}
	ctx := c.Request.Context()
	nuevo, err := h.Validador.ValidarYPreparar(ctx, in, primitive.NilObjectID)
	if err != nil {
		h.abortValidacion(c, err)
		return
	}
	if err := h.Stores.Horarios.Insert(ctx, nuevo); err != nil {
		// Los índices únicos cierran la carrera validar-insertar.
		if errors.Is(err, store.ErrDuplicado) {
			c.JSON(http.StatusConflict, gin.H{"error": schedule.ErrConflicto.Error()})
			return
		}
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusCreated, nuevo)
}

func (h *HorarioHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, "Horario no encontrado")
		return
	}
	var in schedule.Candidato
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "cuerpo de la petición inválido")
		return
	}
	ctx := c.Request.Context()
	prep, err := h.Validador.ValidarYPreparar(ctx, in, id)
	if err != nil {
		h.abortValidacion(c, err)
		return
	}
	row, err := h.Stores.Horarios.Update(ctx, id, prep)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoEncontrado):
			notFound(c, "Horario no encontrado")
		case errors.Is(err, store.ErrDuplicado):
			c.JSON(http.StatusConflict, gin.H{"error": schedule.ErrConflicto.Error()})
		default:
			errorInterno(c, err)
		}
		return
	}
	out, err := h.expandirUno(ctx, row)
	if err != nil {
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *HorarioHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, "Horario no encontrado")
		return
	}
	row, err := h.Stores.Horarios.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNoEncontrado) {
			notFound(c, "Horario no encontrado")
			return
		}
		errorInterno(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *HorarioHandler) abortValidacion(c *gin.Context, err error) {
	var ev *schedule.ErrValidacion
	var er *schedule.ErrReferencia
	switch {
	case errors.As(err, &ev):
		badRequest(c, ev.Msg)
	case errors.As(err, &er):
		badRequest(c, er.Error())
	case errors.Is(err, schedule.ErrConflicto):
		c.JSON(http.StatusConflict, gin.H{"error": schedule.ErrConflicto.Error()})
	default:
		errorInterno(c, err)
	}
}

// expandir sustituye las referencias por los registros completos, en la
// forma en que list/get los devuelven al frontend.
func (h *HorarioHandler) expandir(ctx context.Context, rows []models.Horario) ([]models.HorarioExpandido, error) {
	clases, err := h.Stores.Clases.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	profesores, err := h.Stores.Profesores.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	alumnos, err := h.Stores.Alumnos.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	porClase := make(map[primitive.ObjectID]*models.Clase, len(clases))
	for i := range clases {
		porClase[clases[i].ID] = &clases[i]
	}
	porProfesor := make(map[primitive.ObjectID]*models.Profesor, len(profesores))
	for i := range profesores {
		porProfesor[profesores[i].ID] = &profesores[i]
	}
	porAlumno := make(map[primitive.ObjectID]*models.Alumno, len(alumnos))
	for i := range alumnos {
		porAlumno[alumnos[i].ID] = &alumnos[i]
	}

	out := make([]models.HorarioExpandido, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.HorarioExpandido{
			ID:         r.ID,
			Clase:      porClase[r.ClaseID],
			Profesor:   porProfesor[r.ProfesorID],
			Alumno:     porAlumno[r.AlumnoID],
			DiaSemana:  r.DiaSemana,
			HoraInicio: r.HoraInicio,
			HoraFin:    r.HoraFin,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
		})
	}
	return out, nil
}

func (h *HorarioHandler) expandirUno(ctx context.Context, r *models.Horario) (*models.HorarioExpandido, error) {
	out := models.HorarioExpandido{
		ID:         r.ID,
		DiaSemana:  r.DiaSemana,
		HoraInicio: r.HoraInicio,
		HoraFin:    r.HoraFin,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	var err error
	if out.Clase, err = h.Stores.Clases.FindByID(ctx, r.ClaseID); err != nil && !errors.Is(err, store.ErrNoEncontrado) {
		return nil, err
	}
	if out.Profesor, err = h.Stores.Profesores.FindByID(ctx, r.ProfesorID); err != nil && !errors.Is(err, store.ErrNoEncontrado) {
		return nil, err
	}
	if out.Alumno, err = h.Stores.Alumnos.FindByID(ctx, r.AlumnoID); err != nil && !errors.Is(err, store.ErrNoEncontrado) {
		return nil, err
	}
	return &out, nil
}
