package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"escuela-backend/internal/models"
)

var (
	// ErrNoEncontrado lo devuelve cualquier operación cuyo id no
	// corresponde a ningún registro.
	ErrNoEncontrado = errors.New("registro no encontrado")

	// ErrDuplicado lo devuelven Insert/Update de horarios cuando la
	// escritura viola los índices únicos de no-doble-reserva.
	ErrDuplicado = errors.New("registro duplicado")
)

// Campos de referencia de un horario, tal como se llaman en el documento.
const (
	CampoClase    = "clase_id"
	CampoProfesor = "profesor_id"
	CampoAlumno   = "alumno_id"
)

type AlumnoStore interface {
	FindAll(ctx context.Context) ([]models.Alumno, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Alumno, error)
	Insert(ctx context.Context, a *models.Alumno) error
	Update(ctx context.Context, id primitive.ObjectID, a *models.Alumno) (*models.Alumno, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Alumno, error)
}

type ProfesorStore interface {
	FindAll(ctx context.Context) ([]models.Profesor, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Profesor, error)
	Insert(ctx context.Context, p *models.Profesor) error
	Update(ctx context.Context, id primitive.ObjectID, p *models.Profesor) (*models.Profesor, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Profesor, error)
}

type ClaseStore interface {
	FindAll(ctx context.Context) ([]models.Clase, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Clase, error)
	Insert(ctx context.Context, cl *models.Clase) error
	Update(ctx context.Context, id primitive.ObjectID, cl *models.Clase) (*models.Clase, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Clase, error)
}

// ConflictoQuery describe la búsqueda de doble reserva: mismo día y
// misma hora de inicio, compartiendo profesor o alumno. Excluir deja
// fuera al propio registro durante un update.
type ConflictoQuery struct {
	ProfesorID primitive.ObjectID
	AlumnoID   primitive.ObjectID
	DiaSemana  string
	HoraInicio string
	Excluir    primitive.ObjectID
}

type HorarioStore interface {
	FindAll(ctx context.Context) ([]models.Horario, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Horario, error)
	Insert(ctx context.Context, h *models.Horario) error
	Update(ctx context.Context, id primitive.ObjectID, h *models.Horario) (*models.Horario, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Horario, error)

	// BuscarConflicto devuelve un horario que choca con la consulta,
	// o nil si no hay ninguno.
	BuscarConflicto(ctx context.Context, q ConflictoQuery) (*models.Horario, error)

	// ReferenciaEnUso indica si algún horario referencia el id dado en
	// el campo dado (CampoClase, CampoProfesor o CampoAlumno).
	ReferenciaEnUso(ctx context.Context, campo string, id primitive.ObjectID) (bool, error)
}

// Stores agrupa los cuatro almacenes que se inyectan en los handlers.
type Stores struct {
	Alumnos    AlumnoStore
	Profesores ProfesorStore
	Clases     ClaseStore
	Horarios   HorarioStore
}
