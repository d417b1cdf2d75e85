// Package schedule contiene la validación de horarios: integridad
// referencial y detección de dobles reservas antes de persistir.
package schedule

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"escuela-backend/internal/models"
	"escuela-backend/internal/store"
)

// ErrConflicto indica una doble reserva: otro horario ya ocupa el mismo
// día y hora de inicio con el mismo profesor o el mismo alumno.
var ErrConflicto = errors.New("Conflicto de horario detectado")

// ErrValidacion es una entrada malformada: campos ausentes o un tramo
// horario invertido.
type ErrValidacion struct {
	Msg string
}

func (e *ErrValidacion) Error() string { return e.Msg }

// ErrReferencia es una referencia a un registro que no existe.
type ErrReferencia struct {
	Campo string
}

func (e *ErrReferencia) Error() string { return e.Campo + " no existe" }

// Candidato es un horario propuesto, con las referencias todavía en
// forma de id hexadecimal tal como llegan en la petición.
type Candidato struct {
	ClaseID    string `json:"clase_id"`
	ProfesorID string `json:"profesor_id"`
	AlumnoID   string `json:"alumno_id"`
	DiaSemana  string `json:"dia_semana"`
	HoraInicio string `json:"hora_inicio"`
	HoraFin    string `json:"hora_fin"`
}

// Validador es la puerta previa a toda escritura de horarios. No
// escribe nada: solo consulta los almacenes y devuelve el horario listo
// para persistir o el primer error encontrado.
type Validador struct {
	Stores store.Stores
}

// ValidarYPreparar aplica las comprobaciones en orden, cortando en la
// primera que falla: presencia de campos, hora_inicio < hora_fin,
// existencia de clase/profesor/alumno y búsqueda de conflicto. En un
// update, excluir identifica al propio registro para que no choque
// consigo mismo; en un create se pasa primitive.NilObjectID.
func (v *Validador) ValidarYPreparar(ctx context.Context, c Candidato, excluir primitive.ObjectID) (*models.Horario, error) {
	if c.ClaseID == "" || c.ProfesorID == "" || c.AlumnoID == "" ||
		c.DiaSemana == "" || c.HoraInicio == "" || c.HoraFin == "" {
		return nil, &ErrValidacion{Msg: "clase_id, profesor_id, alumno_id, dia_semana, hora_inicio y hora_fin son obligatorios"}
	}

	// Las horas son HH:MM con cero inicial, así que el orden de bytes
	// coincide con el orden temporal.
	if c.HoraInicio >= c.HoraFin {
		return nil, &ErrValidacion{Msg: "hora_inicio debe ser menor que hora_fin"}
	}

	// Un id que ni siquiera es un ObjectID válido no puede nombrar a
	// ningún registro, se trata igual que una referencia inexistente.
	claseID, err := primitive.ObjectIDFromHex(c.ClaseID)
	if err != nil {
		return nil, &ErrReferencia{Campo: "clase_id"}
	}
	profesorID, err := primitive.ObjectIDFromHex(c.ProfesorID)
	if err != nil {
		return nil, &ErrReferencia{Campo: "profesor_id"}
	}
	alumnoID, err := primitive.ObjectIDFromHex(c.AlumnoID)
	if err != nil {
		return nil, &ErrReferencia{Campo: "alumno_id"}
	}

	if _, err := v.Stores.Clases.FindByID(ctx, claseID); err != nil {
		return nil, refErr(err, "clase_id")
	}
	if _, err := v.Stores.Profesores.FindByID(ctx, profesorID); err != nil {
		return nil, refErr(err, "profesor_id")
	}
	if _, err := v.Stores.Alumnos.FindByID(ctx, alumnoID); err != nil {
		return nil, refErr(err, "alumno_id")
	}

	// La búsqueda de conflicto va después de las comprobaciones de
	// existencia para observar un estado al menos igual de fresco.
	choque, err := v.Stores.Horarios.BuscarConflicto(ctx, store.ConflictoQuery{
		ProfesorID: profesorID,
		AlumnoID:   alumnoID,
		DiaSemana:  c.DiaSemana,
		HoraInicio: c.HoraInicio,
		Excluir:    excluir,
	})
	if err != nil {
		return nil, err
	}
	if choque != nil {
		return nil, ErrConflicto
	}

	now := time.Now().UTC()
	return &models.Horario{
		ClaseID:    claseID,
		ProfesorID: profesorID,
		AlumnoID:   alumnoID,
		DiaSemana:  c.DiaSemana,
		HoraInicio: c.HoraInicio,
		HoraFin:    c.HoraFin,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func refErr(err error, campo string) error {
	if errors.Is(err, store.ErrNoEncontrado) {
		return &ErrReferencia{Campo: campo}
	}
	return err
}
