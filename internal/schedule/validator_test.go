package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"escuela-backend/internal/models"
	"escuela-backend/internal/schedule"
	"escuela-backend/internal/store"
)

type entorno struct {
	stores   store.Stores
	espia    *horarioEspia
	clase    models.Clase
	profesor models.Profesor
	alumno   models.Alumno
}

// horarioEspia cuenta las búsquedas de conflicto para comprobar que no
// se consultan cuando una referencia ya ha fallado.
type horarioEspia struct {
	store.HorarioStore
	busquedas int
}

func (e *horarioEspia) BuscarConflicto(ctx context.Context, q store.ConflictoQuery) (*models.Horario, error) {
	e.busquedas++
	return e.HorarioStore.BuscarConflicto(ctx, q)
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	ctx := context.Background()
	s := store.NewMemoryStores()
	espia := &horarioEspia{HorarioStore: s.Horarios}
	s.Horarios = espia

	e := &entorno{stores: s, espia: espia}
	e.clase = models.Clase{Nombre: "Guitarra", Descripcion: "Guitarra clásica"}
	require.NoError(t, s.Clases.Insert(ctx, &e.clase))
	e.profesor = models.Profesor{Nombre: "Marta", Especialidad: "Guitarra"}
	require.NoError(t, s.Profesores.Insert(ctx, &e.profesor))
	edad := 12
	e.alumno = models.Alumno{Nombre: "Lucía", Edad: &edad}
	require.NoError(t, s.Alumnos.Insert(ctx, &e.alumno))
	return e
}

func (e *entorno) candidato() schedule.Candidato {
	return schedule.Candidato{
		ClaseID:    e.clase.ID.Hex(),
		ProfesorID: e.profesor.ID.Hex(),
		AlumnoID:   e.alumno.ID.Hex(),
		DiaSemana:  "Lunes",
		HoraInicio: "10:00",
		HoraFin:    "11:00",
	}
}

func (e *entorno) validador() *schedule.Validador {
	return &schedule.Validador{Stores: e.stores}
}

func TestCamposObligatorios(t *testing.T) {
	e := nuevoEntorno(t)
	base := e.candidato()

	casos := map[string]func(*schedule.Candidato){
		"clase_id":    func(c *schedule.Candidato) { c.ClaseID = "" },
		"profesor_id": func(c *schedule.Candidato) { c.ProfesorID = "" },
		"alumno_id":   func(c *schedule.Candidato) { c.AlumnoID = "" },
		"dia_semana":  func(c *schedule.Candidato) { c.DiaSemana = "" },
		"hora_inicio": func(c *schedule.Candidato) { c.HoraInicio = "" },
		"hora_fin":    func(c *schedule.Candidato) { c.HoraFin = "" },
	}
	for nombre, vaciar := range casos {
		t.Run(nombre, func(t *testing.T) {
			c := base
			vaciar(&c)
			_, err := e.validador().ValidarYPreparar(context.Background(), c, primitive.NilObjectID)
			var ev *schedule.ErrValidacion
			require.ErrorAs(t, err, &ev)
		})
	}
}

func TestTramoHorarioInvertido(t *testing.T) {
	e := nuevoEntorno(t)

	for _, caso := range []struct{ inicio, fin string }{
		{"09:00", "08:00"},
		{"10:00", "10:00"},
	} {
		c := e.candidato()
		c.HoraInicio = caso.inicio
		c.HoraFin = caso.fin
		_, err := e.validador().ValidarYPreparar(context.Background(), c, primitive.NilObjectID)
		var ev *schedule.ErrValidacion
		require.ErrorAs(t, err, &ev)
		assert.Equal(t, "hora_inicio debe ser menor que hora_fin", ev.Msg)
	}
}

func TestReferenciasInexistentes(t *testing.T) {
	e := nuevoEntorno(t)

	casos := map[string]func(*schedule.Candidato){
		"clase_id":    func(c *schedule.Candidato) { c.ClaseID = primitive.NewObjectID().Hex() },
		"profesor_id": func(c *schedule.Candidato) { c.ProfesorID = primitive.NewObjectID().Hex() },
		"alumno_id":   func(c *schedule.Candidato) { c.AlumnoID = primitive.NewObjectID().Hex() },
	}
	for campo, cambiar := range casos {
		t.Run(campo, func(t *testing.T) {
			c := e.candidato()
			cambiar(&c)
			_, err := e.validador().ValidarYPreparar(context.Background(), c, primitive.NilObjectID)
			var er *schedule.ErrReferencia
			require.ErrorAs(t, err, &er)
			assert.Equal(t, campo, er.Campo)
		})
	}

	// Con una referencia rota no llega a consultarse el conflicto.
	assert.Zero(t, e.espia.busquedas)
}

func TestIDMalformadoEsReferenciaRota(t *testing.T) {
	e := nuevoEntorno(t)
	c := e.candidato()
	c.ProfesorID = "no-es-un-objectid"
	_, err := e.validador().ValidarYPreparar(context.Background(), c, primitive.NilObjectID)
	var er *schedule.ErrReferencia
	require.ErrorAs(t, err, &er)
	assert.Equal(t, "profesor_id", er.Campo)
}

func TestConflictoPorProfesor(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	otro := models.Alumno{Nombre: "Pedro"}
	require.NoError(t, e.stores.Alumnos.Insert(ctx, &otro))

	existente, err := e.validador().ValidarYPreparar(ctx, e.candidato(), primitive.NilObjectID)
	require.NoError(t, err)
	require.NoError(t, e.stores.Horarios.Insert(ctx, existente))

	// Mismo profesor, mismo día y hora de inicio, alumno distinto y
	// hora de fin distinta: sigue siendo conflicto.
	c := e.candidato()
	c.AlumnoID = otro.ID.Hex()
	c.HoraFin = "11:30"
	_, err = e.validador().ValidarYPreparar(ctx, c, primitive.NilObjectID)
	assert.ErrorIs(t, err, schedule.ErrConflicto)
}

func TestConflictoPorAlumno(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	otro := models.Profesor{Nombre: "Julia", Especialidad: "Piano"}
	require.NoError(t, e.stores.Profesores.Insert(ctx, &otro))

	existente, err := e.validador().ValidarYPreparar(ctx, e.candidato(), primitive.NilObjectID)
	require.NoError(t, err)
	require.NoError(t, e.stores.Horarios.Insert(ctx, existente))

	c := e.candidato()
	c.ProfesorID = otro.ID.Hex()
	_, err = e.validador().ValidarYPreparar(ctx, c, primitive.NilObjectID)
	assert.ErrorIs(t, err, schedule.ErrConflicto)
}

func TestActualizarseASiMismoNoChoca(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	existente, err := e.validador().ValidarYPreparar(ctx, e.candidato(), primitive.NilObjectID)
	require.NoError(t, err)
	require.NoError(t, e.stores.Horarios.Insert(ctx, existente))

	// Revalidar los mismos valores excluyendo al propio registro.
	prep, err := e.validador().ValidarYPreparar(ctx, e.candidato(), existente.ID)
	require.NoError(t, err)
	assert.Equal(t, existente.ProfesorID, prep.ProfesorID)
}

func TestSinFalsoPositivo(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	existente, err := e.validador().ValidarYPreparar(ctx, e.candidato(), primitive.NilObjectID)
	require.NoError(t, err)
	require.NoError(t, e.stores.Horarios.Insert(ctx, existente))

	otroProfesor := models.Profesor{Nombre: "Julia", Especialidad: "Piano"}
	require.NoError(t, e.stores.Profesores.Insert(ctx, &otroProfesor))
	otroAlumno := models.Alumno{Nombre: "Pedro"}
	require.NoError(t, e.stores.Alumnos.Insert(ctx, &otroAlumno))

	// Mismo día y hora pero sin compartir profesor ni alumno.
	c := e.candidato()
	c.ProfesorID = otroProfesor.ID.Hex()
	c.AlumnoID = otroAlumno.ID.Hex()
	prep, err := e.validador().ValidarYPreparar(ctx, c, primitive.NilObjectID)
	require.NoError(t, err)
	require.NoError(t, e.stores.Horarios.Insert(ctx, prep))
}

func TestInicioDistintoNoChoca(t *testing.T) {
	// La detección compara igualdad exacta de hora_inicio, no solape de
	// tramos: 10:00-11:00 y 10:30-11:30 conviven.
	e := nuevoEntorno(t)
	ctx := context.Background()

	existente, err := e.validador().ValidarYPreparar(ctx, e.candidato(), primitive.NilObjectID)
	require.NoError(t, err)
	require.NoError(t, e.stores.Horarios.Insert(ctx, existente))

	c := e.candidato()
	c.HoraInicio = "10:30"
	c.HoraFin = "11:30"
	_, err = e.validador().ValidarYPreparar(ctx, c, primitive.NilObjectID)
	require.NoError(t, err)
}

func TestPreparaTimestamps(t *testing.T) {
	e := nuevoEntorno(t)
	antes := time.Now().UTC().Add(-time.Second)
	prep, err := e.validador().ValidarYPreparar(context.Background(), e.candidato(), primitive.NilObjectID)
	require.NoError(t, err)
	assert.True(t, prep.CreatedAt.After(antes))
	assert.Equal(t, prep.CreatedAt, prep.UpdatedAt)
}
