package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCrearHorarioYConflicto(t *testing.T) {
	r, _ := newTestServer(t)
	claseID, profesorID, alumnoID := crearBase(t, r)

	resp := doJSON(t, r, http.MethodPost, "/horarios",
		nuevoHorario(claseID, profesorID, alumnoID, "Lunes", "10:00", "11:00"))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	// Mismo profesor y alumno en el mismo hueco, aunque la hora de fin
	// cambie: conflicto.
	resp = doJSON(t, r, http.MethodPost, "/horarios",
		nuevoHorario(claseID, profesorID, alumnoID, "Lunes", "10:00", "11:30"))
	require.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "Conflicto de horario detectado", decode(t, resp)["error"])
}

func TestCrearHorarioReferenciaRota(t *testing.T) {
	r, _ := newTestServer(t)
	claseID, _, alumnoID := crearBase(t, r)

	resp := doJSON(t, r, http.MethodPost, "/horarios",
		nuevoHorario(claseID, primitive.NewObjectID().Hex(), alumnoID, "Lunes", "10:00", "11:00"))
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "profesor_id no existe", decode(t, resp)["error"])

	// No se ha creado nada.
	resp = doJSON(t, r, http.MethodGet, "/horarios", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decodeList(t, resp))
}

func TestCrearHorarioTramoInvertido(t *testing.T) {
	r, _ := newTestServer(t)
	claseID, profesorID, alumnoID := crearBase(t, r)

	resp := doJSON(t, r, http.MethodPost, "/horarios",
		nuevoHorario(claseID, profesorID, alumnoID, "Lunes", "09:00", "08:00"))
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "hora_inicio debe ser menor que hora_fin", decode(t, resp)["error"])
}

func TestCrearHorarioCamposAusentes(t *testing.T) {
	r, _ := newTestServer(t)
	claseID, profesorID, _ := crearBase(t, r)

	cuerpo := nuevoHorario(claseID, profesorID, "", "Lunes", "10:00", "11:00")
	resp := doJSON(t, r, http.MethodPost, "/horarios", cuerpo)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, decode(t, resp)["error"], "son obligatorios")
}

func TestDistintosProfesoresYAlumnosNoChocan(t *testing.T) {
	r, _ := newTestServer(t)
	claseID, profesorID, alumnoID := crearBase(t, r)

	resp := doJSON(t, r, http.MethodPost, "/profesores", map[string]any{"nombre": "Julia", "especialidad": "Piano"})
	require.Equal(t, http.StatusCreated, resp.Code)
	profesor2 := decode(t, resp)["id"].(string)
	resp = doJSON(t, r, http.MethodPost, "/alumnos", map[string]any{"nombre": "Pedro", "edad": 9})
	require.Equal(t, http.StatusCreated, resp.Code)
	alumno2 := decode(t, resp)["id"].(string)

	resp = doJSON(t, r, http.MethodPost, "/horarios",
		nuevoHorario(claseID, profesorID, alumnoID, "Martes", "17:00", "18:00"))
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(t, r, http.MethodPost, "/horarios",
		nuevoHorario(claseID, profesor2, alumno2, "Martes", "17:00", "18:00"))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
}

func TestListadoExpandido(t *testing.T) {
	r, _ := newTestServer(t)
	claseID, profesorID, alumnoID := crearBase(t, r)

	resp := doJSON(t, r, http.MethodPost, "/horarios",
		nuevoHorario(claseID, profesorID, alumnoID, "Lunes", "10:00", "11:00"))
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(t, r, http.MethodGet, "/horarios", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	lista := decodeList(t, resp)
	require.Len(t, lista, 1)

	clase, ok := lista[0]["clase_id"].(map[string]any)
	require.True(t, ok, "clase_id debe venir expandida")
	assert.Equal(t, "Guitarra", clase["nombre"])
	profesor := lista[0]["profesor_id"].(map[string]any)
	assert.Equal(t, "Marta", profesor["nombre"])
	alumno := lista[0]["alumno_id"].(map[string]any)
	assert.Equal(t, "Lucía", alumno["nombre"])
}

func TestActualizarHorario(t *testing.T) {
	r, _ := newTestServer(t)
	claseID, profesorID, alumnoID := crearBase(t, r)

	resp := doJSON(t, r, http.MethodPost, "/horarios",
		nuevoHorario(claseID, profesorID, alumnoID, "Lunes", "10:00", "11:00"))
	require.Equal(t, http.StatusCreated, resp.Code)
	id := decode(t, resp)["id"].(string)

	// Reenviar los mismos valores no choca consigo mismo.
	resp = doJSON(t, r, http.MethodPut, "/horarios/"+id,
		nuevoHorario(claseID, profesorID, alumnoID, "Lunes", "10:00", "11:00"))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	// Mover el hueco y comprobar que la respuesta viene expandida.
	resp = doJSON(t, r, http.MethodPut, "/horarios/"+id,
		nuevoHorario(claseID, profesorID, alumnoID, "Miércoles", "12:00", "13:00"))
	require.Equal(t, http.StatusOK, resp.Code)
	out := decode(t, resp)
	assert.Equal(t, "Miércoles", out["dia_semana"])
	clase := out["clase_id"].(map[string]any)
	assert.Equal(t, "Guitarra", clase["nombre"])
}

func TestActualizarHorarioConConflicto(t *testing.T) {
	r, _ := newTestServer(t)
	claseID, profesorID, alumnoID := crearBase(t, r)

	resp := doJSON(t, r, http.MethodPost, "/horarios",
		nuevoHorario(claseID, profesorID, alumnoID, "Lunes", "10:00", "11:00"))
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(t, r, http.MethodPost, "/horarios",
		nuevoHorario(claseID, profesorID, alumnoID, "Lunes", "12:00", "13:00"))
	require.Equal(t, http.StatusCreated, resp.Code)
	segundo := decode(t, resp)["id"].(string)

	resp = doJSON(t, r, http.MethodPut, "/horarios/"+segundo,
		nuevoHorario(claseID, profesorID, alumnoID, "Lunes", "10:00", "11:00"))
	require.Equal(t, http.StatusConflict, resp.Code)
}

func TestActualizarHorarioInexistente(t *testing.T) {
	r, _ := newTestServer(t)
	claseID, profesorID, alumnoID := crearBase(t, r)

	resp := doJSON(t, r, http.MethodPut, "/horarios/"+primitive.NewObjectID().Hex(),
		nuevoHorario(claseID, profesorID, alumnoID, "Lunes", "10:00", "11:00"))
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Horario no encontrado", decode(t, resp)["error"])
}

func TestGetYDeleteHorario(t *testing.T) {
	r, _ := newTestServer(t)
	claseID, profesorID, alumnoID := crearBase(t, r)

	resp := doJSON(t, r, http.MethodPost, "/horarios",
		nuevoHorario(claseID, profesorID, alumnoID, "Viernes", "16:00", "17:00"))
	require.Equal(t, http.StatusCreated, resp.Code)
	id := decode(t, resp)["id"].(string)

	resp = doJSON(t, r, http.MethodGet, "/horarios/"+id, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Viernes", decode(t, resp)["dia_semana"])

	resp = doJSON(t, r, http.MethodDelete, "/horarios/"+id, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, id, decode(t, resp)["id"])

	resp = doJSON(t, r, http.MethodGet, "/horarios/"+id, nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHorarioInexistente(t *testing.T) {
	r, _ := newTestServer(t)

	resp := doJSON(t, r, http.MethodGet, "/horarios/"+primitive.NewObjectID().Hex(), nil)
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = doJSON(t, r, http.MethodDelete, "/horarios/"+primitive.NewObjectID().Hex(), nil)
	require.Equal(t, http.StatusNotFound, resp.Code)

	// Un id que ni siquiera es hex tampoco es un error de servidor.
	resp = doJSON(t, r, http.MethodDelete, "/horarios/abc", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestExportarHorarios(t *testing.T) {
	r, _ := newTestServer(t)
	claseID, profesorID, alumnoID := crearBase(t, r)

	resp := doJSON(t, r, http.MethodPost, "/horarios",
		nuevoHorario(claseID, profesorID, alumnoID, "Lunes", "10:00", "11:00"))
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(t, r, http.MethodGet, "/horarios/export", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header().Get("Content-Type"))
	assert.NotZero(t, resp.Body.Len())
}
