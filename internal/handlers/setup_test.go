package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"escuela-backend/internal/config"
	"escuela-backend/internal/handlers"
	"escuela-backend/internal/routes"
	"escuela-backend/internal/store"
	"escuela-backend/internal/weather"
)

func testConfig() config.Config {
	return config.Config{
		GoogleClientID:    "client-demo",
		GoogleRedirectURI: "http://localhost:3000/auth/google/callback",
		FrontendURL:       "http://localhost:5174",
		DemoUser: config.DemoUser{
			ID:     "1",
			Nombre: "Usuario Demo",
			Email:  "demo@example.com",
			Foto:   "https://example.com/foto.png",
		},
	}
}

// newTestServer levanta el router completo sobre almacenes en memoria.
func newTestServer(t *testing.T) (*gin.Engine, store.Stores) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stores := store.NewMemoryStores()
	cfg := testConfig()

	r := gin.New()
	routes.Setup(r, routes.Handlers{
		Alumnos:    handlers.NewAlumnoHandler(stores),
		Profesores: handlers.NewProfesorHandler(stores),
		Clases:     handlers.NewClaseHandler(stores),
		Horarios:   handlers.NewHorarioHandler(stores),
		Auth:       handlers.NewAuthHandler(cfg),
		Weather:    handlers.NewWeatherHandler(weather.NewClient("", "", nil)),
	})
	return r, stores
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, resp *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

// crearBase da de alta una clase, un profesor y un alumno y devuelve
// sus ids.
func crearBase(t *testing.T, r *gin.Engine) (claseID, profesorID, alumnoID string) {
	t.Helper()

	resp := doJSON(t, r, http.MethodPost, "/clases", gin.H{"nombre": "Guitarra", "descripcion": "Guitarra clásica"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	claseID = decode(t, resp)["id"].(string)

	resp = doJSON(t, r, http.MethodPost, "/profesores", gin.H{"nombre": "Marta", "especialidad": "Guitarra"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	profesorID = decode(t, resp)["id"].(string)

	resp = doJSON(t, r, http.MethodPost, "/alumnos", gin.H{"nombre": "Lucía", "edad": 12})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	alumnoID = decode(t, resp)["id"].(string)
	return
}

func nuevoHorario(claseID, profesorID, alumnoID, dia, inicio, fin string) gin.H {
	return gin.H{
		"clase_id":    claseID,
		"profesor_id": profesorID,
		"alumno_id":   alumnoID,
		"dia_semana":  dia,
		"hora_inicio": inicio,
		"hora_fin":    fin,
	}
}
