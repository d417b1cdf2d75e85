package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"escuela-backend/internal/models"
)

// NewMemoryStores construye los cuatro almacenes en memoria. Se usan en
// los tests y al arrancar el servidor con -mem, sin Mongo de por medio.
// MemHorarios aplica bajo su mutex la misma unicidad que los índices de
// Mongo, así que dos inserciones concurrentes del mismo hueco no pueden
// colarse las dos.
func NewMemoryStores() Stores {
	return Stores{
		Alumnos:    &MemAlumnos{rows: map[primitive.ObjectID]models.Alumno{}},
		Profesores: &MemProfesores{rows: map[primitive.ObjectID]models.Profesor{}},
		Clases:     &MemClases{rows: map[primitive.ObjectID]models.Clase{}},
		Horarios:   &MemHorarios{rows: map[primitive.ObjectID]models.Horario{}},
	}
}

type MemAlumnos struct {
	mu   sync.RWMutex
	rows map[primitive.ObjectID]models.Alumno
}

func (s *MemAlumnos) FindAll(_ context.Context) ([]models.Alumno, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Alumno, 0, len(s.rows))
	for _, a := range s.rows {
		out = append(out, a)
	}
	return out, nil
}

func (s *MemAlumnos) FindByID(_ context.Context, id primitive.ObjectID) (*models.Alumno, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.rows[id]
	if !ok {
		return nil, ErrNoEncontrado
	}
	return &a, nil
}

func (s *MemAlumnos) Insert(_ context.Context, a *models.Alumno) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	s.rows[a.ID] = *a
	return nil
}

func (s *MemAlumnos) Update(_ context.Context, id primitive.ObjectID, a *models.Alumno) (*models.Alumno, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.rows[id]
	if !ok {
		return nil, ErrNoEncontrado
	}
	cur.Nombre = a.Nombre
	cur.Edad = a.Edad
	cur.UpdatedAt = a.UpdatedAt
	s.rows[id] = cur
	return &cur, nil
}

func (s *MemAlumnos) Delete(_ context.Context, id primitive.ObjectID) (*models.Alumno, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.rows[id]
	if !ok {
		return nil, ErrNoEncontrado
	}
	delete(s.rows, id)
	return &a, nil
}

type MemProfesores struct {
	mu   sync.RWMutex
	rows map[primitive.ObjectID]models.Profesor
}

func (s *MemProfesores) FindAll(_ context.Context) ([]models.Profesor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Profesor, 0, len(s.rows))
	for _, p := range s.rows {
		out = append(out, p)
	}
	return out, nil
}

func (s *MemProfesores) FindByID(_ context.Context, id primitive.ObjectID) (*models.Profesor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.rows[id]
	if !ok {
		return nil, ErrNoEncontrado
	}
	return &p, nil
}

func (s *MemProfesores) Insert(_ context.Context, p *models.Profesor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.rows[p.ID] = *p
	return nil
}

func (s *MemProfesores) Update(_ context.Context, id primitive.ObjectID, p *models.Profesor) (*models.Profesor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.rows[id]
	if !ok {
		return nil, ErrNoEncontrado
	}
	cur.Nombre = p.Nombre
	cur.Especialidad = p.Especialidad
	cur.UpdatedAt = p.UpdatedAt
	s.rows[id] = cur
	return &cur, nil
}

func (s *MemProfesores) Delete(_ context.Context, id primitive.ObjectID) (*models.Profesor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.rows[id]
	if !ok {
		return nil, ErrNoEncontrado
	}
	delete(s.rows, id)
	return &p, nil
}

type MemClases struct {
	mu   sync.RWMutex
	rows map[primitive.ObjectID]models.Clase
}

func (s *MemClases) FindAll(_ context.Context) ([]models.Clase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Clase, 0, len(s.rows))
	for _, cl := range s.rows {
		out = append(out, cl)
	}
	return out, nil
}

func (s *MemClases) FindByID(_ context.Context, id primitive.ObjectID) (*models.Clase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cl, ok := s.rows[id]
	if !ok {
		return nil, ErrNoEncontrado
	}
	return &cl, nil
}

func (s *MemClases) Insert(_ context.Context, cl *models.Clase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cl.ID.IsZero() {
		cl.ID = primitive.NewObjectID()
	}
	s.rows[cl.ID] = *cl
	return nil
}

func (s *MemClases) Update(_ context.Context, id primitive.ObjectID, cl *models.Clase) (*models.Clase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.rows[id]
	if !ok {
		return nil, ErrNoEncontrado
	}
	cur.Nombre = cl.Nombre
	cur.Descripcion = cl.Descripcion
	cur.UpdatedAt = cl.UpdatedAt
	s.rows[id] = cur
	return &cur, nil
}

func (s *MemClases) Delete(_ context.Context, id primitive.ObjectID) (*models.Clase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cl, ok := s.rows[id]
	if !ok {
		return nil, ErrNoEncontrado
	}
	delete(s.rows, id)
	return &cl, nil
}

type MemHorarios struct {
	mu   sync.RWMutex
	rows map[primitive.ObjectID]models.Horario
}

func (s *MemHorarios) FindAll(_ context.Context) ([]models.Horario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Horario, 0, len(s.rows))
	for _, h := range s.rows {
		out = append(out, h)
	}
	return out, nil
}

func (s *MemHorarios) FindByID(_ context.Context, id primitive.ObjectID) (*models.Horario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.rows[id]
	if !ok {
		return nil, ErrNoEncontrado
	}
	return &h, nil
}

func (s *MemHorarios) Insert(_ context.Context, h *models.Horario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chocaLocked(h, primitive.NilObjectID) {
		return ErrDuplicado
	}
	if h.ID.IsZero() {
		h.ID = primitive.NewObjectID()
	}
	s.rows[h.ID] = *h
	return nil
}

func (s *MemHorarios) Update(_ context.Context, id primitive.ObjectID, h *models.Horario) (*models.Horario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.rows[id]
	if !ok {
		return nil, ErrNoEncontrado
	}
	if s.chocaLocked(h, id) {
		return nil, ErrDuplicado
	}
	cur.ClaseID = h.ClaseID
	cur.ProfesorID = h.ProfesorID
	cur.AlumnoID = h.AlumnoID
	cur.DiaSemana = h.DiaSemana
	cur.HoraInicio = h.HoraInicio
	cur.HoraFin = h.HoraFin
	cur.UpdatedAt = h.UpdatedAt
	s.rows[id] = cur
	return &cur, nil
}

func (s *MemHorarios) Delete(_ context.Context, id primitive.ObjectID) (*models.Horario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.rows[id]
	if !ok {
		return nil, ErrNoEncontrado
	}
	delete(s.rows, id)
	return &h, nil
}

func (s *MemHorarios) BuscarConflicto(_ context.Context, q ConflictoQuery) (*models.Horario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.rows {
		if !q.Excluir.IsZero() && h.ID == q.Excluir {
			continue
		}
		if h.DiaSemana != q.DiaSemana || h.HoraInicio != q.HoraInicio {
			continue
		}
		if h.ProfesorID == q.ProfesorID || h.AlumnoID == q.AlumnoID {
			out := h
			return &out, nil
		}
	}
	return nil, nil
}

func (s *MemHorarios) ReferenciaEnUso(_ context.Context, campo string, id primitive.ObjectID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.rows {
		switch campo {
		case CampoClase:
			if h.ClaseID == id {
				return true, nil
			}
		case CampoProfesor:
			if h.ProfesorID == id {
				return true, nil
			}
		case CampoAlumno:
			if h.AlumnoID == id {
				return true, nil
			}
		}
	}
	return false, nil
}

// chocaLocked replica los índices únicos de Mongo: mismo día y hora de
// inicio para el mismo profesor o el mismo alumno. Requiere s.mu.
func (s *MemHorarios) chocaLocked(h *models.Horario, excluir primitive.ObjectID) bool {
	for _, e := range s.rows {
		if !excluir.IsZero() && e.ID == excluir {
			continue
		}
		if e.DiaSemana != h.DiaSemana || e.HoraInicio != h.HoraInicio {
			continue
		}
		if e.ProfesorID == h.ProfesorID || e.AlumnoID == h.AlumnoID {
			return true
		}
	}
	return false
}
