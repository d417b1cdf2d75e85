package store

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"escuela-backend/internal/models"
)

// NewMongoStores construye los cuatro almacenes sobre una base de datos
// ya conectada. Los índices únicos de horarios hacen que la secuencia
// validar-luego-insertar sea segura frente a peticiones concurrentes:
// la segunda inserción en conflicto la rechaza el propio Mongo.
func NewMongoStores(db *mongo.Database) Stores {
	horarios := db.Collection("horarios")

	_, err := horarios.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "profesor_id", Value: 1},
				{Key: "dia_semana", Value: 1},
				{Key: "hora_inicio", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "alumno_id", Value: 1},
				{Key: "dia_semana", Value: 1},
				{Key: "hora_inicio", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		slog.Warn("no se pudieron crear los índices de horarios", "error", err)
	}

	return Stores{
		Alumnos:    &MongoAlumnos{coll: db.Collection("alumnos")},
		Profesores: &MongoProfesores{coll: db.Collection("profesores")},
		Clases:     &MongoClases{coll: db.Collection("clases")},
		Horarios:   &MongoHorarios{coll: horarios},
	}
}

type MongoAlumnos struct {
	coll *mongo.Collection
}

func (s *MongoAlumnos) FindAll(ctx context.Context) ([]models.Alumno, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	out := []models.Alumno{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoAlumnos) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Alumno, error) {
	var a models.Alumno
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return &a, nil
}

func (s *MongoAlumnos) Insert(ctx context.Context, a *models.Alumno) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, a)
	return err
}

func (s *MongoAlumnos) Update(ctx context.Context, id primitive.ObjectID, a *models.Alumno) (*models.Alumno, error) {
	update := bson.M{"$set": bson.M{
		"nombre":     a.Nombre,
		"edad":       a.Edad,
		"updated_at": a.UpdatedAt,
	}}
	return decodeAlumno(s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, afterUpdate()))
}

func (s *MongoAlumnos) Delete(ctx context.Context, id primitive.ObjectID) (*models.Alumno, error) {
	return decodeAlumno(s.coll.FindOneAndDelete(ctx, bson.M{"_id": id}))
}

func decodeAlumno(res *mongo.SingleResult) (*models.Alumno, error) {
	var a models.Alumno
	if err := res.Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return &a, nil
}

type MongoProfesores struct {
	coll *mongo.Collection
}

func (s *MongoProfesores) FindAll(ctx context.Context) ([]models.Profesor, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	out := []models.Profesor{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoProfesores) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Profesor, error) {
	var p models.Profesor
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return &p, nil
}

func (s *MongoProfesores) Insert(ctx context.Context, p *models.Profesor) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, p)
	return err
}

func (s *MongoProfesores) Update(ctx context.Context, id primitive.ObjectID, p *models.Profesor) (*models.Profesor, error) {
	update := bson.M{"$set": bson.M{
		"nombre":       p.Nombre,
		"especialidad": p.Especialidad,
		"updated_at":   p.UpdatedAt,
	}}
	return decodeProfesor(s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, afterUpdate()))
}

func (s *MongoProfesores) Delete(ctx context.Context, id primitive.ObjectID) (*models.Profesor, error) {
	return decodeProfesor(s.coll.FindOneAndDelete(ctx, bson.M{"_id": id}))
}

func decodeProfesor(res *mongo.SingleResult) (*models.Profesor, error) {
	var p models.Profesor
	if err := res.Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return &p, nil
}

type MongoClases struct {
	coll *mongo.Collection
}

func (s *MongoClases) FindAll(ctx context.Context) ([]models.Clase, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	out := []models.Clase{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoClases) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Clase, error) {
	var cl models.Clase
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&cl); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return &cl, nil
}

func (s *MongoClases) Insert(ctx context.Context, cl *models.Clase) error {
	if cl.ID.IsZero() {
		cl.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, cl)
	return err
}

func (s *MongoClases) Update(ctx context.Context, id primitive.ObjectID, cl *models.Clase) (*models.Clase, error) {
	update := bson.M{"$set": bson.M{
		"nombre":      cl.Nombre,
		"descripcion": cl.Descripcion,
		"updated_at":  cl.UpdatedAt,
	}}
	return decodeClase(s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, afterUpdate()))
}

func (s *MongoClases) Delete(ctx context.Context, id primitive.ObjectID) (*models.Clase, error) {
	return decodeClase(s.coll.FindOneAndDelete(ctx, bson.M{"_id": id}))
}

func decodeClase(res *mongo.SingleResult) (*models.Clase, error) {
	var cl models.Clase
	if err := res.Decode(&cl); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return &cl, nil
}

type MongoHorarios struct {
	coll *mongo.Collection
}

func (s *MongoHorarios) FindAll(ctx context.Context) ([]models.Horario, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	out := []models.Horario{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoHorarios) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Horario, error) {
	var h models.Horario
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&h); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return &h, nil
}

func (s *MongoHorarios) Insert(ctx context.Context, h *models.Horario) error {
	if h.ID.IsZero() {
		h.ID = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, h); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicado
		}
		return err
	}
	return nil
}

func (s *MongoHorarios) Update(ctx context.Context, id primitive.ObjectID, h *models.Horario) (*models.Horario, error) {
	update := bson.M{"$set": bson.M{
		"clase_id":    h.ClaseID,
		"profesor_id": h.ProfesorID,
		"alumno_id":   h.AlumnoID,
		"dia_semana":  h.DiaSemana,
		"hora_inicio": h.HoraInicio,
		"hora_fin":    h.HoraFin,
		"updated_at":  h.UpdatedAt,
	}}
	var out models.Horario
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, afterUpdate()).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoEncontrado
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicado
		}
		return nil, err
	}
	return &out, nil
}

func (s *MongoHorarios) Delete(ctx context.Context, id primitive.ObjectID) (*models.Horario, error) {
	var out models.Horario
	if err := s.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return &out, nil
}

func (s *MongoHorarios) BuscarConflicto(ctx context.Context, q ConflictoQuery) (*models.Horario, error) {
	filter := bson.M{
		"dia_semana":  q.DiaSemana,
		"hora_inicio": q.HoraInicio,
		"$or": bson.A{
			bson.M{"profesor_id": q.ProfesorID},
			bson.M{"alumno_id": q.AlumnoID},
		},
	}
	if !q.Excluir.IsZero() {
		filter["_id"] = bson.M{"$ne": q.Excluir}
	}
	var h models.Horario
	if err := s.coll.FindOne(ctx, filter).Decode(&h); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

func (s *MongoHorarios) ReferenciaEnUso(ctx context.Context, campo string, id primitive.ObjectID) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{campo: id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func afterUpdate() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}
