package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Alumno es un estudiante de la escuela. Edad es opcional y nunca negativa.
type Alumno struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nombre    string             `bson:"nombre" json:"nombre"`
	Edad      *int               `bson:"edad,omitempty" json:"edad,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type Profesor struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nombre       string             `bson:"nombre" json:"nombre"`
	Especialidad string             `bson:"especialidad" json:"especialidad"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

type Clase struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nombre      string             `bson:"nombre" json:"nombre"`
	Descripcion string             `bson:"descripcion" json:"descripcion"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Horario reserva a un profesor con un alumno para una clase en un
// dia/tramo concreto. Las horas son cadenas HH:MM con cero inicial,
// comparables byte a byte.
type Horario struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClaseID    primitive.ObjectID `bson:"clase_id" json:"clase_id"`
	ProfesorID primitive.ObjectID `bson:"profesor_id" json:"profesor_id"`
	AlumnoID   primitive.ObjectID `bson:"alumno_id" json:"alumno_id"`
	DiaSemana  string             `bson:"dia_semana" json:"dia_semana"`
	HoraInicio string             `bson:"hora_inicio" json:"hora_inicio"`
	HoraFin    string             `bson:"hora_fin" json:"hora_fin"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// HorarioExpandido es la forma de respuesta de list/get/update: las
// referencias se sustituyen por los registros completos, conservando
// las claves del documento original.
type HorarioExpandido struct {
	ID         primitive.ObjectID `json:"id"`
	Clase      *Clase             `json:"clase_id"`
	Profesor   *Profesor          `json:"profesor_id"`
	Alumno     *Alumno            `json:"alumno_id"`
	DiaSemana  string             `json:"dia_semana"`
	HoraInicio string             `json:"hora_inicio"`
	HoraFin    string             `json:"hora_fin"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}
