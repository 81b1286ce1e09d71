package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Citizen is the identity anchor that owns document records
type Citizen struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	NationalID  string             `bson:"national_id" json:"nationalId"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	DateOfBirth string             `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

// Admin represents a reviewing administrator
type Admin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID   string             `bson:"employee_id" json:"employeeId"`
	Name         string             `bson:"name" json:"name"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Department   string             `bson:"department,omitempty" json:"department,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}
