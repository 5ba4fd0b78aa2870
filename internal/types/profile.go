// Package types provides type definitions for structured data used throughout the career-mentor system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// UserProfile is the persisted record describing a single user.
type UserProfile struct {
	ID         string   `json:"id" validate:"required"`
	Background string   `json:"background"`
	Goals      string   `json:"goals"`
	Skills     []string `json:"skills" validate:"dive,required"`
}

// NewUserProfile returns the empty default profile for id.
func NewUserProfile(id string) UserProfile {
	return UserProfile{
		ID:     id,
		Skills: []string{},
	}
}

// Validate validates the UserProfile using the validator.
func (p *UserProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// Persona describes who the user is for prompt tailoring.
type Persona string

// Persona constants mirror the choices offered to the user.
const (
	PersonaStudent             Persona = "Student"
	PersonaCareerSwitcher      Persona = "Career Switcher"
	PersonaWorkingProfessional Persona = "Working Professional"
)

// Personas returns every supported persona in display order.
func Personas() []Persona {
	return []Persona{PersonaStudent, PersonaCareerSwitcher, PersonaWorkingProfessional}
}

// ParsePersona resolves a persona name case-insensitively, defaulting to Student.
func ParsePersona(name string) (Persona, bool) {
	for _, p := range Personas() {
		if equalFold(string(p), name) {
			return p, true
		}
	}
	return PersonaStudent, false
}
