// Package category define el conjunto cerrado de categorías de usuario.
//
// Toda decisión que dependa de la categoría (destinos de redirect, campos
// obligatorios del perfil) hace switch sobre Category y nunca compara strings
// sueltos. Agregar una categoría nueva obliga a actualizar All(), la tabla de
// rutas en config y los switches de completeness; los tests iteran All() para
// detectar huecos.
package category

import (
	"fmt"
	"strings"
)

// Category es la categoría de un usuario.
type Category uint8

const (
	// Unknown es el valor cero; nunca es válido.
	Unknown Category = iota
	// Veterinarian es la categoría general.
	Veterinarian
	// Student es la categoría de miembro institucional (email universitario verificado).
	Student
	// Hospital es la categoría de organización (licencia comercial aprobada).
	Hospital
)

// All retorna todas las categorías válidas, en orden estable.
func All() []Category {
	return []Category{Veterinarian, Student, Hospital}
}

// String retorna la forma canónica usada en URLs, config y tokens.
func (c Category) String() string {
	switch c {
	case Veterinarian:
		return "veterinarian"
	case Student:
		return "student"
	case Hospital:
		return "hospital"
	case Unknown:
		return "unknown"
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// Valid reporta si c es una de All().
func (c Category) Valid() bool {
	switch c {
	case Veterinarian, Student, Hospital:
		return true
	}
	return false
}

// Parse convierte la forma canónica (case-insensitive) en Category.
func Parse(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "veterinarian", "vet", "general":
		return Veterinarian, nil
	case "student":
		return Student, nil
	case "hospital":
		return Hospital, nil
	}
	return Unknown, fmt.Errorf("category: unknown value %q", s)
}

// MarshalText implementa encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("category: cannot marshal %s", c)
	}
	return []byte(c.String()), nil
}

// UnmarshalText implementa encoding.TextUnmarshaler (usado por yaml y json).
func (c *Category) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
