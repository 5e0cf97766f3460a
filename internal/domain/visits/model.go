package visits

import "time"

// Visit representa una consulta clínica de una mascota.
// Date es fecha calendario (sin hora); se persiste como texto ISO YYYY-MM-DD.
type Visit struct {
	ID        int64
	Date      time.Time
	Reason    string
	Diagnosis string

	PetID int64
	// PetName se llena con un JOIN al leer; no se persiste en la tabla.
	PetName string
}

// Patch describe una actualización parcial: nil = no tocar el campo.
type Patch struct {
	Date      *time.Time
	Reason    *string
	Diagnosis *string
}

func (p Patch) Empty() bool {
	return p.Date == nil && p.Reason == nil && p.Diagnosis == nil
}
