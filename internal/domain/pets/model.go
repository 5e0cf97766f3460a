package pets

// Pet representa una mascota registrada, siempre ligada a un dueño existente.
type Pet struct {
	ID      int64
	Name    string
	Species string
	Breed   string
	Age     int

	OwnerID int64
	// OwnerName se llena con un JOIN al leer; no se persiste en la tabla.
	OwnerName string
}

// Patch describe una actualización parcial: nil = no tocar el campo.
type Patch struct {
	Name    *string
	Species *string
	Breed   *string
	Age     *int
	OwnerID *int64
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Species == nil && p.Breed == nil &&
		p.Age == nil && p.OwnerID == nil
}
