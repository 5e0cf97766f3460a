package owners

// Owner representa un cliente de la clínica con una o más mascotas.
// El ID lo asigna el store al insertar.
type Owner struct {
	ID      int64
	Name    string
	Phone   string
	Address string
}

// Patch describe una actualización parcial: nil = no tocar el campo.
type Patch struct {
	Name    *string
	Phone   *string
	Address *string
}

// Empty reporta si el patch no toca ningún campo.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.Address == nil
}
