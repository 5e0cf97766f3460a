package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"vetclinic/internal/domain/owners"
	"vetclinic/internal/domain/pets"
	"vetclinic/internal/domain/visits"
)

var (
	// ErrAborted indica que el usuario canceló el flujo; nada se persistió.
	ErrAborted = errors.New("workflow aborted by user")
)

// Prompter cubre las decisiones interactivas que los flujos delegan a la
// capa de consola (o a un fake en tests).
type Prompter interface {
	// ConfirmOwnerCreate pregunta si se registra al dueño inexistente.
	ConfirmOwnerCreate(name string) bool
	// NewOwnerDetails pide los datos del dueño nuevo. ok=false cancela.
	NewOwnerDetails(name string) (in owners.CreateInput, ok bool)
	// ConfirmDelete pide confirmación antes de un borrado en cascada.
	ConfirmDelete(summary string) bool
}

// Service orquesta los flujos que cruzan entidades. Toda persistencia pasa
// por los services de cada entidad; aquí no hay SQL.
type Service struct {
	owners *owners.Service
	pets   *pets.Service
	visits *visits.Service
	log    zerolog.Logger
}

func NewService(ow *owners.Service, pe *pets.Service, vi *visits.Service, log zerolog.Logger) *Service {
	return &Service{
		owners: ow,
		pets:   pe,
		visits: vi,
		log:    log.With().Str("component", "registry").Logger(),
	}
}

type RegisterPetInput struct {
	Name      string
	Species   string
	Breed     string
	Age       int
	OwnerName string
}

// RegisterPet registra una mascota localizando al dueño por nombre.
// Si el dueño no existe se ofrece crearlo; si el usuario declina, el flujo
// completo aborta sin persistir nada.
func (s *Service) RegisterPet(ctx context.Context, in RegisterPetInput, prompt Prompter) (pets.Pet, error) {
	owner, err := s.owners.GetByName(ctx, in.OwnerName)
	switch {
	case errors.Is(err, owners.ErrNotFound):
		owner, err = s.createOwnerInteractive(ctx, in.OwnerName, prompt)
		if err != nil {
			return pets.Pet{}, err
		}
	case err != nil:
		return pets.Pet{}, err
	}

	p, err := s.pets.Create(ctx, pets.CreateInput{
		Name:    in.Name,
		Species: in.Species,
		Breed:   in.Breed,
		Age:     in.Age,
		OwnerID: owner.ID,
	})
	if err != nil {
		return pets.Pet{}, err
	}

	p.OwnerName = owner.Name
	s.log.Info().Int64("pet_id", p.ID).Int64("owner_id", owner.ID).Msg("pet registered")
	return p, nil
}

// createOwnerInteractive es el alta doblemente chequeada: entre la búsqueda
// inicial y la decisión del usuario pasa tiempo, así que se vuelve a buscar
// el nombre justo antes de insertar. Si el nombre re-tipeado ya existe, se
// asigna la mascota a ese dueño en vez de fallar.
func (s *Service) createOwnerInteractive(ctx context.Context, name string, prompt Prompter) (owners.Owner, error) {
	if !prompt.ConfirmOwnerCreate(name) {
		s.log.Info().Str("owner_name", name).Msg("owner creation declined, workflow aborted")
		return owners.Owner{}, ErrAborted
	}

	in, ok := prompt.NewOwnerDetails(name)
	if !ok {
		return owners.Owner{}, ErrAborted
	}

	existing, err := s.owners.GetByName(ctx, in.Name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, owners.ErrNotFound) {
		return owners.Owner{}, err
	}

	created, err := s.owners.Create(ctx, in)
	if err != nil {
		return owners.Owner{}, err
	}
	s.log.Info().Int64("owner_id", created.ID).Str("owner_name", created.Name).Msg("owner created during pet registration")
	return created, nil
}

// RegisterVisit registra una consulta para una mascota existente.
// Si la mascota no existe, aborta con pets.ErrNotFound sin persistir.
func (s *Service) RegisterVisit(ctx context.Context, in visits.CreateInput) (visits.Visit, error) {
	pet, err := s.pets.GetByID(ctx, in.PetID)
	if err != nil {
		return visits.Visit{}, err
	}

	v, err := s.visits.Create(ctx, in)
	if err != nil {
		return visits.Visit{}, err
	}

	v.PetName = pet.Name
	s.log.Info().Int64("visit_id", v.ID).Int64("pet_id", pet.ID).Msg("visit registered")
	return v, nil
}

// UpdateOwner aplica un patch al dueño. Un rename que colisione con el
// nombre de OTRO dueño rechaza la actualización completa.
func (s *Service) UpdateOwner(ctx context.Context, id int64, p owners.Patch) (bool, error) {
	if p.Name != nil {
		existing, err := s.owners.GetByName(ctx, *p.Name)
		switch {
		case err == nil && existing.ID != id:
			s.log.Warn().Int64("owner_id", id).Str("name", *p.Name).Msg("rename rejected, name in use")
			return false, owners.ErrDuplicateName
		case err != nil && !errors.Is(err, owners.ErrNotFound):
			return false, err
		}
	}
	return s.owners.Update(ctx, id, p)
}

type PetUpdate struct {
	Patch pets.Patch
	// NewOwnerName, si no está vacío, pide reasignar la mascota al dueño
	// con ese nombre.
	NewOwnerName string
}

type PetUpdateResult struct {
	Applied bool
	// OwnerSkipped indica que se pidió reasignar dueño pero el nombre no
	// existe; el resto del patch se aplica igual.
	OwnerSkipped bool
}

func (s *Service) UpdatePet(ctx context.Context, id int64, upd PetUpdate) (PetUpdateResult, error) {
	var res PetUpdateResult

	if upd.NewOwnerName != "" {
		owner, err := s.owners.GetByName(ctx, upd.NewOwnerName)
		switch {
		case err == nil:
			upd.Patch.OwnerID = &owner.ID
		case errors.Is(err, owners.ErrNotFound):
			res.OwnerSkipped = true
			s.log.Warn().Int64("pet_id", id).Str("owner_name", upd.NewOwnerName).Msg("owner reassignment skipped, owner not found")
		default:
			return res, err
		}
	}

	applied, err := s.pets.Update(ctx, id, upd.Patch)
	if err != nil {
		return res, err
	}
	res.Applied = applied
	return res, nil
}

func (s *Service) UpdateVisit(ctx context.Context, id int64, p visits.Patch) (bool, error) {
	return s.visits.Update(ctx, id, p)
}

// DeleteOwner borra al dueño y, en cascada, sus mascotas y las consultas de
// éstas. Requiere confirmación explícita.
func (s *Service) DeleteOwner(ctx context.Context, id int64, prompt Prompter) error {
	o, err := s.owners.GetByID(ctx, id)
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("owner %q (id %d), ALL their pets and every visit of those pets", o.Name, o.ID)
	if !prompt.ConfirmDelete(summary) {
		s.log.Info().Int64("owner_id", id).Msg("owner delete cancelled")
		return ErrAborted
	}

	ok, err := s.owners.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return owners.ErrNotFound
	}
	s.log.Info().Int64("owner_id", id).Msg("owner deleted with cascade")
	return nil
}

func (s *Service) DeletePet(ctx context.Context, id int64, prompt Prompter) error {
	p, err := s.pets.GetByID(ctx, id)
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("pet %q (id %d) and all its visits", p.Name, p.ID)
	if !prompt.ConfirmDelete(summary) {
		s.log.Info().Int64("pet_id", id).Msg("pet delete cancelled")
		return ErrAborted
	}

	ok, err := s.pets.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return pets.ErrNotFound
	}
	s.log.Info().Int64("pet_id", id).Msg("pet deleted with cascade")
	return nil
}

func (s *Service) DeleteVisit(ctx context.Context, id int64, prompt Prompter) error {
	v, err := s.visits.GetByID(ctx, id)
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("visit %d of pet %q", v.ID, v.PetName)
	if !prompt.ConfirmDelete(summary) {
		s.log.Info().Int64("visit_id", id).Msg("visit delete cancelled")
		return ErrAborted
	}

	ok, err := s.visits.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return visits.ErrNotFound
	}
	s.log.Info().Int64("visit_id", id).Msg("visit deleted")
	return nil
}

// Lecturas passthrough para la consola.

func (s *Service) ListOwners(ctx context.Context) ([]owners.Owner, error) {
	return s.owners.List(ctx)
}

func (s *Service) ListPets(ctx context.Context) ([]pets.Pet, error) {
	return s.pets.List(ctx)
}

// VisitHistory devuelve las consultas de una mascota existente, más
// recientes primero.
func (s *Service) VisitHistory(ctx context.Context, petID int64) (pets.Pet, []visits.Visit, error) {
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return pets.Pet{}, nil, err
	}
	vs, err := s.visits.ListByPet(ctx, petID)
	if err != nil {
		return pets.Pet{}, nil, err
	}
	return pet, vs, nil
}

func (s *Service) GetOwner(ctx context.Context, id int64) (owners.Owner, error) {
	return s.owners.GetByID(ctx, id)
}

func (s *Service) GetPet(ctx context.Context, id int64) (pets.Pet, error) {
	return s.pets.GetByID(ctx, id)
}

func (s *Service) GetVisit(ctx context.Context, id int64) (visits.Visit, error) {
	return s.visits.GetByID(ctx, id)
}
