package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"vetclinic/internal/domain/owners"
	"vetclinic/internal/domain/pets"
	"vetclinic/internal/domain/registry"
	"vetclinic/internal/domain/visits"
)

// Shell es el menú interactivo. No toca persistencia directa: todo pasa por
// el registry, y las decisiones interactivas de los flujos vuelven acá vía
// la interfaz registry.Prompter (que Shell implementa).
type Shell struct {
	in  *bufio.Reader
	out io.Writer
	reg *registry.Service
	log zerolog.Logger

	eof bool
}

func New(in io.Reader, out io.Writer, reg *registry.Service, log zerolog.Logger) *Shell {
	return &Shell{
		in:  bufio.NewReader(in),
		out: out,
		reg: reg,
		log: log.With().Str("component", "cli").Logger(),
	}
}

// Run ejecuta el loop del menú hasta que el usuario sale o se acaba la
// entrada.
func (sh *Shell) Run(ctx context.Context) error {
	sh.log.Info().Msg("session started")

	for !sh.eof {
		sh.title("Happy Paws Veterinary Clinic")

		fmt.Fprintln(sh.out, "Records")
		fmt.Fprintln(sh.out, " 1. Register a pet (creates the owner if needed)")
		fmt.Fprintln(sh.out, " 2. Register a visit")
		fmt.Fprintln(sh.out, "Queries")
		fmt.Fprintln(sh.out, " 3. List owners")
		fmt.Fprintln(sh.out, " 4. List pets")
		fmt.Fprintln(sh.out, " 5. Visit history of a pet")
		fmt.Fprintln(sh.out, "Updates")
		fmt.Fprintln(sh.out, " 6. Update owner")
		fmt.Fprintln(sh.out, " 7. Update pet")
		fmt.Fprintln(sh.out, " 8. Update visit")
		fmt.Fprintln(sh.out, "Deletions")
		fmt.Fprintln(sh.out, " 9. Delete owner")
		fmt.Fprintln(sh.out, "10. Delete pet")
		fmt.Fprintln(sh.out, "11. Delete visit")
		fmt.Fprintln(sh.out, "12. Exit")

		switch sh.readLine("\n> ") {
		case "1":
			sh.registerPet(ctx)
		case "2":
			sh.registerVisit(ctx)
		case "3":
			sh.listOwners(ctx)
		case "4":
			sh.listPets(ctx)
		case "5":
			sh.visitHistory(ctx)
		case "6":
			sh.updateOwner(ctx)
		case "7":
			sh.updatePet(ctx)
		case "8":
			sh.updateVisit(ctx)
		case "9":
			sh.deleteOwner(ctx)
		case "10":
			sh.deletePet(ctx)
		case "11":
			sh.deleteVisit(ctx)
		case "12":
			sh.successf("Thanks for using the system, goodbye!")
			sh.log.Info().Msg("session closed")
			return nil
		default:
			if !sh.eof {
				sh.errorf("Invalid option, please try again.")
			}
		}
	}

	sh.log.Info().Msg("input closed, session ended")
	return nil
}

// --- registry.Prompter ---

func (sh *Shell) ConfirmOwnerCreate(name string) bool {
	sh.message("Owner %q is not registered.", name)
	return sh.confirm("Register this owner now?")
}

func (sh *Shell) NewOwnerDetails(string) (owners.CreateInput, bool) {
	// se vuelve a pedir el nombre: el usuario pudo haberlo tipeado mal
	name := sh.readLine("New owner's name: ")
	if name == "" {
		return owners.CreateInput{}, false
	}
	return owners.CreateInput{
		Name:    name,
		Phone:   sh.readLine("New owner's phone: "),
		Address: sh.readLine("New owner's address: "),
	}, true
}

func (sh *Shell) ConfirmDelete(summary string) bool {
	return sh.confirm(fmt.Sprintf("Are you sure you want to delete %s?", summary))
}

// --- handlers ---

func (sh *Shell) registerPet(ctx context.Context) {
	sh.title("Register Pet")

	in := registry.RegisterPetInput{
		Name:    sh.readLine("Pet's name: "),
		Species: sh.readLine("Species: "),
		Breed:   sh.readLine("Breed: "),
		Age:     sh.readAge("Age in years: "),
	}

	sh.message("--- Owner information ---")
	in.OwnerName = sh.readLine("Name of the (existing or new) owner: ")
	if sh.eof {
		return
	}

	p, err := sh.reg.RegisterPet(ctx, in, sh)
	switch {
	case errors.Is(err, registry.ErrAborted):
		sh.message("Operation cancelled, nothing was registered.")
	case errors.Is(err, owners.ErrDuplicateName):
		sh.errorf("Could not create the owner: the name is already in use.")
	case errors.Is(err, pets.ErrInvalidInput), errors.Is(err, owners.ErrInvalidInput):
		sh.errorf("Could not register the pet: some field is invalid.")
	case err != nil:
		sh.errorf("Could not register the pet: %v", err)
		sh.log.Error().Err(err).Msg("register pet failed")
	default:
		sh.successf("Pet %q registered with ID %d, owner: %s.", p.Name, p.ID, p.OwnerName)
	}
}

func (sh *Shell) registerVisit(ctx context.Context) {
	sh.title("Register Visit")

	petID := sh.readInt64("Pet ID for the visit: ")
	pet, err := sh.reg.GetPet(ctx, petID)
	if err != nil {
		sh.notFound(err, "pet", petID)
		return
	}
	fmt.Fprintf(sh.out, "Registering a visit for: %s (ID %d)\n", pet.Name, pet.ID)

	v, err := sh.reg.RegisterVisit(ctx, visits.CreateInput{
		Date:      sh.readDate("Visit date (dd-mm-yyyy): "),
		Reason:    sh.readLine("Reason: "),
		Diagnosis: sh.readLine("Diagnosis: "),
		PetID:     petID,
	})
	if err != nil {
		sh.errorf("Could not register the visit: %v", err)
		sh.log.Error().Err(err).Msg("register visit failed")
		return
	}
	sh.successf("Visit registered with ID %d.", v.ID)
}

func (sh *Shell) listOwners(ctx context.Context) {
	sh.title("Owners")

	items, err := sh.reg.ListOwners(ctx)
	if err != nil {
		sh.errorf("Could not list owners: %v", err)
		return
	}
	if len(items) == 0 {
		sh.message("No owners registered yet.")
		return
	}
	for _, o := range items {
		sh.renderOwner(o)
	}
}

func (sh *Shell) listPets(ctx context.Context) {
	sh.title("Registered Pets")

	items, err := sh.reg.ListPets(ctx)
	if err != nil {
		sh.errorf("Could not list pets: %v", err)
		return
	}
	if len(items) == 0 {
		sh.message("No pets registered yet.")
		return
	}
	for _, p := range items {
		sh.renderPet(p)
	}
}

func (sh *Shell) visitHistory(ctx context.Context) {
	sh.title("Clinical History")

	petID := sh.readInt64("Pet ID: ")
	pet, history, err := sh.reg.VisitHistory(ctx, petID)
	if err != nil {
		sh.notFound(err, "pet", petID)
		return
	}
	if len(history) == 0 {
		sh.message("No visits recorded for %s (ID %d).", pet.Name, pet.ID)
		return
	}

	fmt.Fprintf(sh.out, "Clinical history of %s (ID %d):\n", pet.Name, pet.ID)
	for _, v := range history {
		sh.renderVisit(v)
	}
}

func (sh *Shell) updateOwner(ctx context.Context) {
	sh.title("Update Owner")

	id := sh.readInt64("Owner ID to update: ")
	o, err := sh.reg.GetOwner(ctx, id)
	if err != nil {
		sh.notFound(err, "owner", id)
		return
	}
	sh.renderOwner(o)
	fmt.Fprintln(sh.out, "Enter the new values (leave blank to keep the current one):")

	patch := owners.Patch{
		Name:    sh.readOptional(fmt.Sprintf("New name (%s): ", o.Name)),
		Phone:   sh.readOptional(fmt.Sprintf("New phone (%s): ", o.Phone)),
		Address: sh.readOptional(fmt.Sprintf("New address (%s): ", o.Address)),
	}
	if patch.Empty() {
		sh.message("Nothing to update.")
		return
	}

	ok, err := sh.reg.UpdateOwner(ctx, id, patch)
	switch {
	case errors.Is(err, owners.ErrDuplicateName):
		sh.errorf("That name is already in use by another owner; nothing was changed.")
	case err != nil:
		sh.errorf("Could not update the owner: %v", err)
		sh.log.Error().Err(err).Msg("update owner failed")
	case !ok:
		sh.message("Could not update the owner.")
	default:
		sh.successf("Owner updated.")
	}
}

func (sh *Shell) updatePet(ctx context.Context) {
	sh.title("Update Pet")

	id := sh.readInt64("Pet ID to update: ")
	p, err := sh.reg.GetPet(ctx, id)
	if err != nil {
		sh.notFound(err, "pet", id)
		return
	}
	sh.renderPet(p)
	fmt.Fprintln(sh.out, "Enter the new values (leave blank to keep the current one):")

	upd := registry.PetUpdate{
		Patch: pets.Patch{
			Name:    sh.readOptional(fmt.Sprintf("New name (%s): ", p.Name)),
			Species: sh.readOptional(fmt.Sprintf("New species (%s): ", p.Species)),
			Breed:   sh.readOptional(fmt.Sprintf("New breed (%s): ", p.Breed)),
		},
	}

	if raw := sh.readOptional(fmt.Sprintf("New age in years (%d): ", p.Age)); raw != nil {
		age, err := strconv.Atoi(*raw)
		if err != nil || age < 0 {
			sh.errorf("Invalid age, keeping the current one.")
			sh.log.Warn().Int64("pet_id", id).Str("input", *raw).Msg("invalid age input on update")
		} else {
			upd.Patch.Age = &age
		}
	}

	if sh.confirm("Change the owner of this pet?") {
		upd.NewOwnerName = sh.readLine("Name of the new owner: ")
	}

	if upd.Patch.Empty() && upd.NewOwnerName == "" {
		sh.message("Nothing to update.")
		return
	}

	res, err := sh.reg.UpdatePet(ctx, id, upd)
	if err != nil {
		sh.errorf("Could not update the pet: %v", err)
		sh.log.Error().Err(err).Msg("update pet failed")
		return
	}
	if res.OwnerSkipped {
		sh.message("Owner not found, the pet keeps its current owner.")
	}
	if res.Applied {
		sh.successf("Pet updated.")
	} else {
		sh.message("Nothing to update.")
	}
}

func (sh *Shell) updateVisit(ctx context.Context) {
	sh.title("Update Visit")

	id := sh.readInt64("Visit ID to update: ")
	v, err := sh.reg.GetVisit(ctx, id)
	if err != nil {
		sh.notFound(err, "visit", id)
		return
	}
	sh.renderVisit(v)
	fmt.Fprintln(sh.out, "Enter the new values (leave blank to keep the current one):")

	var patch visits.Patch
	if raw := sh.readOptional(fmt.Sprintf("New date (dd-mm-yyyy) (%s): ", v.Date.Format(inputDateLayout))); raw != nil {
		d, err := time.ParseInLocation(inputDateLayout, *raw, time.UTC)
		if err != nil {
			sh.errorf("Wrong date format, keeping the current date.")
			sh.log.Warn().Int64("visit_id", id).Str("input", *raw).Msg("invalid date input on update")
		} else {
			patch.Date = &d
		}
	}
	patch.Reason = sh.readOptional(fmt.Sprintf("New reason (%s): ", v.Reason))
	patch.Diagnosis = sh.readOptional(fmt.Sprintf("New diagnosis (%s): ", v.Diagnosis))

	if patch.Empty() {
		sh.message("Nothing to update.")
		return
	}

	ok, err := sh.reg.UpdateVisit(ctx, id, patch)
	switch {
	case err != nil:
		sh.errorf("Could not update the visit: %v", err)
		sh.log.Error().Err(err).Msg("update visit failed")
	case !ok:
		sh.message("Could not update the visit.")
	default:
		sh.successf("Visit updated.")
	}
}

func (sh *Shell) deleteOwner(ctx context.Context) {
	sh.title("Delete Owner")

	id := sh.readInt64("Owner ID to delete: ")
	err := sh.reg.DeleteOwner(ctx, id, sh)
	switch {
	case errors.Is(err, registry.ErrAborted):
		sh.message("Operation cancelled.")
	case err != nil:
		sh.notFound(err, "owner", id)
	default:
		sh.successf("Owner and all their dependent records deleted.")
	}
}

func (sh *Shell) deletePet(ctx context.Context) {
	sh.title("Delete Pet")

	id := sh.readInt64("Pet ID to delete: ")
	err := sh.reg.DeletePet(ctx, id, sh)
	switch {
	case errors.Is(err, registry.ErrAborted):
		sh.message("Operation cancelled.")
	case err != nil:
		sh.notFound(err, "pet", id)
	default:
		sh.successf("Pet and its visits deleted.")
	}
}

func (sh *Shell) deleteVisit(ctx context.Context) {
	sh.title("Delete Visit")

	id := sh.readInt64("Visit ID to delete: ")
	err := sh.reg.DeleteVisit(ctx, id, sh)
	switch {
	case errors.Is(err, registry.ErrAborted):
		sh.message("Operation cancelled.")
	case err != nil:
		sh.notFound(err, "visit", id)
	default:
		sh.successf("Visit deleted.")
	}
}

// notFound mapea los sentinels de dominio a un mensaje amable; cualquier
// otra falla se reporta y se loguea tal cual.
func (sh *Shell) notFound(err error, entity string, id int64) {
	switch {
	case errors.Is(err, owners.ErrNotFound),
		errors.Is(err, pets.ErrNotFound),
		errors.Is(err, visits.ErrNotFound):
		sh.message("No %s found with ID %d.", entity, id)
		sh.log.Info().Str("entity", entity).Int64("id", id).Msg("lookup missed")
	default:
		sh.errorf("Unexpected error: %v", err)
		sh.log.Error().Err(err).Msg("operation failed")
	}
}
