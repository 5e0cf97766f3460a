package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"vetclinic/internal/domain/owners"
	"vetclinic/internal/domain/pets"
	"vetclinic/internal/domain/visits"
)

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	errColor   = color.New(color.FgRed)
	okColor    = color.New(color.FgGreen)
)

const ruler = 60

func (sh *Shell) title(text string) {
	line := strings.Repeat("=", ruler)
	fmt.Fprintln(sh.out)
	fmt.Fprintln(sh.out, line)
	pad := (ruler - len(text)) / 2
	if pad < 0 {
		pad = 0
	}
	titleColor.Fprintln(sh.out, strings.Repeat(" ", pad)+text)
	fmt.Fprintln(sh.out, line)
	fmt.Fprintln(sh.out)
}

func (sh *Shell) message(format string, args ...any) {
	fmt.Fprintf(sh.out, "\n * "+format+"\n", args...)
}

func (sh *Shell) successf(format string, args ...any) {
	okColor.Fprintf(sh.out, format+"\n", args...)
}

func (sh *Shell) errorf(format string, args ...any) {
	errColor.Fprintf(sh.out, format+"\n", args...)
}

func (sh *Shell) renderOwner(o owners.Owner) {
	fmt.Fprintf(sh.out, "Owner ID: %d\nName: %s\nPhone: %s\nAddress: %s\n", o.ID, o.Name, o.Phone, o.Address)
	fmt.Fprintln(sh.out, strings.Repeat("-", 30))
}

func (sh *Shell) renderPet(p pets.Pet) {
	fmt.Fprintf(sh.out, "Pet ID: %d\nName: %s\nSpecies: %s\nBreed: %s\nAge: %d years\nOwner: %s\n",
		p.ID, p.Name, p.Species, p.Breed, p.Age, p.OwnerName)
	fmt.Fprintln(sh.out, strings.Repeat("-", 30))
}

func (sh *Shell) renderVisit(v visits.Visit) {
	fmt.Fprintf(sh.out, "Visit ID: %d\nDate: %s\nReason: %s\nDiagnosis: %s\nPet: %s\n",
		v.ID, v.Date.Format(inputDateLayout), v.Reason, v.Diagnosis, v.PetName)
	fmt.Fprintln(sh.out, strings.Repeat("-", 30))
}
