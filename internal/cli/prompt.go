package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// inputDateLayout es el formato que teclea el usuario (dd-mm-aaaa); se
// convierte a fecha calendario antes de tocar el dominio.
const inputDateLayout = "02-01-2006"

// readLine imprime el prompt y devuelve la línea sin espacios extremos.
// En EOF marca sh.eof y devuelve "" — los loops de reintento cortan ahí.
func (sh *Shell) readLine(prompt string) string {
	if sh.eof {
		return ""
	}
	fmt.Fprint(sh.out, prompt)
	line, err := sh.in.ReadString('\n')
	if err != nil && line == "" {
		sh.eof = true
		return ""
	}
	return strings.TrimSpace(line)
}

// readInt64 reintenta hasta obtener un entero válido.
func (sh *Shell) readInt64(prompt string) int64 {
	for {
		raw := sh.readLine(prompt)
		if sh.eof {
			return 0
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			sh.errorf("Invalid input, please enter a number.")
			sh.log.Error().Str("input", raw).Msg("non numeric input")
			continue
		}
		return n
	}
}

// readAge reintenta hasta obtener un entero no negativo.
func (sh *Shell) readAge(prompt string) int {
	for {
		n := sh.readInt64(prompt)
		if sh.eof {
			return 0
		}
		if n < 0 {
			sh.errorf("Age cannot be negative.")
			continue
		}
		return int(n)
	}
}

// readDate reintenta hasta obtener una fecha dd-mm-aaaa válida.
func (sh *Shell) readDate(prompt string) time.Time {
	for {
		raw := sh.readLine(prompt)
		if sh.eof {
			return time.Time{}
		}
		d, err := time.ParseInLocation(inputDateLayout, raw, time.UTC)
		if err != nil {
			sh.errorf("Wrong date format, use dd-mm-yyyy. Example: 05-06-2025.")
			sh.log.Error().Str("input", raw).Msg("invalid date input")
			continue
		}
		return d
	}
}

// confirm pregunta y/n con reintento.
func (sh *Shell) confirm(prompt string) bool {
	for {
		raw := strings.ToLower(sh.readLine(prompt + " (y/n): "))
		if sh.eof {
			return false
		}
		switch raw {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		sh.errorf("Invalid answer, please enter 'y' or 'n'.")
	}
}

// readOptional devuelve nil si el usuario deja el campo en blanco
// (= mantener el valor actual).
func (sh *Shell) readOptional(prompt string) *string {
	raw := sh.readLine(prompt)
	if raw == "" {
		return nil
	}
	return &raw
}
