package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/eevee/raidne/engine/things"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks each compiled prototype against the rules for its class
// and builds the catalog.
func validate(protos []things.Prototype, ve *ValidationError) (*things.Catalog, error) {
	for _, p := range protos {
		if err := p.Validate(); err != nil {
			ve.Errors = append(ve.Errors, err.Error())
		}
	}

	spawnable := 0
	for _, p := range protos {
		if p.Class() != things.Architecture && p.SpawnWeight > 0 {
			spawnable++
		}
	}
	if spawnable == 0 && len(ve.Errors) == 0 {
		ve.Warnings = append(ve.Warnings, "nothing can spawn; floors will be empty")
	}

	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if len(ve.Errors) > 0 {
		return nil, ve
	}
	return things.NewCatalog(protos)
}
