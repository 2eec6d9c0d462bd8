// Package identifier mints public registration identifiers.
package identifier

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"festregistry/internal/domain"
)

const defaultPrefix = "REG"

type generator struct {
	prefix string
}

// New returns the production IdentifierGenerator. Identifiers look like
// REG-000042-9F3A01BC: the internal row id ties the identifier to its
// registration, the uuid-derived suffix keeps it unguessable. Generation
// happens inside the insert transaction and the value is never rewritten.
func New() domain.IdentifierGenerator {
	return &generator{prefix: defaultPrefix}
}

func (g *generator) Generate(internalID int64) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%06d-%s", g.prefix, internalID, suffix)
}
