package importer

import (
	"fmt"
	"strings"
)

// ValidationError bundles every invariant violation found in a plan file.
type ValidationError struct {
	File     string
	Problems []error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "plan file %s has %d problem(s):", e.File, len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  - ")
		b.WriteString(p.Error())
	}
	return b.String()
}
