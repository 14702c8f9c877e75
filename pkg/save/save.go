// Package save emits the operation log: the ordered, replayable list of
// planned create and update requests that is the pipeline's actual product.
package save

import (
	"encoding/json"
	"io"

	"github.com/guangfu250923/fieldsync/internal/atomicfile"
	"github.com/guangfu250923/fieldsync/pkg/errors"
	"github.com/guangfu250923/fieldsync/pkg/reconcile"
)

// Emit serializes the plan's operations to path. Insertion order is
// preserved and request bodies stay structured, so a downstream replayer can
// inspect or amend them before applying. An empty plan emits a valid empty
// document: a successful run with nothing to do, which is distinct from an
// emission failure.
//
// The write is all-or-nothing; on failure the target file does not appear
// and a PersistenceError is returned.
func Emit(path string, plan *reconcile.Plan) error {
	operations := plan.Operations
	if operations == nil {
		operations = []reconcile.PlannedOperation{}
	}

	err := atomicfile.Write(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		// Station names and payloads are UTF-8 text; keep them literal.
		enc.SetEscapeHTML(false)
		return enc.Encode(operations)
	})
	return errors.WrapPersistence(path, err)
}
