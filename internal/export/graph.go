package export

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-md2adapt/internal/adapt"
	"github.com/goliatone/go-md2adapt/internal/identity"
)

var (
	ErrInvalidID     = errors.New("export: id is not 24 hex characters")
	ErrDuplicateID   = errors.New("export: duplicate id")
	ErrMissingParent = errors.New("export: parent id not found")
)

// ValidateGraph checks the cross references of a bundle: every id except the
// course id is 24 hex characters, ids are unique and every _parentId points
// at an exported document.
func ValidateGraph(bundle *Bundle) error {
	if bundle == nil {
		return errors.New("export: nil bundle")
	}

	ids := map[string]struct{}{adapt.CourseID: {}}
	var invalid, duplicate []string
	objects := bundle.objects()
	for _, obj := range objects {
		id := stringField(obj, "_id")
		if !identity.IsHex24(id) {
			invalid = append(invalid, fmt.Sprintf("%q", id))
		}
		if _, seen := ids[id]; seen {
			duplicate = append(duplicate, id)
		}
		ids[id] = struct{}{}
	}

	missing := map[string]struct{}{}
	for _, obj := range objects {
		parent := stringField(obj, "_parentId")
		if _, ok := ids[parent]; !ok {
			missing[parent] = struct{}{}
		}
	}

	var errs []error
	if len(invalid) > 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidID, strings.Join(invalid, ", ")))
	}
	if len(duplicate) > 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateID, strings.Join(duplicate, ", ")))
	}
	if len(missing) > 0 {
		keys := make([]string, 0, len(missing))
		for key := range missing {
			keys = append(keys, fmt.Sprintf("%q", key))
		}
		sort.Strings(keys)
		errs = append(errs, fmt.Errorf("%w: %s", ErrMissingParent, strings.Join(keys, ", ")))
	}
	return errors.Join(errs...)
}

// objects returns every document that carries a parent, in file order.
func (b *Bundle) objects() []Object {
	out := make([]Object, 0, len(b.ContentObjects)+len(b.Articles)+len(b.Blocks)+len(b.Components))
	out = append(out, b.ContentObjects...)
	out = append(out, b.Articles...)
	out = append(out, b.Blocks...)
	return append(out, b.Components...)
}

func stringField(obj Object, key string) string {
	value, _ := obj[key].(string)
	return value
}
