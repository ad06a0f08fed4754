package export

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Files encodes the bundle as indented JSON keyed by file name. HTML in
// bodies is written as is.
func Files(bundle *Bundle) (map[string][]byte, error) {
	if bundle == nil {
		return nil, fmt.Errorf("export: nil bundle")
	}
	docs := map[string]any{
		FileContentObjects: nonNil(bundle.ContentObjects),
		FileArticles:       nonNil(bundle.Articles),
		FileBlocks:         nonNil(bundle.Blocks),
		FileComponents:     nonNil(bundle.Components),
		FileCourse:         bundle.Course,
	}

	files := make(map[string][]byte, len(docs))
	for _, name := range FileNames {
		data, err := encode(docs[name])
		if err != nil {
			return nil, fmt.Errorf("export: encode %s: %w", name, err)
		}
		files[name] = data
	}
	return files, nil
}

func encode(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func nonNil(objects []Object) []Object {
	if objects == nil {
		return []Object{}
	}
	return objects
}
