package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// FileName is the npm project manifest.
const FileName = "package.json"

// PackageKey reads the top-level key of the package.json at path.
// It returns found=false when the key is absent. An unparsable manifest or
// a key whose value is not an object is an error.
func PackageKey(path, key string) (doc map[string]any, found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}
	return packageKey(data, path, key)
}

func packageKey(data []byte, path, key string) (map[string]any, bool, error) {
	if !gjson.ValidBytes(data) {
		return nil, false, fmt.Errorf("parsing %s: invalid JSON", path)
	}

	result := gjson.GetBytes(data, gjson.Escape(key))
	if !result.Exists() {
		return nil, false, nil
	}
	if !result.IsObject() {
		return nil, false, fmt.Errorf("%s: key %q must be an object, got %s", path, key, result.Type)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(result.Raw), &doc); err != nil {
		return nil, false, fmt.Errorf("parsing %q in %s: %w", key, path, err)
	}
	return doc, true, nil
}
