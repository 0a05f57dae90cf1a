package yamlreader

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/narendrapsgim/rasa/internal/logging"
)

// LooksLikeNLUFile reports whether path is plausibly a YAML training-data
// file: a .yml or .yaml extension and a top-level `nlu` key. Files that
// cannot be read or parsed are not training data; the failure is logged
// and the answer is false rather than an error, so directory scans keep
// going.
func LooksLikeNLUFile(path string) bool {
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
	default:
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logging.New("yamlreader").Error("cannot inspect candidate training data file",
			"path", path, "error", err)
		return false
	}

	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		logging.New("yamlreader").Error("candidate training data file is not valid yaml",
			"path", path, "error", err)
		return false
	}

	_, ok := doc[KeyNLU]
	return ok
}
