package xmlgen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CopyXMLToOutput picks, among candidate intermediate files, the first one
// whose extension case-insensitively matches "xml" and copies it verbatim
// to the output path. With no candidates (or no XML candidate) the output
// path is returned unchanged and no file is created.
func CopyXMLToOutput(candidates []string, output string) (string, error) {
	for _, candidate := range candidates {
		if !strings.EqualFold(filepath.Ext(candidate), ".xml") {
			continue
		}
		content, err := os.ReadFile(candidate) // #nosec G304 -- candidate comes from the build pipeline
		if err != nil {
			return "", fmt.Errorf("read candidate %q: %w", candidate, err)
		}
		if err := os.WriteFile(output, content, 0o644); err != nil { // #nosec G306 -- generated artifact
			return "", fmt.Errorf("copy to %q: %w", output, err)
		}
		return output, nil
	}
	return output, nil
}
