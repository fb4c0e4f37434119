package diagram

import (
	"strings"

	"github.com/scrawl-labs/scrawl/pkg/core"
)

// DetectType determines the diagram type of text by probing registered
// detectors in registration order. The probe runs on a copy with front
// matter, directives and comments stripped, so embedded metadata never
// influences detection; the text itself is not modified. Returns an
// *UnknownDiagramError when no detector claims the text.
func DetectType(text string, cfg *core.Config) (string, error) {
	probe := stripComments(removeDirectives(stripFrontmatter(normalizeText(text))))

	registryMu.RLock()
	entries := make([]detectorEntry, len(detectors))
	copy(entries, detectors)
	registryMu.RUnlock()

	for _, e := range entries {
		if e.fn(probe, cfg) {
			return e.id, nil
		}
	}

	return "", &UnknownDiagramError{
		Text:      firstLine(strings.TrimSpace(probe)),
		Available: knownTypes(),
	}
}
