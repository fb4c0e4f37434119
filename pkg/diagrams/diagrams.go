// Package diagrams registers every built-in diagram kind. Importing it
// installs their detectors and lazy loaders into the registry:
//
//	import _ "github.com/scrawl-labs/scrawl/pkg/diagrams"
//
// Definitions stay unloaded until the first render of each kind resolves
// them. Programs embedding a subset import the kind packages directly
// instead.
package diagrams

import (
	_ "github.com/scrawl-labs/scrawl/pkg/diagrams/flowchart"
	_ "github.com/scrawl-labs/scrawl/pkg/diagrams/gantt"
	_ "github.com/scrawl-labs/scrawl/pkg/diagrams/info"
	_ "github.com/scrawl-labs/scrawl/pkg/diagrams/pie"
	_ "github.com/scrawl-labs/scrawl/pkg/diagrams/sequence"
)
