package graph

import "errors"

var (
	// ErrConfig is returned for schema-level contradictions: duplicate
	// node names, unknown component types, clashing featurizer aliases,
	// more than one tokenizer.
	ErrConfig = errors.New("graph: invalid configuration")

	// ErrUnknownComponent is returned when a pipeline config references
	// a component name missing from the registry.
	ErrUnknownComponent = errors.New("graph: unknown component")
)
