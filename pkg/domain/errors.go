package domain

import (
	"errors"
	"fmt"
)

// Configuration errors. They are raised while nodes and edges are declared
// and are always fatal.
var (
	// ErrIncompatibleRole is returned when a node is wired to a container kind its role may not touch.
	ErrIncompatibleRole = errors.New("incompatible role and container kind")
	// ErrOptionCount is returned when a decision is declared with an option count its logic does not support.
	ErrOptionCount = errors.New("invalid decision option count")
	// ErrReadShape is returned when a node that needs exactly one read container gets none or several.
	ErrReadShape = errors.New("invalid read container shape")
	// ErrUnknownVertex is returned when an edge references a node or container not declared in the graph.
	ErrUnknownVertex = errors.New("vertex not in graph")
	// ErrDuplicateVertex is returned when a node or container name is declared twice.
	ErrDuplicateVertex = errors.New("duplicate vertex")
	// ErrInvalidEdge is returned for control edges the graph cannot hold.
	ErrInvalidEdge = errors.New("invalid control edge")
	// ErrEmptyID is returned when a node or container is declared without a name.
	ErrEmptyID = errors.New("empty vertex id")
	// ErrOrdering is returned when a node needs arbitrary removal from a container that only releases its front.
	ErrOrdering = errors.New("container ordering does not allow this access")
)

// Runtime errors. They abort the run in which they occur.
var (
	// ErrNotFound is returned when a container is asked to remove an item or key it does not hold.
	ErrNotFound = errors.New("item not found in container")
	// ErrNoTarget is returned by a link container that has no bound target.
	ErrNoTarget = errors.New("link container has no target bound")
	// ErrOutOfRange is returned when a grid cell lies outside the grid.
	ErrOutOfRange = errors.New("cell out of range")
	// ErrOptionOutOfRange is returned when a decision chooses an option it did not declare.
	ErrOptionOutOfRange = errors.New("decision option out of range")
	// ErrValueType is returned when a container value does not have the type a node expects.
	ErrValueType = errors.New("unexpected value type")
	// ErrEmpty is returned when a node needs a value from an empty container.
	ErrEmpty = errors.New("container is empty")
	// ErrNotOnTop is returned when a stack is asked to remove items it holds below its top.
	ErrNotOnTop = errors.New("items are not on top of the stack")
)

// ConfigError describes a rejected node or edge declaration.
type ConfigError struct {
	Node      string
	Container string
	Err       error
	Reason    string
}

func (e *ConfigError) Error() string {
	msg := e.Err.Error()
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	switch {
	case e.Node != "" && e.Container != "":
		return fmt.Sprintf("node '%s' -> container '%s': %s", e.Node, e.Container, msg)
	case e.Node != "":
		return fmt.Sprintf("node '%s': %s", e.Node, msg)
	case e.Container != "":
		return fmt.Sprintf("container '%s': %s", e.Container, msg)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
