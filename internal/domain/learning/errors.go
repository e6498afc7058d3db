package learning

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPrerequisiteCycle = errors.New("prerequisite cycle")
	ErrEmptyGraph        = errors.New("empty graph")
	ErrInvalidPayload    = errors.New("invalid graph payload")
)

// CycleError reports the nodes left unordered by a prerequisite cycle.
type CycleError struct {
	Skill string
	Nodes []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s among [%s]", e.Skill, ErrPrerequisiteCycle.Error(), strings.Join(e.Nodes, ", "))
}

func (e *CycleError) Unwrap() error { return ErrPrerequisiteCycle }
