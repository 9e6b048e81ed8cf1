package lexconf

import (
	"fmt"
	"strings"
)

// Validate checks the configuration before any source is read.
// It reports unknown processors, missing sources, options that do not
// belong to the input's processor and malformed equivalence settings.
func (c Configuration) Validate() error {
	if len(c.Inputs) == 0 {
		return InvalidError("inputs", "at least one input is required")
	}

	for i, inp := range c.Inputs {
		if err := inp.Validate(); err != nil {
			return wrapInput(i, err)
		}
	}

	for _, v := range c.Excludes {
		if !v.Valid() {
			return InvalidError("excludes", "empty CURIE")
		}
	}

	if c.Equivalence != nil {
		if err := c.Equivalence.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single input.
func (inp Input) Validate() error {
	if !inp.Processor.Valid() {
		return UnknownProcessorError(string(inp.Processor), inp.Source)
	}
	if strings.TrimSpace(inp.Source) == "" {
		return InvalidError("source", "source cannot be empty")
	}
	for _, v := range inp.Ancestors {
		if !v.Valid() {
			return InvalidError("ancestors", "empty CURIE")
		}
	}

	if inp.OBO != nil && inp.Processor != OBO {
		return optionsMismatch("obo", inp)
	}
	if inp.SFGA != nil && inp.Processor != SFGA {
		return optionsMismatch("sfga", inp)
	}
	if inp.Tabular != nil && inp.Processor != SSSLM && inp.Processor != Gilda {
		return optionsMismatch("tabular", inp)
	}

	switch inp.Processor {
	case SSSLM, Gilda:
		if len(inp.Ancestors) > 0 {
			return InvalidError(
				"ancestors",
				fmt.Sprintf("processor %s has no hierarchy", inp.Processor),
			)
		}
	case SFGA:
		if inp.SFGA == nil || strings.TrimSpace(inp.SFGA.Location) == "" {
			return InvalidError("sfga.location", "sfga input requires a location")
		}
	}
	return nil
}

// Validate checks equivalence settings.
func (e *Equivalence) Validate() error {
	var needsPriority bool
	for _, v := range e.Inputs {
		switch v.Kind {
		case SSSOMKind, OBOKind:
			needsPriority = true
		case PriorityKind:
		default:
			return InvalidError(
				"equivalence_configuration.inputs",
				fmt.Sprintf("unknown kind '%s'", v.Kind),
			)
		}
		if strings.TrimSpace(v.Source) == "" {
			return InvalidError(
				"equivalence_configuration.inputs", "source cannot be empty",
			)
		}
	}
	if needsPriority && len(e.Priority) == 0 {
		return InvalidError(
			"equivalence_configuration.priority",
			"priority is required for sssom and obo inputs",
		)
	}
	if e.MinConfidence < 0 || e.MinConfidence > 1 {
		return InvalidError(
			"equivalence_configuration.min_confidence",
			"confidence has to be between 0 and 1",
		)
	}
	return nil
}

func optionsMismatch(opt string, inp Input) error {
	return InvalidError(
		opt,
		fmt.Sprintf("options do not apply to processor %s", inp.Processor),
	)
}
