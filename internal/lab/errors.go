package lab

import "errors"

// Domain errors for lab events.
var (
	// ErrChemicalAdded indicates a chemical was already added; a chemical can
	// be added at most once per session.
	ErrChemicalAdded = errors.New("lab: chemical already added")

	// ErrUnknownChemical indicates a chemical the experiment does not list.
	ErrUnknownChemical = errors.New("lab: unknown chemical")

	// ErrStepConditions indicates an advance attempt while the current step's
	// completion conditions are not all met.
	ErrStepConditions = errors.New("lab: step conditions not met")

	// ErrExperimentDone indicates an event on a finished experiment.
	ErrExperimentDone = errors.New("lab: experiment complete")

	// ErrTargetOutOfRange indicates a heater target outside the permitted range.
	ErrTargetOutOfRange = errors.New("lab: target temperature out of range")

	// ErrInvalidStirSpeed indicates a stir setting outside off..high.
	ErrInvalidStirSpeed = errors.New("lab: invalid stir speed")
)
