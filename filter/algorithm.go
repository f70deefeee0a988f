package filter

import (
	"strings"

	"github.com/pkg/errors"
)

// Algorithm selects which filter the pipeline runs. It is fixed for the
// whole run.
type Algorithm int

const (
	// None copies samples through unchanged (thresholding still applies).
	None Algorithm = iota
	// Gauss convolves with a normalized Gaussian kernel.
	Gauss
	// Sobel combines fixed X/Y gradient kernels into a magnitude.
	Sobel
	// Custom convolves with a user-supplied parsed matrix.
	Custom
	// Avg convolves with a flat box kernel.
	Avg
)

// ParseAlgorithm maps a case-insensitive CLI name to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case "gauss":
		return Gauss, nil
	case "sobel":
		return Sobel, nil
	case "custom":
		return Custom, nil
	case "avg":
		return Avg, nil
	case "none":
		return None, nil
	}
	return None, errors.Errorf("unknown algorithm %s", name)
}

func (a Algorithm) String() string {
	switch a {
	case Gauss:
		return "gauss"
	case Sobel:
		return "sobel"
	case Custom:
		return "custom"
	case Avg:
		return "avg"
	case None:
		return "none"
	}
	return "invalid"
}
