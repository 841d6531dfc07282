package trajectory

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
)

// DefaultFile is the input read when no path is given.
const DefaultFile = "trajectoryData.json"

// Set is the decoded content of a trajectory file.
type Set struct {
	Objects    []string  `json:"Objects"`
	Dimensions int       `json:"Dimensions"`
	Trajectory []float64 `json:"Trajectory"`
}

// rawSet distinguishes absent keys from zero values.
type rawSet struct {
	Objects    []string  `json:"Objects"`
	Dimensions *int      `json:"Dimensions"`
	Trajectory []float64 `json:"Trajectory"`
}

// Load reads and validates the trajectory file at path.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFile, err)
	}
	set, err := readSet(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// readSet decodes and validates r, closing it once decoding is finished
// whatever the outcome.
func readSet(rc io.ReadCloser) (*Set, error) {
	set, err := func() (*Set, error) {
		defer rc.Close()
		return Decode(rc)
	}()
	if err != nil {
		return nil, err
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// Decode parses a trajectory document. It checks that the required keys
// are present but does not validate their values.
func Decode(r io.Reader) (*Set, error) {
	var raw rawSet
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFile, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after the trajectory document", ErrMalformedFile)
	}

	var missing []string
	if raw.Objects == nil {
		missing = append(missing, "Objects")
	}
	if raw.Dimensions == nil {
		missing = append(missing, "Dimensions")
	}
	if raw.Trajectory == nil {
		missing = append(missing, "Trajectory")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required keys %v", ErrMalformedFile, missing)
	}

	return &Set{
		Objects:    raw.Objects,
		Dimensions: *raw.Dimensions,
		Trajectory: raw.Trajectory,
	}, nil
}

// Validate checks the invariants a set must hold before it can be reshaped.
func (s *Set) Validate() error {
	stride, err := strideOf(len(s.Objects), s.Dimensions)
	if err != nil {
		return err
	}
	if dups := lo.FindDuplicates(s.Objects); len(dups) > 0 {
		return fmt.Errorf("%w: duplicate object names %q", ErrInvalidInput, dups)
	}
	if len(s.Trajectory)%stride != 0 {
		return fmt.Errorf("%w: %d trajectory points are not divisible by %d objects times %d dimensions",
			ErrInvalidInput, len(s.Trajectory), len(s.Objects), s.Dimensions)
	}
	return nil
}

// SampleCount is the number of time samples per object, or 0 for an
// invalid set.
func (s *Set) SampleCount() int {
	stride, err := strideOf(len(s.Objects), s.Dimensions)
	if err != nil {
		return 0
	}
	return len(s.Trajectory) / stride
}

// Reshape deinterleaves the raw stream into per-object series.
func (s *Set) Reshape() (*Trajectories, error) {
	return Deinterleave(s.Trajectory, len(s.Objects), s.Dimensions)
}
