package trajectory

// Dataset pairs object names with their reshaped trajectories.
type Dataset struct {
	Names        []string
	Trajectories *Trajectories
}

// Open loads, validates and reshapes the trajectory file at path.
func Open(path string) (*Dataset, error) {
	set, err := Load(path)
	if err != nil {
		return nil, err
	}
	traj, err := set.Reshape()
	if err != nil {
		return nil, err
	}
	return &Dataset{Names: set.Objects, Trajectories: traj}, nil
}

// IndexOf returns the index of the named object, or -1.
func (d *Dataset) IndexOf(name string) int {
	for i, n := range d.Names {
		if n == name {
			return i
		}
	}
	return -1
}
