package repositories

type ErrNotFound struct {
	Slot string
}

func (e *ErrNotFound) Error() string {
	if e.Slot == "" {
		return "not found"
	}
	return "save " + e.Slot + " not found"
}

func IsNotFound(err error) bool {
	_, ok := err.(*ErrNotFound)
	return ok
}
