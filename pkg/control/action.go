package control

// NullAction does nothing. It is the exit vertex of bond templates.
type NullAction struct {
	ActionBase
}

// NewNullAction creates a no-op action.
func NewNullAction(id string) (*NullAction, error) {
	base, err := NewActionBase(id, Access{})
	if err != nil {
		return nil, err
	}
	return &NullAction{ActionBase: base}, nil
}

func (a *NullAction) Process() error { return nil }
