package av

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Orientation selects how the ladder's dimension pairs are assigned.
type Orientation int

const (
	Horizontal Orientation = iota + 1
	Vertical
)

// ParseOrientation accepts "horizontal" or "vertical" in any case.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	}
	return 0, fmt.Errorf("orientation: %w: %q", ErrInvalid, s)
}

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "HORIZONTAL"
	case Vertical:
		return "VERTICAL"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

func (o Orientation) MarshalJSON() ([]byte, error) {
	if o != Horizontal && o != Vertical {
		return nil, fmt.Errorf("orientation: %w: %d", ErrInvalid, int(o))
	}
	return json.Marshal(o.String())
}

func (o *Orientation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseOrientation(s)
	if err != nil {
		return err
	}
	*o = v
	return nil
}
