package navbar

// Placement is the position of the notification popover: as wide as the
// navbar and horizontally centered in the window.
type Placement struct {
	Width float64 `json:"width"`
	Left  float64 `json:"left"`
}

func ComputePlacement(navWidth, windowWidth float64) Placement {
	return Placement{
		Width: navWidth,
		Left:  (windowWidth * 0.5) - (navWidth * 0.5),
	}
}

// Reposition computes the popover placement for the given widths and hands
// it to the layout.
func (n *Navbar) Reposition(navWidth, windowWidth float64) Placement {
	placement := ComputePlacement(navWidth, windowWidth)

	if n.layout != nil {
		n.layout.Reposition(placement)
	}

	return placement
}
