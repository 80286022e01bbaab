package easing

import "fmt"

// Func maps normalized progress in [0,1] to an eased value in [0,1].
// Implementations do not clamp: callers must keep t inside [0,1].
type Func func(t float64) float64

// Linear returns t unchanged
func Linear(t float64) float64 {
	return t
}

// InOutQuad accelerates until the midpoint, then decelerates
func InOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - pow(-2*t+2, 2)/2
}

// InOutCubic is a steeper variant of InOutQuad
func InOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - pow(-2*t+2, 3)/2
}

// OutQuart starts fast and settles slowly (used for entrances)
func OutQuart(t float64) float64 {
	return 1 - pow(1-t, 4)
}

// InQuart starts slowly and finishes fast (used for exits)
func InQuart(t float64) float64 {
	return t * t * t * t
}

// Clamp01 limits t to [0,1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// ByName resolves an easing curve by its configuration name.
func ByName(name string) (Func, error) {
	switch name {
	case "", "linear":
		return Linear, nil
	case "easeInOutQuad":
		return InOutQuad, nil
	case "easeInOutCubic":
		return InOutCubic, nil
	case "easeOutQuart":
		return OutQuart, nil
	case "easeInQuart":
		return InQuart, nil
	default:
		return nil, fmt.Errorf("unknown easing %q", name)
	}
}

// pow calculates x^n
func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}
