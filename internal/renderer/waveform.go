package renderer

import "math"

// WaveformBars returns the bar heights (pixels) of the speaking indicator
// at frame. Every bar oscillates at its own speed; the result depends on
// nothing but frame and bar index.
func WaveformBars(frame, bars int) []float64 {
	if bars <= 0 {
		return nil
	}

	f := float64(frame)
	heights := make([]float64, bars)
	for i := range heights {
		fi := float64(i)
		speed := 0.3 + float64(i%5)*0.1
		heights[i] = 15 +
			math.Sin(f*speed+fi*0.5)*20 +
			math.Abs(math.Sin(f*0.1+fi*0.3))*12
	}
	return heights
}
