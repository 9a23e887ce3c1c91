package renderer

import "math"

// TimeStep is how far the animation clock moves per presented frame.
const TimeStep = 0.005

// Clock is the render loop's time accumulator. It advances by a fixed step
// per frame and is independent of wall time.
type Clock struct {
	time   float64
	frames int
}

func (c *Clock) Time() float64 { return c.time }

func (c *Clock) Frames() int { return c.frames }

func (c *Clock) Advance() {
	c.time += TimeStep
	c.frames++
}

// AnimationValue maps t onto [0, 1] with sin(t)*0.5+0.5.
func AnimationValue(t float64) float32 {
	return float32(math.Sin(t)*0.5 + 0.5)
}
