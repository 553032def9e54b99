package strip

// Driver pushes a frame to the physical strip.
type Driver interface {
	Show(f Frame) error
}

// Actuator owns the frame buffer and redraws it for a mapped position.
type Actuator struct {
	frame   Frame
	driver  Driver
	palette Palette
}

// NewActuator creates an actuator for a strip of numLeds pixels.
func NewActuator(numLeds int, driver Driver, palette Palette) *Actuator {
	return &Actuator{
		frame:   NewFrame(numLeds),
		driver:  driver,
		palette: palette,
	}
}

// Render clears the frame, lights the primary pixel with brightnessA and the
// mirrored pixel with brightnessB, and flushes the frame to the driver.
func (a *Actuator) Render(primary, mirrored, brightnessA, brightnessB int) error {
	a.frame.Clear()
	a.frame.Set(primary, a.palette.Gray(brightnessA))
	a.frame.Set(mirrored, a.palette.Gray(brightnessB))
	return a.driver.Show(a.frame)
}
