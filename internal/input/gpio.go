package input

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// GPIOLine reads an active-low momentary button wired between a pin and
// ground, using the pin's internal pull-up.
type GPIOLine struct {
	pin gpio.PinIn
}

// Pressed implements Line. A low level means pressed.
func (l *GPIOLine) Pressed() bool {
	return l.pin.Read() == gpio.Low
}

// Name returns the pin name
func (l *GPIOLine) Name() string {
	return l.pin.Name()
}

// OpenGPIOLines initializes the host drivers and configures both button
// pins as pulled-up inputs.
func OpenGPIOLines(button1Pin, button2Pin string) (*GPIOLine, *GPIOLine, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize host drivers: %w", err)
	}

	b1, err := openGPIOLine(button1Pin)
	if err != nil {
		return nil, nil, err
	}
	b2, err := openGPIOLine(button2Pin)
	if err != nil {
		return nil, nil, err
	}
	return b1, b2, nil
}

func openGPIOLine(name string) (*GPIOLine, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("gpio pin %q not found", name)
	}
	if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("failed to configure pin %s as input: %w", name, err)
	}
	return &GPIOLine{pin: pin}, nil
}
