//go:build tinygo && microbit_v2

package board

import (
	"device/nrf"
	"errors"
	"machine"
	"runtime/interrupt"
	"sync/atomic"

	"tinygo.org/x/drivers/lsm303agr"

	"github.com/fcurrie/microbit-led-golang/internal/animation"
	"github.com/fcurrie/microbit-led-golang/internal/compass"
	"github.com/fcurrie/microbit-led-golang/internal/display"
	"github.com/fcurrie/microbit-led-golang/internal/periodic"
	"github.com/fcurrie/microbit-led-golang/internal/punch"
	"github.com/fcurrie/microbit-led-golang/internal/scroll"
	"github.com/fcurrie/microbit-led-golang/internal/sensor"
	"github.com/fcurrie/microbit-led-golang/internal/shared"
	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// ErrHardwareUnavailable is returned when a peripheral does not respond
var ErrHardwareUnavailable = errors.New("board: hardware unavailable")

// Firmware selects what the device shows
type Firmware struct {
	Mode      types.Mode
	Message   string
	Capacity  int
	RefreshHz int
	TickHz    int
	// PollTimeoutTicks bounds how long a sensor may stay silent
	PollTimeoutTicks int
}

var (
	state shared.State

	lastReport struct {
		peak  atomic.Int32
		fresh atomic.Bool
	}

	rowPins = [types.Rows]machine.Pin{
		machine.LED_ROW_1, machine.LED_ROW_2, machine.LED_ROW_3, machine.LED_ROW_4, machine.LED_ROW_5,
	}
	colPins = [types.Cols]machine.Pin{
		machine.LED_COL_1, machine.LED_COL_2, machine.LED_COL_3, machine.LED_COL_4, machine.LED_COL_5,
	}
)

// pinLines drives the matrix straight from the GPIO pins. Rows are active
// high, columns active low.
type pinLines struct{}

func (pinLines) Drive(row int, cells [types.Cols]bool) error {
	for _, p := range rowPins {
		p.Low()
	}
	for i, p := range colPins {
		p.Set(!cells[i])
	}
	rowPins[row].High()
	return nil
}

func (pinLines) Blank() error {
	for _, p := range rowPins {
		p.Low()
	}
	for _, p := range colPins {
		p.High()
	}
	return nil
}

func (l pinLines) Close() error { return l.Blank() }

// timerSource is TIMER1 in one-shot mode: COMPARE0 stops the timer and
// Rearm starts it again from zero
type timerSource struct{}

func (timerSource) Pending() bool { return nrf.TIMER1.EVENTS_COMPARE[0].Get() != 0 }
func (timerSource) ClearEvent()   { nrf.TIMER1.EVENTS_COMPARE[0].Set(0) }
func (timerSource) Rearm() {
	nrf.TIMER1.TASKS_CLEAR.Set(1)
	nrf.TIMER1.TASKS_START.Set(1)
}

// rtcSource is RTC0 ticking periodically off the 32768 Hz clock
type rtcSource struct{}

func (rtcSource) Pending() bool { return nrf.RTC0.EVENTS_TICK.Get() != 0 }
func (rtcSource) ClearEvent()   { nrf.RTC0.EVENTS_TICK.Set(0) }
func (rtcSource) Rearm()        {}

// sampler reads the LSM303AGR for the selected mode. It runs in the idle
// loop, never on the tick path.
var (
	sampler func() (types.Reading, error)
	latest  sensor.Latest
)

func readMag(d *lsm303agr.Device) func() (types.Reading, error) {
	return func() (types.Reading, error) {
		x, y, z, err := d.ReadMagneticField()
		return types.Reading{X: x, Y: y, Z: z}, err
	}
}

// readAccel reports milli-g; the driver reports micro-g
func readAccel(d *lsm303agr.Device) func() (types.Reading, error) {
	return func() (types.Reading, error) {
		x, y, z, err := d.ReadAcceleration()
		return types.Reading{X: x / 1000, Y: y / 1000, Z: z / 1000}, err
	}
}

// Start configures the matrix, both interrupt sources and the animation
// for fw, then enables the interrupts. It returns once the device runs on
// interrupts alone.
func Start(fw Firmware) error {
	for _, p := range rowPins {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	}
	for _, p := range colPins {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	}
	lines := pinLines{}
	lines.Blank()

	a, err := firmwareAnimator(fw)
	if err != nil {
		return err
	}
	prescaler, err := periodic.Prescaler(fw.TickHz)
	if err != nil {
		return err
	}

	if err := state.Install(display.New(lines, timerSource{}), rtcSource{}, a); err != nil {
		return err
	}

	// TIMER1 counts at 1 MHz and stops itself on COMPARE0.
	slot := display.SlotDuration(fw.RefreshHz)
	nrf.TIMER1.MODE.Set(nrf.TIMER_MODE_MODE_Timer)
	nrf.TIMER1.BITMODE.Set(nrf.TIMER_BITMODE_BITMODE_32Bit)
	nrf.TIMER1.PRESCALER.Set(4)
	nrf.TIMER1.CC[0].Set(uint32(slot.Microseconds()))
	nrf.TIMER1.SHORTS.Set(nrf.TIMER_SHORTS_COMPARE0_STOP)
	nrf.TIMER1.INTENSET.Set(nrf.TIMER_INTENSET_COMPARE0)

	nrf.RTC0.PRESCALER.Set(prescaler)
	nrf.RTC0.INTENSET.Set(nrf.RTC_INTENSET_TICK)

	refreshIRQ := interrupt.New(nrf.IRQ_TIMER1, func(interrupt.Interrupt) {
		state.HandleRefresh()
	})
	tickIRQ := interrupt.New(nrf.IRQ_RTC0, func(interrupt.Interrupt) {
		state.HandleTick()
	})
	refreshIRQ.Enable()
	tickIRQ.Enable()

	nrf.RTC0.TASKS_START.Set(1)
	nrf.TIMER1.TASKS_START.Set(1)
	return nil
}

// Sample performs one sensor transfer and hands the reading to the tick
// path. It does nothing in modes without a sensor. Call it from the idle
// loop at about the sensor data rate.
func Sample() {
	if sampler == nil {
		return
	}
	latest.Publish(sampler())
}

// TakeReport returns the latest punch result, once
func TakeReport() (int32, bool) {
	if lastReport.fresh.Swap(false) {
		return lastReport.peak.Load(), true
	}
	return 0, false
}

func firmwareAnimator(fw Firmware) (animation.Animator, error) {
	switch fw.Mode {
	case types.ModeScroll:
		return scroll.New(fw.Message, fw.Capacity), nil
	case types.ModeRoulette:
		return animation.NewRoulette(), nil
	}

	d, err := openSensor()
	if err != nil {
		return nil, err
	}
	p, err := sensor.NewPoller(&latest, fw.PollTimeoutTicks)
	if err != nil {
		return nil, err
	}
	switch fw.Mode {
	case types.ModeCompass:
		sampler = readMag(d)
		return compass.NewAnimator(p, compass.Calibration{}), nil
	case types.ModePunch:
		sampler = readAccel(d)
		m, err := punch.New(p, punch.Config{
			Threshold:   300,
			WindowTicks: 10,
			HoldTicks:   32,
			Ready:       compass.Arrow(compass.North),
			OnReport: func(peak int32) {
				lastReport.peak.Store(peak)
				lastReport.fresh.Store(true)
			},
		})
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, errors.New("board: unknown mode " + string(fw.Mode))
	}
}

// openSensor brings up the LSM303AGR on the internal I2C bus
func openSensor() (*lsm303agr.Device, error) {
	bus := machine.I2C0
	if err := bus.Configure(machine.I2CConfig{SCL: machine.P0_08, SDA: machine.P0_16}); err != nil {
		return nil, err
	}
	d := lsm303agr.New(bus)
	if !d.Connected() {
		return nil, ErrHardwareUnavailable
	}
	if err := d.Configure(lsm303agr.Configuration{
		AccelDataRate: lsm303agr.ACCEL_DATARATE_10HZ,
		AccelRange:    lsm303agr.ACCEL_RANGE_8G,
		MagDataRate:   lsm303agr.MAG_DATARATE_10HZ,
	}); err != nil {
		return nil, err
	}
	return d, nil
}
