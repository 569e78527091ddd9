package cooling

import (
	"fmt"
	"math"
	"time"
)

// MaxCurvePoints bounds the samples returned by Curve.
const MaxCurvePoints = 10000

// Point is one sample of the beverage temperature.
type Point struct {
	Elapsed     time.Duration
	Temperature float64
}

// Curve samples the beverage temperature of a cooled result every step,
// from start at zero to target at the cooling time. The last point is
// always the cooling time itself.
func Curve(r Result, start, target float64, step time.Duration) ([]Point, error) {
	if !r.Reachable() {
		return nil, fmt.Errorf("%w: outcome is %s", ErrNotCooled, r.Outcome)
	}
	if step <= 0 {
		return nil, fmt.Errorf("%w: %v must be > 0", ErrInvalidStep, step)
	}
	total := r.CoolingTime()
	if n := int64(total / step); n >= MaxCurvePoints {
		return nil, fmt.Errorf("%w: %v yields more than %d points over %v", ErrInvalidStep, step, MaxCurvePoints, total)
	}

	temp := func(elapsed time.Duration) float64 {
		t := elapsed.Seconds()
		switch r.Variant {
		case VariantNewton:
			bath := r.Derived.BathTemperature
			return bath + (start-bath)*math.Exp(-r.Derived.CoolingRateConstant*t)
		default:
			// Constant heat flux: the temperature falls linearly.
			return start - (start-target)*t/r.CoolingTimeSeconds
		}
	}

	points := make([]Point, 0, int(total/step)+2)
	points = append(points, Point{Elapsed: 0, Temperature: start})
	for elapsed := step; elapsed < total; elapsed += step {
		points = append(points, Point{Elapsed: elapsed, Temperature: temp(elapsed)})
	}
	return append(points, Point{Elapsed: total, Temperature: target}), nil
}
