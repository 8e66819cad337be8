package scoring

import "math"

// HardwareClass names a deployment target used for size compatibility.
type HardwareClass string

const (
	RaspberryPi HardwareClass = "raspberry_pi"
	JetsonNano  HardwareClass = "jetson_nano"
	DesktopPC   HardwareClass = "desktop_pc"
	AWSServer   HardwareClass = "aws_server"
)

// SizeThreshold is the MB range over which fitness falls from 1 to 0.
type SizeThreshold struct {
	MinMB float64
	MaxMB float64
}

// HardwareThresholds holds the fixed per-class ranges, in report order.
var HardwareThresholds = []struct {
	Class     HardwareClass
	Threshold SizeThreshold
}{
	{RaspberryPi, SizeThreshold{MinMB: 0, MaxMB: 200}},
	{JetsonNano, SizeThreshold{MinMB: 0, MaxMB: 500}},
	{DesktopPC, SizeThreshold{MinMB: 0, MaxMB: 5000}},
	{AWSServer, SizeThreshold{MinMB: 0, MaxMB: 50000}},
}

// SizeFitness maps each hardware class to a fitness in [0,1].
type SizeFitness map[HardwareClass]float64

// ComputeSizeFitness maps an artifact size in MB onto a fitness per hardware
// class. Each class is linear between its thresholds, 1.0 at or below MinMB
// and 0.0 at or above MaxMB. Values are rounded to two decimals. Negative
// and NaN sizes are treated as zero.
func ComputeSizeFitness(sizeMB float64) SizeFitness {
	if math.IsNaN(sizeMB) || sizeMB < 0 {
		sizeMB = 0
	}
	out := make(SizeFitness, len(HardwareThresholds))
	for _, h := range HardwareThresholds {
		out[h.Class] = round2(h.Threshold.fitness(sizeMB))
	}
	return out
}

func (t SizeThreshold) fitness(sizeMB float64) float64 {
	switch {
	case sizeMB <= t.MinMB:
		return 1.0
	case sizeMB >= t.MaxMB:
		return 0.0
	default:
		return math.Max(0, 1.0-(sizeMB-t.MinMB)/(t.MaxMB-t.MinMB))
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
