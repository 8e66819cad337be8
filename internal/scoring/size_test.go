package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSizeFitness_ZeroAndNegativeAreFullyFit(t *testing.T) {
	for _, size := range []float64{0, -1, -1e9, math.NaN()} {
		got := ComputeSizeFitness(size)
		require.Len(t, got, 4)
		for class, v := range got {
			assert.Equalf(t, 1.0, v, "size=%v class=%s", size, class)
		}
	}
}

func TestComputeSizeFitness_AtOrAboveMaxIsZero(t *testing.T) {
	for _, h := range HardwareThresholds {
		for _, size := range []float64{h.Threshold.MaxMB, h.Threshold.MaxMB + 1, 1e12} {
			got := ComputeSizeFitness(size)
			assert.Equalf(t, 0.0, got[h.Class], "size=%v class=%s", size, h.Class)
		}
	}
}

func TestComputeSizeFitness_KnownPoints(t *testing.T) {
	got := ComputeSizeFitness(100)
	assert.Equal(t, 0.5, got[RaspberryPi])
	assert.Equal(t, 0.8, got[JetsonNano])
	assert.Equal(t, 0.98, got[DesktopPC])
	assert.Equal(t, 1.0, got[AWSServer])

	assert.Equal(t, 0.9, ComputeSizeFitness(20)[RaspberryPi])
	assert.Equal(t, 0.0, ComputeSizeFitness(500)[JetsonNano])

	big := ComputeSizeFitness(10000)
	assert.Equal(t, 0.0, big[RaspberryPi])
	assert.Equal(t, 0.0, big[JetsonNano])
	assert.Equal(t, 0.0, big[DesktopPC])
	assert.Equal(t, 0.8, big[AWSServer])
}

func TestComputeSizeFitness_MonotonicPerClass(t *testing.T) {
	prev := ComputeSizeFitness(0)
	for size := 0.0; size <= 60000; size += 37.5 {
		cur := ComputeSizeFitness(size)
		for class, v := range cur {
			require.LessOrEqualf(t, v, prev[class], "class %s increased at size %v", class, size)
			require.GreaterOrEqual(t, v, 0.0)
			require.LessOrEqual(t, v, 1.0)
		}
		prev = cur
	}
}

func TestComputeSizeFitness_HasAllClasses(t *testing.T) {
	got := ComputeSizeFitness(250)
	for _, class := range []HardwareClass{RaspberryPi, JetsonNano, DesktopPC, AWSServer} {
		_, ok := got[class]
		assert.Truef(t, ok, "missing %s", class)
	}
}
