package services

import (
	"math/rand/v2"
	"sync"

	"tracking/internal/core/domain/model/shipment"
)

// Bounds of the total delivery time budget and of the transit share.
const (
	minTotalDeliveryTime = 55
	maxTotalDeliveryTime = 60
	minTransitProportion = 0.4
	maxTransitProportion = 0.5
)

// DurationAllocator is a domain service that partitions a randomly drawn
// total delivery time into the seven-stage time budget of a new shipment.
//
// The transit stage (index 3) takes a fixed random proportion of the
// total; the remainder is spread over the other six stages by normalized
// random weights. Naive proportional rounding can produce zero-length
// stages or a sum that misses the total, so the allocation runs two
// correction passes: floor every stage up to one tick, then push any
// surplus or deficit onto the largest stage. The result always satisfies
// the plan invariant (every entry >= 1, sum == total).
type DurationAllocator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewDurationAllocator creates an allocator drawing from the given source.
// The allocator serializes access to the source, so it is safe to share
// across goroutines.
func NewDurationAllocator(src rand.Source) *DurationAllocator {
	return &DurationAllocator{rng: rand.New(src)}
}

// Allocate draws a fresh stage plan. The plan's total lies in [55,60] ticks.
func (a *DurationAllocator) Allocate() shipment.StagePlan {
	a.mu.Lock()
	defer a.mu.Unlock()

	total := minTotalDeliveryTime + a.rng.IntN(maxTotalDeliveryTime-minTotalDeliveryTime+1)
	transitProp := minTransitProportion + a.rng.Float64()*(maxTransitProportion-minTransitProportion)
	transitTime := int(float64(total) * transitProp)
	restTime := total - transitTime

	// Six weights for the non-transit stages, normalized to restTime with
	// floor rounding; the rounding remainder goes to the largest share.
	weights := make([]float64, shipment.StageCount-1)
	weightSum := 0.0
	for i := range weights {
		weights[i] = a.rng.Float64()
		weightSum += weights[i]
	}
	if weightSum == 0 {
		for i := range weights {
			weights[i] = 1
		}
		weightSum = float64(len(weights))
	}

	partials := make([]int, shipment.StageCount-1)
	partialSum := 0
	for i, w := range weights {
		partials[i] = int(w / weightSum * float64(restTime))
		partialSum += partials[i]
	}
	if diff := restTime - partialSum; diff != 0 {
		partials[indexOfLargest(partials)] += diff
	}

	var durations [shipment.StageCount]int
	for i := range durations {
		switch {
		case i < int(shipment.StageInTransit):
			durations[i] = partials[i]
		case i == int(shipment.StageInTransit):
			durations[i] = transitTime
		default:
			durations[i] = partials[i-1]
		}
	}

	// First correction pass: no stage shorter than one tick.
	for i := range durations {
		if durations[i] < 1 {
			durations[i] = 1
		}
	}

	// Second pass: restore the exact total, absorbing the difference in the
	// currently largest stage.
	sum := 0
	for _, d := range durations {
		sum += d
	}
	if diff := total - sum; diff != 0 {
		durations[indexOfLargest(durations[:])] += diff
	}

	plan, err := shipment.NewStagePlan(durations)
	if err != nil {
		// The correction passes guarantee a valid plan; reaching this means
		// the algorithm itself is broken.
		panic(err)
	}
	return plan
}

func indexOfLargest(values []int) int {
	largest := 0
	for i, v := range values {
		if v > values[largest] {
			largest = i
		}
	}
	return largest
}
