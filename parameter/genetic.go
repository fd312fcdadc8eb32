package parameter

import "time"

// Population defaults
const (
	// GAPopulationSize is the number of individuals per generation
	GAPopulationSize = 100

	// GACrossoverRate is the probability that a selected pair exchanges tails (0.0-1.0)
	GACrossoverRate = 0.5

	// GAEliteCount is the number of top individuals carried forward unmutated
	GAEliteCount = 2

	// GAEliteCopies is how many copies of each elite enter the next generation
	GAEliteCopies = 1

	// GAMaxGenerations caps a run when no other budget is given
	GAMaxGenerations = 1000

	// GALogEvery is the generation interval between progress lines
	GALogEvery = 10
)

// Threshold problem: count genes above a cutoff
const (
	ThresholdGenes        = 100
	ThresholdBound        = 100
	ThresholdCutoff       = 50
	ThresholdMutationRate = 0.2
)

// Maze walk problem
const (
	MazeWidth          = 15
	MazeHeight         = 11
	MazeBraiding       = 0.2
	MazeGenes          = 70
	MazeMutationRate   = 0.05
	MazePopulationSize = 1700
)

// Circle fit problem
const (
	CirclePanelWidth     = 400
	CirclePanelHeight    = 400
	CircleObstacles      = 30
	CircleMinRadius      = 5
	CircleMaxRadius      = 54
	CircleMutationRate   = 0.05
	CirclePopulationSize = 500
)

// Rastrigin problem: minimize the Rastrigin function over [-Bound, Bound]^Dimensions
const (
	RastriginDimensions     = 10
	RastriginBound          = 5.12
	RastriginStdDev         = 0.05
	RastriginMutationRate   = 0.1
	RastriginPopulationSize = 200
)

// Viewer
const (
	// ViewFrameInterval is the delay between animation frames (one generation per frame)
	ViewFrameInterval = 16 * time.Millisecond

	// ViewChimeDuration is the length of the improvement tone
	ViewChimeDuration = 50 * time.Millisecond

	// ViewChimeFrequency is the tone pitch in Hz
	ViewChimeFrequency = 880
)
