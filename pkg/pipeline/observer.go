package pipeline

import (
	"log"

	"gonum.org/v1/gonum/mat"

	"imagepca/internal/models"
	"imagepca/pkg/report"
)

// Event describes a completed stage. Matrix and Values are owned by the
// pipeline and must not be modified by the observer.
type Event struct {
	Stage  models.Stage
	Matrix mat.Matrix
	Values []float64
}

// Observer receives an Event after each stage. It runs synchronously on the
// goroutine that called Run.
type Observer func(Event)

// LogObserver returns an Observer that prints a short preview of every stage
func LogObserver(logger *log.Logger) Observer {
	return func(e Event) {
		switch e.Stage {
		case models.StageExtract:
			rows, cols := e.Matrix.Dims()
			logger.Printf("Extracted %dx%d observation matrix. First values: %s", rows, cols, report.FirstValues(e.Matrix, 5))
		case models.StageCenter:
			logger.Printf("Mean: %s", report.Vector(e.Values))
			logger.Printf("Centered data. First values: %s", report.FirstValues(e.Matrix, 5))
		case models.StageCovariance:
			logger.Printf("Covariance matrix: %s", report.Corner(e.Matrix))
		case models.StageEigen:
			logger.Printf("Eigenvalues: %s", report.Vector(e.Values))
			logger.Printf("Eigenvectors: %s", report.Corner(e.Matrix))
		case models.StageProject:
			logger.Printf("Transformed data. First values: %s", report.FirstValues(e.Matrix, 5))
		case models.StageReconstruct:
			logger.Printf("Reconstruction complete")
		}
	}
}
