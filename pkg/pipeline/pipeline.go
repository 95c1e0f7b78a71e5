// Package pipeline sequences the image PCA stages:
// extract -> center -> covariance -> eigendecompose -> project -> reconstruct.
//
// A run holds no state beyond its own matrices, so a single Pipeline may be
// used from several goroutines at once.
package pipeline

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/mat"

	"imagepca/internal/models"
	"imagepca/pkg/extraction"
	"imagepca/pkg/pca"
	"imagepca/pkg/reconstruction"
)

// Params holds the pipeline configuration.
type Params struct {
	// EigenOrder selects solver order (default) or descending eigenvalues.
	EigenOrder models.EigenOrder

	// Fill decides the unselected channels in single-channel mode.
	Fill models.FillPolicy

	// NumCores bounds parallelism of the row-parallel stages. Output is
	// identical for every value.
	NumCores int

	// Observer, if set, is called after each stage completes.
	Observer Observer
}

// Result is the output of one run together with its intermediate statistics.
type Result struct {
	Image             *image.RGBA
	Mean              []float64
	Covariance        *mat.SymDense
	Eigen             *pca.Eigen
	Transformed       *mat.Dense
	ExplainedVariance []float64
}

// Processor turns an image into its PCA rendering for one channel selection.
type Processor interface {
	Run(img image.Image, sel models.ChannelSelector) (*Result, error)
}

// Pipeline runs image PCA with fixed parameters.
type Pipeline struct {
	params Params
}

var _ Processor = (*Pipeline)(nil)

// NewPipeline creates a pipeline. A nil params uses the defaults.
func NewPipeline(params *Params) *Pipeline {
	p := &Pipeline{}
	if params != nil {
		p.params = *params
	}
	return p
}

// Run executes all stages on img for the given channel selector. The first
// failing stage aborts the run; its error is wrapped in *models.StageError.
func (p *Pipeline) Run(img image.Image, sel models.ChannelSelector) (*Result, error) {
	if img == nil {
		return nil, &models.StageError{Stage: models.StageExtract, Err: fmt.Errorf("nil image: %w", models.ErrInvalidInput)}
	}
	numCores := p.params.NumCores
	bounds := img.Bounds()

	observations, err := extraction.Extract(img, sel, numCores)
	if err != nil {
		return nil, &models.StageError{Stage: models.StageExtract, Err: err}
	}
	p.notify(Event{Stage: models.StageExtract, Matrix: observations})

	centered, mean, err := pca.Center(observations)
	if err != nil {
		return nil, &models.StageError{Stage: models.StageCenter, Err: err}
	}
	p.notify(Event{Stage: models.StageCenter, Matrix: centered, Values: mean})

	cov, err := pca.Covariance(centered, numCores)
	if err != nil {
		return nil, &models.StageError{Stage: models.StageCovariance, Err: err}
	}
	p.notify(Event{Stage: models.StageCovariance, Matrix: cov})

	eig, err := pca.Eigendecompose(cov, p.params.EigenOrder)
	if err != nil {
		return nil, &models.StageError{Stage: models.StageEigen, Err: err}
	}
	p.notify(Event{Stage: models.StageEigen, Matrix: eig.Vectors, Values: eig.Values})

	transformed, err := pca.Project(centered, eig.Vectors, numCores)
	if err != nil {
		return nil, &models.StageError{Stage: models.StageProject, Err: err}
	}
	p.notify(Event{Stage: models.StageProject, Matrix: transformed})

	reconstructor := reconstruction.NewReconstructor(&reconstruction.Params{
		Fill:     p.params.Fill,
		Source:   img,
		NumCores: numCores,
	})
	out, err := reconstructor.Reconstruct(transformed, bounds.Dx(), bounds.Dy(), sel)
	if err != nil {
		return nil, &models.StageError{Stage: models.StageReconstruct, Err: err}
	}
	p.notify(Event{Stage: models.StageReconstruct})

	return &Result{
		Image:             out,
		Mean:              mean,
		Covariance:        cov,
		Eigen:             eig,
		Transformed:       transformed,
		ExplainedVariance: pca.ExplainedVariance(eig.Values),
	}, nil
}

func (p *Pipeline) notify(e Event) {
	if p.params.Observer != nil {
		p.params.Observer(e)
	}
}
