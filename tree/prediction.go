package tree

import (
	"fmt"
	"strings"

	"github.com/titigmr/cart/dataset"
)

/*
Prediction represents a prediction made by a classification Tree: the
number of training samples of each class that reached the node that makes
it, and the predicted class index.
*/
type Prediction struct {
	counts []int
	weight int
	class  int
}

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrCannotPredictFromSample is the error returned by the Predict method of a tree
when the prediction cannot be made because the tree itself cannot make
a prediction for that kind of sample, as opposed to cases where values
for a feature cannot be obtained for example.
*/
const ErrCannotPredictFromSample = PredictionError("no prediction available for this kind of sample")

/*
ErrCannotPredictFromEmptySet is the error returned when trying to build a prediction
based on an empty dataset.
*/
const ErrCannotPredictFromEmptySet = PredictionError("cannot make prediction for empty dataset")

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
NewPrediction takes the number of samples of each class, indexed by class
index, and returns the prediction for them. The predicted class is the one
with most samples, the lowest class index winning ties. It returns
ErrCannotPredictFromEmptySet if there are no samples.
*/
func NewPrediction(counts []int) (*Prediction, error) {
	p := &Prediction{counts: append([]int{}, counts...)}
	for i, c := range counts {
		p.weight += c
		if c > counts[p.class] {
			p.class = i
		}
	}
	if p.weight == 0 {
		return nil, ErrCannotPredictFromEmptySet
	}
	return p, nil
}

// NewPredictionFromSet takes a dataset and returns a prediction based on
// its class counts, or ErrCannotPredictFromEmptySet if it has no samples.
func NewPredictionFromSet(s *dataset.Set) (*Prediction, error) {
	return NewPrediction(s.ClassCounts())
}

// Class returns the predicted class index.
func (p *Prediction) Class() int {
	return p.class
}

// Counts returns the number of training samples of each class.
func (p *Prediction) Counts() []int {
	return append([]int{}, p.counts...)
}

/*
Weight returns the weight of the prediction: an
int equal to the number of samples in the dataset from which
the prediction was made
*/
func (p *Prediction) Weight() int {
	return p.weight
}

/*
ProbabilityOf takes a class index and returns the float64 probability of that
class according to the prediction.
*/
func (p *Prediction) ProbabilityOf(class int) float64 {
	if class < 0 || class >= len(p.counts) {
		return 0.0
	}
	return float64(p.counts[class]) / float64(p.weight)
}

// Format returns the class distribution of the prediction with the given
// class names, as in "{A: 2, B: 0}".
func (p *Prediction) Format(classes []string) string {
	parts := make([]string, 0, len(p.counts))
	for i, c := range p.counts {
		name := fmt.Sprintf("%d", i)
		if i < len(classes) {
			name = classes[i]
		}
		parts = append(parts, fmt.Sprintf("%s: %d", name, c))
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

func (p *Prediction) String() string {
	return fmt.Sprintf("%v -> %d", p.counts, p.class)
}
