package dataset

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
	"github.com/titigmr/cart/feature"
)

/*
FromDataFrame takes a gota DataFrame and the name of its label column and
returns a Set with every other column as a continuous feature, in column
order. Label values are read as strings; feature columns must hold finite
numbers.
*/
func FromDataFrame(df dataframe.DataFrame, labelName string) (*Set, error) {
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "reading dataframe")
	}
	var names []string
	found := false
	for _, n := range df.Names() {
		if n == labelName {
			found = true
			continue
		}
		names = append(names, n)
	}
	if !found {
		return nil, errors.Wrapf(ErrInvalidInput, "dataframe has no column %s", labelName)
	}
	columns := make([][]float64, len(names))
	for j, n := range names {
		columns[j] = df.Col(n).Float()
	}
	rows := make([][]float64, df.Nrow())
	for i := range rows {
		rows[i] = make([]float64, len(names))
		for j := range names {
			rows[i][j] = columns[j][i]
		}
	}
	y := df.Col(labelName).Records()
	return FromRows(ContinuousFeatures(names...), feature.NewDiscreteFeature(labelName, nil), rows, y)
}
