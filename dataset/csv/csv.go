/*
Package csv reads and writes sets of samples as CSV streams whose header
holds the names of the features and the label.
*/
package csv

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/titigmr/cart/dataset"
	"github.com/titigmr/cart/feature"
)

type csvWriter struct {
	count    int
	features []feature.Feature
	w        *csv.Writer
}

/*
ReadSet takes a context, an io.Reader for a CSV stream, the continuous
features of the samples and the label feature and returns a dataset.Set
with the samples parsed from the reader or an error.

The header or first row of the CSV content is expected to include the names
of all the given features and of the label, in any order. Columns for other
features are ignored.
*/
func ReadSet(ctx context.Context, reader io.Reader, features []*feature.ContinuousFeature, label *feature.DiscreteFeature) (*dataset.Set, error) {
	all := make([]feature.Feature, 0, len(features)+1)
	for _, f := range features {
		all = append(all, f)
	}
	all = append(all, label)
	samples := []feature.Sample{}
	err := ReadSetBySample(reader, all, func(_ int, s feature.Sample) (bool, error) {
		samples = append(samples, s)
		return ctx.Err() == nil, ctx.Err()
	})
	if err != nil {
		return nil, err
	}
	return dataset.New(ctx, features, label, samples)
}

/*
ReadSetBySample takes an io.Reader for a CSV stream, a slice of features and a
lambda function on an integer and a feature.Sample that returns a boolean value.
It parses the samples from the reader and for each it calls the lambda function
with the sample and its index as parameters. If the lambda function returns true,
it will continue processing the next sample, otherwise it will stop. An error is
returned if something goes wrong when reading the stream or parsing a sample.

Values for continuous features are parsed as float64 numbers, values for
discrete features are kept as strings.
*/
func ReadSetBySample(reader io.Reader, features []feature.Feature, lambda func(int, feature.Sample) (bool, error)) error {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return errors.Wrap(err, "reading header")
	}
	columns, err := parseHeader(header, features)
	if err != nil {
		return err
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "reading body")
		}
		sample, err := parseRow(row, features, columns)
		if err != nil {
			return errors.Wrapf(err, "parsing line %d", l)
		}
		ok, err := lambda(l-2, sample)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadSetFromFilePath takes a context, a filepath string, the continuous
features of the samples and the label feature, opens the file to which the
filepath points to (os.Stdin if it is "") and uses ReadSet to return the
dataset.Set read from it.
*/
func ReadSetFromFilePath(ctx context.Context, filepath string, features []*feature.ContinuousFeature, label *feature.DiscreteFeature) (*dataset.Set, error) {
	f := os.Stdin
	if filepath != "" {
		var err error
		f, err = os.Open(filepath)
		if err != nil {
			return nil, errors.Wrap(err, "reading set")
		}
		defer f.Close()
	}
	s, err := ReadSet(ctx, f, features, label)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing CSV file %s", filepath)
	}
	return s, nil
}

/*
NewWriter takes an io.Writer and a slice of feature.Features and
returns a dataset.Writer that will write any samples on the io.Writer,
after a header with the names of the features.
*/
func NewWriter(writer io.Writer, features []feature.Feature) (dataset.Writer, error) {
	w := csv.NewWriter(writer)
	record := make([]string, len(features))
	for i, f := range features {
		record[i] = f.Name()
	}
	err := w.Write(record)
	if err != nil {
		return nil, errors.Wrap(err, "writing CSV header")
	}
	return &csvWriter{features: features, w: w}, nil
}

/*
WriteSet takes a context, an io.Writer and a dataset.Set and dumps the set
in CSV format to the writer, a column per feature followed by a column for
the label.
*/
func WriteSet(ctx context.Context, writer io.Writer, s *dataset.Set) error {
	features := make([]feature.Feature, 0, len(s.Features())+1)
	for _, f := range s.Features() {
		features = append(features, f)
	}
	features = append(features, s.Label())
	cw, err := NewWriter(writer, features)
	if err != nil {
		return err
	}
	return dataset.WriteSet(ctx, cw, s)
}

func parseHeader(header []string, features []feature.Feature) ([]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[name] = i
	}
	columns := make([]int, len(features))
	for i, f := range features {
		c, ok := positions[f.Name()]
		if !ok {
			return nil, errors.Errorf("parsing header: no column for feature %s", f.Name())
		}
		columns[i] = c
	}
	return columns, nil
}

func parseRow(row []string, features []feature.Feature, columns []int) (feature.Sample, error) {
	featureValues := make(map[string]interface{}, len(features))
	for i, f := range features {
		v := row[columns[i]]
		var value interface{} = v
		if _, ok := f.(*feature.ContinuousFeature); ok {
			fv, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, errors.Wrapf(dataset.ErrInvalidInput, "converting %q to float64 for feature %s", v, f.Name())
			}
			value = fv
		}
		if ok, err := f.Valid(value); !ok {
			return nil, errors.Wrap(dataset.ErrInvalidInput, err.Error())
		}
		featureValues[f.Name()] = value
	}
	return dataset.NewSample(featureValues), nil
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(ctx context.Context, samples []feature.Sample) (int, error) {
	for n, s := range samples {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := cw.writeSample(ctx, s); err != nil {
			return n, err
		}
	}
	return len(samples), nil
}

func (cw *csvWriter) writeSample(ctx context.Context, sample feature.Sample) error {
	record := make([]string, len(cw.features))
	for j, f := range cw.features {
		v, err := sample.ValueFor(ctx, f)
		if err != nil {
			return err
		}
		switch tv := v.(type) {
		case float64:
			record[j] = strconv.FormatFloat(tv, 'g', -1, 64)
		case string:
			record[j] = tv
		default:
			return errors.Errorf("writing CSV row for sample %d: unexpected %T value for feature %s", cw.count+1, v, f.Name())
		}
	}
	err := cw.w.Write(record)
	if err != nil {
		return errors.Wrapf(err, "writing CSV row for sample %d", cw.count+1)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
