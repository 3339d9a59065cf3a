package sqlset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/titigmr/cart/dataset"
	"github.com/titigmr/cart/feature"
)

// MaxSampleInsertionsPerStatement is the maximum number
// of samples that are added with a single insert command.
// Writing more results in more insertion commands.
const MaxSampleInsertionsPerStatement = 10

/*
Dialect holds what sets SQL databases apart for the statements of the
package.
*/
type Dialect struct {
	// Placeholder returns the placeholder for the i-th
	// (starting at 1) parameter of a statement.
	Placeholder func(i int) string
	// IDColumn is the definition of the auto-incremented
	// primary key column of the samples table.
	IDColumn string
}

/*
Adapter is an interface for the operations on a database required to
read and write sets of samples on it.
*/
type Adapter interface {
	// ColumnName takes the name of a feature and returns the name of
	// the column for it, or an error if it cannot be used as one.
	ColumnName(featureName string) (string, error)
	// CreateSampleTable ensures the samples table exists with
	// the given label and feature columns.
	CreateSampleTable(ctx context.Context, labelColumn string, featureColumns []string) error
	// AddSamples inserts rows on the samples table, each one a label value
	// followed by the feature values. It returns the number of inserted
	// rows and an error if not all of them could be inserted.
	AddSamples(ctx context.Context, rows [][]interface{}, labelColumn string, featureColumns []string) (int, error)
	// IterateOnSamples calls lambda with the index, label value and
	// feature values of every sample in insertion order, stopping when
	// it returns false or an error.
	IterateOnSamples(ctx context.Context, labelColumn string, featureColumns []string, lambda func(int, string, []float64) (bool, error)) error
	// Close closes the connection to the database.
	Close() error
}

type adapter struct {
	db *sql.DB
	Dialect
}

// NewAdapter returns an Adapter on the given database
// speaking the given dialect.
func NewAdapter(db *sql.DB, d Dialect) Adapter {
	return &adapter{db, d}
}

func (a *adapter) ColumnName(featureName string) (string, error) {
	if featureName == "id" {
		return "", errors.Errorf(`'%s' is reserved and cannot be used as feature name`, featureName)
	}
	if featureName == "" || strings.ContainsAny(featureName, `"`) {
		return "", errors.Errorf(`invalid feature name '%s'`, featureName)
	}
	return featureName, nil
}

func (a *adapter) CreateSampleTable(ctx context.Context, labelColumn string, featureColumns []string) error {
	var stmt bytes.Buffer
	stmt.WriteString("CREATE TABLE IF NOT EXISTS samples(")
	fmt.Fprintf(&stmt, `"%s" TEXT NOT NULL, `, labelColumn)
	for _, c := range featureColumns {
		fmt.Fprintf(&stmt, `"%s" REAL NOT NULL, `, c)
	}
	fmt.Fprintf(&stmt, `"id" %s)`, a.IDColumn)
	_, err := a.db.ExecContext(ctx, stmt.String())
	if err != nil {
		return errors.Wrap(err, "ensuring samples table exists")
	}
	return nil
}

func (a *adapter) AddSamples(ctx context.Context, rows [][]interface{}, labelColumn string, featureColumns []string) (int, error) {
	var n int
	for n < len(rows) {
		end := n + MaxSampleInsertionsPerStatement
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[n:end]
		values := make([]interface{}, 0, len(chunk)*(len(featureColumns)+1))
		for _, r := range chunk {
			values = append(values, r...)
		}
		_, err := a.db.ExecContext(ctx, a.insertStatement(len(chunk), labelColumn, featureColumns), values...)
		if err != nil {
			return n, errors.Wrapf(err, "inserting samples %d to %d", n+1, end)
		}
		n = end
	}
	return n, nil
}

func (a *adapter) insertStatement(rows int, labelColumn string, featureColumns []string) string {
	columns := append([]string{labelColumn}, featureColumns...)
	var stmt bytes.Buffer
	fmt.Fprintf(&stmt, `INSERT INTO samples ("%s") VALUES `, strings.Join(columns, `", "`))
	p := 1
	for i := 0; i < rows; i++ {
		if i > 0 {
			stmt.WriteString(", ")
		}
		stmt.WriteString("(")
		for j := range columns {
			if j > 0 {
				stmt.WriteString(", ")
			}
			stmt.WriteString(a.Placeholder(p))
			p++
		}
		stmt.WriteString(")")
	}
	return stmt.String()
}

func (a *adapter) IterateOnSamples(ctx context.Context, labelColumn string, featureColumns []string, lambda func(int, string, []float64) (bool, error)) error {
	columns := append([]string{labelColumn}, featureColumns...)
	query := fmt.Sprintf(`SELECT "%s" FROM samples ORDER BY "id"`, strings.Join(columns, `", "`))
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return errors.Wrap(err, "querying samples")
	}
	defer rows.Close()
	for j := 0; rows.Next(); j++ {
		var label string
		values := make([]float64, len(featureColumns))
		dest := make([]interface{}, 0, len(columns))
		dest = append(dest, &label)
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err = rows.Scan(dest...); err != nil {
			return errors.Wrapf(err, "scanning sample %d", j+1)
		}
		ok, err := lambda(j, label, values)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}

func (a *adapter) Close() error {
	return a.db.Close()
}

/*
ReadSet takes a context, an Adapter, the continuous features of the samples
and the label feature and returns the dataset.Set with the samples stored
on the database.
*/
func ReadSet(ctx context.Context, a Adapter, features []*feature.ContinuousFeature, label *feature.DiscreteFeature) (*dataset.Set, error) {
	labelColumn, featureColumns, err := columns(a, features, label)
	if err != nil {
		return nil, err
	}
	var X [][]float64
	var y []string
	err = a.IterateOnSamples(ctx, labelColumn, featureColumns, func(_ int, l string, values []float64) (bool, error) {
		X = append(X, values)
		y = append(y, l)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return dataset.FromRows(features, label, X, y)
}

type sqlWriter struct {
	adapter        Adapter
	features       []*feature.ContinuousFeature
	label          *feature.DiscreteFeature
	labelColumn    string
	featureColumns []string
	count          int
}

/*
NewWriter takes a context, an Adapter, the continuous features of the
samples and the label feature, ensures the samples table exists and
returns a dataset.Writer that inserts samples on it.
*/
func NewWriter(ctx context.Context, a Adapter, features []*feature.ContinuousFeature, label *feature.DiscreteFeature) (dataset.Writer, error) {
	labelColumn, featureColumns, err := columns(a, features, label)
	if err != nil {
		return nil, err
	}
	if err = a.CreateSampleTable(ctx, labelColumn, featureColumns); err != nil {
		return nil, err
	}
	return &sqlWriter{a, features, label, labelColumn, featureColumns, 0}, nil
}

func (sw *sqlWriter) Write(ctx context.Context, samples []feature.Sample) (int, error) {
	rows := make([][]interface{}, 0, len(samples))
	for i, s := range samples {
		row := make([]interface{}, 0, len(sw.features)+1)
		l, err := s.ValueFor(ctx, sw.label)
		if err != nil {
			return 0, errors.Wrapf(err, "sample %d", sw.count+i+1)
		}
		row = append(row, l)
		for _, f := range sw.features {
			v, err := s.ValueFor(ctx, f)
			if err != nil {
				return 0, errors.Wrapf(err, "sample %d", sw.count+i+1)
			}
			if ok, err := f.Valid(v); !ok {
				return 0, errors.Wrapf(err, "sample %d", sw.count+i+1)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	n, err := sw.adapter.AddSamples(ctx, rows, sw.labelColumn, sw.featureColumns)
	sw.count += n
	return n, err
}

func (sw *sqlWriter) Count() int {
	return sw.count
}

func (sw *sqlWriter) Flush() error {
	return nil
}

func columns(a Adapter, features []*feature.ContinuousFeature, label *feature.DiscreteFeature) (string, []string, error) {
	labelColumn, err := a.ColumnName(label.Name())
	if err != nil {
		return "", nil, err
	}
	featureColumns := make([]string, 0, len(features))
	for _, f := range features {
		c, err := a.ColumnName(f.Name())
		if err != nil {
			return "", nil, err
		}
		featureColumns = append(featureColumns, c)
	}
	return labelColumn, featureColumns, nil
}
