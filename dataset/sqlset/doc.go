/*
Package sqlset reads and writes sets of samples on SQL databases.

Samples are stored on a samples table with a REAL column per feature,
a TEXT column for the label and an auto-incremented id column that keeps
the order in which samples were written. The SQL dialect of every
database is handled by an Adapter, such as the ones in the pgadapter
and sqlite3adapter packages.
*/
package sqlset
