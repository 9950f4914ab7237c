// Package id provides entity identifier helpers.
// Identifiers are 64-bit integers assigned by the database (BIGSERIAL).
package id

import "strconv"

// ID is a database-assigned entity identifier.
// Zero means "not assigned yet" or, for parent references, "root".
type ID int64

// Root is the sentinel parent ID for top-level tree nodes.
const Root ID = 0

// String formats the ID in base 10.
func (i ID) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// Int64 returns the underlying value.
func (i ID) Int64() int64 {
	return int64(i)
}

// IsZero reports whether the ID is unassigned.
func (i ID) IsZero() bool {
	return i == 0
}

// Parse converts a decimal string to an ID.
func Parse(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(v), nil
}
