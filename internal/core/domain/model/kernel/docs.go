// Package kernel contains shared value objects used by every domain model:
// validated UUID identifiers and non-negative Money amounts. Value objects in
// this package are immutable and must be created through their constructors;
// zero values fail validation.
package kernel
