// Package kernel contains shared value objects used by every aggregate:
// UUID identifiers and WGS84 geographic points. All types are immutable and
// must be created through their constructors; zero values fail validation.
package kernel
