// Package types contains shared error types used across mediaflow.
package types
