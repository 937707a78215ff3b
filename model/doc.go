// Package model defines the normalized journal event shape and the
// normalization/projection helpers that turn heterogeneous raw records
// (legacy and canonical field-name variants) into stable timeline cards.
package model
