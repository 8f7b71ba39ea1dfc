// Package mock provides deterministic test doubles for the ai interfaces.
//
// The doubles default to stable, input-derived behavior so tests are
// repeatable without a model server; individual roles can be overridden
// through function fields.
package mock
