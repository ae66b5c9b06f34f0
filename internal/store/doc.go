// Package store persists chat-room records.
//
// RecordStore handles key canonicalization and JSON encoding; the bytes go to
// a RecordBackend. Backends provided here:
//   - FileBackend: one file per record under <home>/rooms
//   - MemoryBackend: process memory, for tests and throwaway sessions
//   - RedisBackend: a Redis server via go-redis
//   - SQLBackend: SQLite (or any GORM dialect)
//   - PostgresBackend: PostgreSQL via a pgx pool
//
// InstrumentedBackend wraps any of them with Prometheus metrics. All backends
// are safe for concurrent use. Read-modify-write sequences are serialized by
// the caller, not here.
package store
