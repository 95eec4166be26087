// Package repositories implements durable key-value persistence for client state.
//
// The only state the client keeps between runs is the session token, stored under
// [models.TokenKey]. Every backend satisfies [TokenStore].
//
// Key Implementations:
//   - [SQLiteStore] : kv table in a local SQLite file (default)
//   - [RedisStore] : shared store keyed under a configurable prefix
//   - [MemoryStore] : process-local map, used by tests and the "memory" driver
//
// [NewTokenStore] selects a backend from [shared.StoreConfig].
package repositories
