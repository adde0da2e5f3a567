// internal/types/types.go
package types

// EntityID identifies an entity in the component stores. Zero is never issued.
type EntityID uint32

// InvalidEntity stands for "no entity".
const InvalidEntity EntityID = 0

// PlayerID identifies a player (faction). Zero is never issued.
type PlayerID uint32

// NoPlayer stands for "no player".
const NoPlayer PlayerID = 0
