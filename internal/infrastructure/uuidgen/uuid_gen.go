package uuidgen

import (
	"github.com/google/uuid"
	"github.com/gvanmetre/BiteBook/internal/domain/contract"
)

// Generator issues random UUIDs for entity identifiers.
type Generator struct{}

// NewGenerator creates a new UUID generator.
func NewGenerator() contract.IUUIDGenerator {
	return &Generator{}
}

// NewUUID generates a new UUID.
func (g *Generator) NewUUID() string {
	return uuid.New().String()
}

var _ contract.IUUIDGenerator = (*Generator)(nil)
