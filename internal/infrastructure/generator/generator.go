package generator

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hilthontt/chatlobby/internal/domain"
	nanoid "github.com/jaevor/go-nanoid"
)

// CodeAlphabet is the set room codes are drawn from.
const CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator hands out opaque IDs and room codes. Codes are drawn uniformly
// from CodeAlphabet.
type Generator struct {
	code func() string
	mu   sync.Mutex
}

func NewGenerator() (*Generator, error) {
	code, err := nanoid.CustomASCII(CodeAlphabet, domain.CodeLength)
	if err != nil {
		return nil, fmt.Errorf("failed to build room code generator: %w", err)
	}

	return &Generator{code: code}, nil
}

func (g *Generator) NewID() string {
	return uuid.NewString()
}

func (g *Generator) NewRoomCode() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.code()
}
