package pipeline

import (
	"log"
	"sync"

	"github.com/foliovoice/folio-core/core/llms"
	"github.com/jinzhu/copier"
)

// conversation holds the turns already exchanged in a session. Turns are
// only appended once they complete, an in-flight response is not part of
// the history handed to the next model call.
type conversation struct {
	mu    sync.Mutex
	turns []llms.Turn
}

func (c *conversation) append(turns ...llms.Turn) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.turns = append(c.turns, turns...)
}

// History returns a point-in-time deep copy of the conversation so callers
// can read it without racing ongoing turns.
func (c *conversation) History() []llms.Turn {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := []llms.Turn{}
	if err := copier.CopyWithOption(&snapshot, &c.turns, copier.Option{DeepCopy: true}); err != nil {
		log.Println("Failed to snapshot conversation history", "error", err)
		return append([]llms.Turn(nil), c.turns...)
	}
	return snapshot
}
