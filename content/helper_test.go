package content

import (
	"testing"

	"github.com/dzaramelcone/ninjamagic/engine"
)

func newTestWorld(t *testing.T) *engine.World {
	t.Helper()
	return engine.NewWorld()
}
