package memory_test

import (
	"testing"

	"github.com/goliatone/go-resumegen/pkg/store/memory"
	"github.com/goliatone/go-resumegen/pkg/store/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, memory.New())
}
