package store

import (
	"sync"

	C "website/config"
	"website/model"
	"website/model/store/memory"
	"website/model/store/postgres"
)

var memoryStore *memory.Memory
var memoryStoreOnce sync.Once

// GetStore returns the store backing the configured primary datastore.
func GetStore() model.Model {
	config := C.GetConfig()
	if config != nil && config.PrimaryDatastore == C.DatastoreTypePostgres {
		return postgres.New(C.GetServices().Db)
	}

	memoryStoreOnce.Do(func() {
		memoryStore = memory.New()
	})
	return memoryStore
}
