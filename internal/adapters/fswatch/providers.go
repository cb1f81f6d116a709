package fswatch

import "github.com/google/wire"

// ProviderSet is the wire provider set for the filesystem watcher
var ProviderSet = wire.NewSet(NewWatcher)
