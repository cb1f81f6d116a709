package eventbus

import "github.com/google/wire"

// ProviderSet is the wire provider set for the event bus.
// The injector supplies Config.
var ProviderSet = wire.NewSet(NewBus)
