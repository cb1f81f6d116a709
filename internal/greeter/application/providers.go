package application

import "github.com/google/wire"

// ProviderSet is the wire provider set for the greeter
var ProviderSet = wire.NewSet(NewGreeter)
