package application

import "github.com/google/wire"

// ProviderSet is the wire provider set for the journal
var ProviderSet = wire.NewSet(NewJournalService)
