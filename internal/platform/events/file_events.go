package events

import "github.com/philly/emitter/internal/platform/eventbus"

// FileChangedTopic is emitted by the filesystem watcher
const FileChangedTopic eventbus.EventName = "file.changed"

// FileChangedEvent describes one change inside the watched directory
type FileChangedEvent struct {
	Path string `json:"path"`
	Base string `json:"base"` // filepath.Base(Path)
	Op   string `json:"op"`   // create, write, remove or rename
}
