// Package history provides the implementation for tracking and persisting saved replay files.
package history

import (
	"time"

	"github.com/hoopsgrab-cli/hoopsgrab/filesystem"
	"github.com/hoopsgrab-cli/hoopsgrab/where"
	"github.com/metafates/gache"
)

// cacher provides an abstracted, disk-backed registry for saved replay records.
var cacher = gache.New[map[string]*SavedReplay](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of saved replay records from the persistent store.
func Get() (map[string]*SavedReplay, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedReplay), nil
	}
	return cached, nil
}

// Save persists a freshly written replay file to the registry.
func Save(date, title, path string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := &SavedReplay{
		Date:    date,
		Title:   title,
		Path:    path,
		SavedAt: time.Now(),
	}
	saved[record.encode()] = record

	return cacher.Set(saved)
}

// Lookup returns the record of a replay that was already saved, if any.
// Records whose file has since been deleted do not count.
func Lookup(date, title string) (*SavedReplay, bool) {
	saved, err := Get()
	if err != nil {
		return nil, false
	}

	record, ok := saved[(&SavedReplay{Date: date, Title: title}).encode()]
	if !ok {
		return nil, false
	}

	exists, err := filesystem.API().Exists(record.Path)
	if err != nil || !exists {
		return nil, false
	}
	return record, true
}

// Remove permanently deletes a specific replay record from the registry.
func Remove(replay *SavedReplay) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, replay.encode())
	return cacher.Set(saved)
}
