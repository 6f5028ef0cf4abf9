package dungeon

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"photohunt-server/pkg/logger"
)

// WatchLevels перечитывает файл уровней при каждом изменении и подменяет таблицу в store.
// Битый файл логируется и игнорируется, в store остается прежняя таблица.
// Блокируется до отмены ctx.
func WatchLevels(ctx context.Context, path string, store *LevelStore) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Следим за каталогом: редакторы часто заменяют файл через rename
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	log := logger.Log.WithFields(logrus.Fields{"component": "levels", "path": path})
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				table, err := LoadLevelsFile(path)
				if err != nil {
					log.WithError(err).Warn("levels file changed but could not be parsed")
					continue
				}
				store.Replace(table)
				log.WithField("levels", len(table)).Info("levels reloaded")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("levels watcher error")
		}
	}
}
