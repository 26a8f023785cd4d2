package physvis

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher re-reads the config file whenever it changes on disk and
// delivers the parsed result. Invalid intermediate states (editors often
// write in two steps) are logged and skipped, never delivered.
type ConfigWatcher struct {
	path      string
	log       Logger
	fsnotify  *fsnotify.Watcher
	updates   chan Config
	done      chan struct{}
	closeOnce sync.Once
}

func WatchConfig(path string, logger Logger) (*ConfigWatcher, error) {
	if logger == nil {
		logger = NewNopLogger()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors replace files, which drops a watch
	// placed on the file itself.
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	cw := &ConfigWatcher{
		path:     abs,
		log:      logger,
		fsnotify: fsWatch,
		updates:  make(chan Config, 1),
		done:     make(chan struct{}),
	}
	go cw.run()
	return cw, nil
}

// Updates delivers each successfully reloaded Config.
func (cw *ConfigWatcher) Updates() <-chan Config {
	return cw.updates
}

func (cw *ConfigWatcher) run() {
	for {
		select {
		case <-cw.done:
			return
		case err, ok := <-cw.fsnotify.Errors:
			if !ok {
				return
			}
			cw.log.Warnf("config watcher: %v", err)
		case event, ok := <-cw.fsnotify.Events:
			if !ok {
				return
			}
			if !cw.matches(event) {
				continue
			}
			cfg, err := LoadConfig(cw.path)
			if err != nil {
				cw.log.Warnf("config reload skipped: %v", err)
				continue
			}
			cw.deliver(cfg)
		}
	}
}

func (cw *ConfigWatcher) matches(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == cw.path
}

// deliver replaces any undrained update so the consumer always sees the
// newest config.
func (cw *ConfigWatcher) deliver(cfg Config) {
	for {
		select {
		case cw.updates <- cfg:
			return
		default:
			select {
			case <-cw.updates:
			default:
			}
		}
	}
}

func (cw *ConfigWatcher) Close() error {
	var err error
	cw.closeOnce.Do(func() {
		close(cw.done)
		err = cw.fsnotify.Close()
	})
	return err
}
