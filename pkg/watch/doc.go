// Package watch re-runs work when files change.
//
// A Watcher registers files and directory trees with fsnotify, filters
// events by extension, and hands each burst of changes to a callback once
// the debounce interval has passed without new events:
//
//	w, err := watch.New(watch.Config{
//	    Paths:      []string{"queries.tags", "tagviz.yaml"},
//	    Debounce:   100 * time.Millisecond,
//	    Extensions: []string{".tags"},
//	}, logger)
//	err = w.Watch(ctx, func(ctx context.Context, changed []string) error {
//	    return render(changed)
//	})
package watch
