// Package theme provides live reloading for themes composed from on-disk
// source files.
//
// A theme names an ordered set of files. Observe resolves each name to a
// unique path under a source root, composes the files into one artifact, and
// watches every path so edits re-compose the theme and notify the caller:
//
//	src := theme.FileList{"base.yaml", "dark.yaml"}
//	obs, err := theme.Observe("./themes", src, func(t *theme.Theme, err error) {
//		if err != nil {
//			log.Printf("reload failed, keeping %v: %v", t.Sources(), err)
//			return
//		}
//		apply(t)
//	}, theme.ObserverOptions{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer obs.Close()
//	apply(obs.Theme())
//
// A failed reload never discards the last good artifact: the callback
// receives the previous theme together with the error, so consumers always
// hold something applicable.
//
// Watches are per file and are recreated after every event, which keeps
// observation alive across editors that replace files on save instead of
// writing in place.
package theme
