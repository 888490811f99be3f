// Package catalog loads the item lists shown by the picker.
//
// A catalog is a YAML document with a single "items" list:
//
//	items:
//	  - name: ripgrep
//	    description: recursive regex search
//	    tags: [cli, search]
//
// Names must be non-empty. Duplicate names are accepted but logged, since the
// picker keys its hidden and selected flags by name.
package catalog
