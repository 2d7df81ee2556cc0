// Package mirror turns a project's flat folder and document listings into a
// local directory tree: it indexes folders, resolves each document's path,
// pre-creates the directory skeleton, and downloads content through a
// bounded worker pool with per-document retries.
package mirror

import (
	"github.com/fvtools/fvmirror/internal/filevine"
	"github.com/fvtools/fvmirror/internal/fvid"
)

// Node is one folder's entry in the index: its display name and the id of
// its parent. A zero Parent marks a root folder.
type Node struct {
	Name   string
	Parent fvid.ID
}

// Index maps folder ids to their nodes for parent-chain walks.
type Index map[fvid.ID]Node

// BuildIndex converts a flat folder listing into an Index. Records are
// taken as-is: duplicate ids keep the last record seen, and parent ids are
// not checked against the index. Dangling parents surface later as
// truncated paths, not as build errors.
func BuildIndex(folders []filevine.Folder) Index {
	idx := make(Index, len(folders))
	for _, f := range folders {
		idx[f.ID] = Node{Name: f.Name, Parent: f.ParentID}
	}

	return idx
}
