package main

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/disiqueira/gotree/v3"
	"github.com/spf13/cobra"

	"github.com/fvtools/fvmirror/internal/fvid"
	"github.com/fvtools/fvmirror/internal/mirror"
)

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <project-id>",
		Short: "Show a project's folder tree without downloading",
		Long: "Tree fetches a project's folders and documents and renders the directory\n" +
			"structure a mirror run would create. Names are shown as they will appear\n" +
			"on disk, after filename sanitization.",
		Args: cobra.ExactArgs(1),
		RunE: runTree,
	}
}

func runTree(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := buildLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	projectID, err := fvid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid project id %q: %w", args[0], err)
	}

	ctx := cmd.Context()

	client, err := newAPISession(ctx, logger)
	if err != nil {
		return err
	}

	folders, err := client.ListFolders(ctx, projectID)
	if err != nil {
		return err
	}

	idx := mirror.BuildIndex(folders)

	docs, err := client.ListDocuments(ctx, projectID)
	if err != nil {
		return err
	}

	// Sort folders by their on-disk path so siblings render alphabetically
	// and parents appear before children.
	ids := make([]fvid.ID, 0, len(idx))
	paths := make(map[fvid.ID]string, len(idx))

	for id := range idx {
		ids = append(ids, id)
		paths[id] = idx.RelPath(id)
	}

	slices.SortFunc(ids, func(a, b fvid.ID) int {
		if c := cmp.Compare(paths[a], paths[b]); c != 0 {
			return c
		}

		return cmp.Compare(a, b)
	})

	// Documents in unknown folders land at the mirror root, same as the
	// downloader places them.
	docNames := make(map[fvid.ID][]string)

	var rootDocs []string

	for _, d := range docs {
		name := mirror.SafeName(d.Filename)
		if _, known := idx[d.FolderID]; known && !d.FolderID.IsZero() {
			docNames[d.FolderID] = append(docNames[d.FolderID], name)
		} else {
			rootDocs = append(rootDocs, name)
		}
	}

	slices.Sort(rootDocs)

	for _, names := range docNames {
		slices.Sort(names)
	}

	if flagJSON {
		return printTreeJSON(projectID, ids, paths, docNames, rootDocs)
	}

	printTreeText(projectID, ids, paths, docNames, rootDocs)
	statusf("\n%d folders, %d documents\n", len(folders), len(docs))

	return nil
}

// folderTree builds a renderable tree from relative paths, creating
// intermediate directory nodes on demand.
type folderTree struct {
	root gotree.Tree
	dirs map[string]gotree.Tree
}

func newFolderTree(label string) *folderTree {
	return &folderTree{root: gotree.New(label), dirs: make(map[string]gotree.Tree)}
}

func (t *folderTree) dir(path string) gotree.Tree {
	if path == "" {
		return t.root
	}

	if d, ok := t.dirs[path]; ok {
		return d
	}

	parent, base := "", path
	if i := strings.LastIndex(path, string(filepath.Separator)); i >= 0 {
		parent, base = path[:i], path[i+1:]
	}

	d := t.dir(parent).Add(base)
	t.dirs[path] = d

	return d
}

func printTreeText(
	projectID fvid.ID,
	ids []fvid.ID,
	paths map[fvid.ID]string,
	docNames map[fvid.ID][]string,
	rootDocs []string,
) {
	t := newFolderTree("project " + projectID.String())

	for _, id := range ids {
		t.dir(paths[id])
	}

	for _, name := range rootDocs {
		t.root.Add(name)
	}

	for _, id := range ids {
		d := t.dir(paths[id])
		for _, name := range docNames[id] {
			d.Add(name)
		}
	}

	fmt.Print(t.root.Print())
}

type treeFolder struct {
	FolderID  fvid.ID  `json:"folder_id"`
	Path      string   `json:"path"`
	Documents []string `json:"documents,omitempty"`
}

type treeResult struct {
	ProjectID     fvid.ID      `json:"project_id"`
	Folders       []treeFolder `json:"folders"`
	RootDocuments []string     `json:"root_documents,omitempty"`
}

func printTreeJSON(
	projectID fvid.ID,
	ids []fvid.ID,
	paths map[fvid.ID]string,
	docNames map[fvid.ID][]string,
	rootDocs []string,
) error {
	result := treeResult{
		ProjectID:     projectID,
		Folders:       make([]treeFolder, 0, len(ids)),
		RootDocuments: rootDocs,
	}

	for _, id := range ids {
		result.Folders = append(result.Folders, treeFolder{
			FolderID:  id,
			Path:      paths[id],
			Documents: docNames[id],
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(result)
}
