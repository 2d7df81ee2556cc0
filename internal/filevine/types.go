package filevine

import "github.com/fvtools/fvmirror/internal/fvid"

// Folder is a project folder normalized from the API response.
// A zero ParentID marks a root folder.
type Folder struct {
	ID       fvid.ID
	Name     string
	ParentID fvid.ID
}

// Document is a project document normalized from the API response.
type Document struct {
	ID       fvid.ID
	Filename string
	FolderID fvid.ID
}

// Locator is a short-lived signed download URL for one document. The URL
// embeds its own authorization and expires quickly, so it is fetched
// immediately before each download and never logged.
type Locator struct {
	URL string
}

// folderResponse mirrors the API's folder JSON exactly.
// Unexported; callers use Folder via toFolder() normalization.
type folderResponse struct {
	FolderID fvid.ID `json:"folderId"`
	Name     string  `json:"name"`
	ParentID fvid.ID `json:"parentId"`
}

func (f *folderResponse) toFolder() Folder {
	return Folder{
		ID:       f.FolderID,
		Name:     f.Name,
		ParentID: f.ParentID,
	}
}

// documentResponse mirrors the API's document JSON exactly.
type documentResponse struct {
	DocumentID fvid.ID `json:"documentId"`
	Filename   string  `json:"filename"`
	FolderID   fvid.ID `json:"folderId"`
}

func (d *documentResponse) toDocument() Document {
	return Document{
		ID:       d.DocumentID,
		Filename: d.Filename,
		FolderID: d.FolderID,
	}
}

// listResponse is the envelope every collection endpoint returns.
type listResponse[T any] struct {
	Items []T `json:"items"`
}

// locatorResponse mirrors the locator endpoint JSON.
type locatorResponse struct {
	URL string `json:"url"`
}
