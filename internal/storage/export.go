package storage

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/san-kum/memtree/internal/gallery"
)

// ExportData is the backup format written by Export.
type ExportData struct {
	Key      string            `json:"key"`
	Exported time.Time         `json:"exported"`
	Count    int               `json:"count"`
	Projects []gallery.Project `json:"projects"`
}

func Export(w io.Writer, key string, projects []gallery.Project) error {
	data := ExportData{
		Key:      key,
		Exported: time.Now().UTC(),
		Count:    len(projects),
		Projects: projects,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportFile(path, key string, projects []gallery.Project) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return Export(file, key, projects)
}

// ReadExport decodes a backup written by Export.
func ReadExport(r io.Reader) (*ExportData, error) {
	var data ExportData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
