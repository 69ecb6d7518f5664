package source

import (
	"crypto/sha256"
	"os"
	"path/filepath"
)

// FileSet holds every file of a run. Several versions of one path may be
// added; lookups by path return the newest.
//
// Adding is not safe for concurrent use. Once loading is done, readers on
// any number of goroutines may share the set.
type FileSet struct {
	files   []*File
	latest  map[string]FileID
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{latest: map[string]FileID{}}
}

// NewFileSetWithBase returns a set whose relative paths are rendered
// against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// BaseDir is the directory relative paths are shown against; it defaults
// to the working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, _ := os.Getwd()
	return wd
}

// Add stores content as given under a fresh FileID.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	id := FileID(offset(len(fs.files)))
	path = filepath.ToSlash(filepath.Clean(path))
	fs.files = append(fs.files, &File{
		ID:      id,
		Path:    path,
		Content: content,
		Hash:    sha256.Sum256(content),
		Flags:   flags,
		starts:  lineStarts(content),
	})
	fs.latest[path] = id
	return id
}

// AddSource normalizes content read from path before adding it.
func (fs *FileSet) AddSource(path string, content []byte) FileID {
	content, flags := normalize(content)
	return fs.Add(path, content, flags)
}

// AddVirtual adds in-memory content without normalizing it.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Load reads path from disk and adds it through AddSource.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- inputs are chosen by the user
	if err != nil {
		return 0, err
	}
	return fs.AddSource(path, content), nil
}

// Get panics when id does not belong to the set; see Has.
func (fs *FileSet) Get(id FileID) *File { return fs.files[id] }

func (fs *FileSet) Has(id FileID) bool { return int(id) < len(fs.files) }

// GetLatest finds the newest file added under path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.latest[filepath.ToSlash(filepath.Clean(path))]
	return id, ok
}

// Resolve returns the positions of both ends of span.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.files[span.File]
	return f.Position(span.Start), f.Position(span.End)
}
