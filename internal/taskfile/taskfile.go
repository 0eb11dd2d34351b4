// Package taskfile reads and writes the flat task file, one "<description>;<completed>" per line.
package taskfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"todo/internal/log"
	"todo/internal/task"
)

// DefaultName is the file used when no path is configured.
const DefaultName = "tasks.txt"

// PersistenceError reports a failure to read or write the task file.
type PersistenceError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Decode reads persisted lines from r. Lines may be of any length and a
// trailing "\r" is dropped. On a read error it returns the tasks decoded so
// far together with the error; an incomplete final line is discarded.
func Decode(r io.Reader) (*task.List, error) {
	br := bufio.NewReader(r)
	var readErr error

	l := task.Deserialize(func(yield func(string) bool) {
		for {
			line, err := br.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				readErr = err
				return
			}
			if line != "" && !yield(strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")) {
				return
			}
			if err != nil {
				return
			}
		}
	})
	return l, readErr
}

// Encode writes one line per task, each terminated by "\n".
func Encode(w io.Writer, l *task.List) error {
	bw := bufio.NewWriter(w)
	for line := range l.Serialize() {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// File is a task file on disk.
type File struct {
	Path string
}

// New returns a File for path, or for DefaultName when path is empty.
func New(path string) *File {
	if path == "" {
		path = DefaultName
	}
	return &File{Path: path}
}

// Load reads the file. A missing file yields an empty list and no error.
// Any other failure yields a *PersistenceError along with whatever was read.
func (f *File) Load() (*task.List, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debugf("task file %s does not exist, starting empty", f.Path)
			return task.NewList(), nil
		}
		return task.NewList(), &PersistenceError{Op: "load", Path: f.Path, Err: err}
	}
	defer fh.Close()

	l, err := Decode(fh)
	if err != nil {
		return l, &PersistenceError{Op: "load", Path: f.Path, Err: err}
	}
	log.Debugf("loaded %d tasks from %s", l.Len(), f.Path)
	return l, nil
}

// Save truncates the file and writes the whole list.
func (f *File) Save(l *task.List) error {
	fh, err := os.Create(f.Path)
	if err != nil {
		return &PersistenceError{Op: "save", Path: f.Path, Err: err}
	}

	if err := Encode(fh, l); err != nil {
		fh.Close()
		return &PersistenceError{Op: "save", Path: f.Path, Err: err}
	}
	if err := fh.Close(); err != nil {
		return &PersistenceError{Op: "save", Path: f.Path, Err: err}
	}
	log.Debugf("saved %d tasks to %s", l.Len(), f.Path)
	return nil
}
