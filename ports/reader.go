package ports

import (
	"fairlens/domain/table"
)

// DatasetReaderPort loads a tabular dataset from an external source into the
// in-memory table abstraction. All file I/O lives behind this port; the audit
// core never touches the filesystem.
type DatasetReaderPort interface {
	Read(path string) (*table.Dataset, error)
}
