package inference

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// hdf5Signature starts every HDF5 superblock. The superblock sits at
// offset 0 or, when the file carries a user block, at 512, 1024, 2048, ...
var hdf5Signature = []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}

var ErrNotHDF5 = errors.New("not an HDF5 file")

// CheckArtifact verifies that path exists and holds an HDF5 container.
func CheckArtifact(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat artifact: %w", err)
	}
	if st.IsDir() {
		return fmt.Errorf("artifact %s is a directory", path)
	}

	buf := make([]byte, len(hdf5Signature))
	for off := int64(0); off+int64(len(buf)) <= st.Size(); {
		if _, err := f.ReadAt(buf, off); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read artifact: %w", err)
		}
		if bytes.Equal(buf, hdf5Signature) {
			return nil
		}
		if off == 0 {
			off = 512
		} else {
			off *= 2
		}
	}
	return fmt.Errorf("%s: %w", path, ErrNotHDF5)
}
