package inference

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string, b []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, b, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

// fakeHDF5 returns a file body with the signature at offset.
func fakeHDF5(offset int) []byte {
	b := make([]byte, offset+64)
	copy(b[offset:], hdf5Signature)
	return b
}

func TestCheckArtifact(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		path    string
		wantErr bool
		notHDF5 bool
	}{
		{"signature at zero", writeFile(t, dir, "a.h5", fakeHDF5(0)), false, false},
		{"signature after user block", writeFile(t, dir, "b.h5", fakeHDF5(1024)), false, false},
		{"signature at odd offset", writeFile(t, dir, "c.h5", fakeHDF5(100)), true, true},
		{"not hdf5", writeFile(t, dir, "d.h5", []byte("PK\x03\x04 definitely a zip file")), true, true},
		{"too small", writeFile(t, dir, "e.h5", []byte{0x89}), true, true},
		{"missing", filepath.Join(dir, "missing.h5"), true, false},
		{"directory", dir, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckArtifact(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckArtifact err=%v, wantErr=%v", err, tt.wantErr)
			}
			if tt.notHDF5 != errors.Is(err, ErrNotHDF5) {
				t.Fatalf("expected ErrNotHDF5=%v, got %v", tt.notHDF5, err)
			}
		})
	}
}
