package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// renameFile is swapped in tests to simulate cross-device moves.
var renameFile = os.Rename

// MoveFile moves src to dst, creating dst's parent directory. An existing dst
// is never replaced. When src and dst are on different filesystems the file
// is copied with verification and the source removed afterwards.
func MoveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("move file: %s: %w", dst, fs.ErrExist)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat destination: %w", err)
	}

	if err := renameFile(src, dst); err != nil {
		var linkErr *os.LinkError
		if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
			if err := CopyFileVerified(src, dst); err != nil {
				return fmt.Errorf("copy file across devices: %w", err)
			}
			if err := os.Remove(src); err != nil {
				return fmt.Errorf("remove source after copy: %w", err)
			}
			return nil
		}
		return fmt.Errorf("move file: %w", err)
	}
	return nil
}

// CopyFileVerified copies src to a new file at dst with the source's
// permissions, then re-reads dst and compares size and SHA-256 with the
// source. dst must not exist; it is removed again if the copy or the
// verification fails.
func CopyFileVerified(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	srcHasher := sha256.New()
	written, err := io.Copy(out, io.TeeReader(in, srcHasher))
	if err != nil {
		_ = out.Close()
		return fmt.Errorf("copy data: %w", err)
	}
	if err = out.Sync(); err != nil {
		_ = out.Close()
		return fmt.Errorf("sync destination: %w", err)
	}
	if err = out.Close(); err != nil {
		return fmt.Errorf("close destination: %w", err)
	}

	if written != info.Size() {
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", info.Size(), written)
	}
	dstSum, err := fileSHA256(dst)
	if err != nil {
		return fmt.Errorf("verify destination: %w", err)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstSum) {
		return errors.New("copy hash mismatch: file corrupted during copy")
	}
	return nil
}

func fileSHA256(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}
