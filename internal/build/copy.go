package build

import (
	"archive/tar"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Copies a file or directory from the host into the instance.
//
// The source is packed into a tar stream on the fly, renamed to the
// destination's base name, and extracted into the destination's parent
// directory inside the instance. A destination with a trailing separator
// names a directory to copy into, keeping the source's own name, the same
// rule COPY follows in a Dockerfile. Tar preserves permissions and
// directory structure. The destination directory is created if missing.
func copyIntoInstance(ctx context.Context, inst Instance, src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	destDir := filepath.Dir(dst)
	name := filepath.Base(dst)
	if strings.HasSuffix(dst, "/") {
		destDir = filepath.Clean(dst)
		name = filepath.Base(src)
	}

	if err := inst.MkdirAll(ctx, destDir); err != nil {
		return err
	}

	slog.Debug("copy", "src", src, "dst", dst, "dir", info.IsDir())

	pr, pw := io.Pipe()

	go func() {
		tw := tar.NewWriter(pw)
		var writeErr error

		if info.IsDir() {
			writeErr = writeDirToTar(tw, src, name)
		} else {
			writeErr = writeFileToTar(tw, src, name)
		}

		tw.Close()
		pw.CloseWithError(writeErr)
	}()

	return inst.CopyTo(ctx, pr, destDir)
}

// Writes a single file to a tar writer with the given archive name.
func writeFileToTar(tw *tar.Writer, hostPath, name string) error {
	info, err := os.Stat(hostPath)
	if err != nil {
		return err
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = name

	if err := tw.WriteHeader(header); err != nil {
		return err
	}

	f, err := os.Open(hostPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(tw, f)
	return err
}

// Writes a directory tree to a tar writer rooted at the given archive prefix.
func writeDirToTar(tw *tar.Writer, hostDir, prefix string) error {
	return filepath.WalkDir(hostDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(hostDir, path)
		if err != nil {
			return err
		}

		archivePath := filepath.ToSlash(filepath.Join(prefix, relPath))
		return writeTarEntry(tw, path, archivePath, d)
	})
}

// Writes a single file or directory entry to a tar writer.
func writeTarEntry(tw *tar.Writer, hostPath, archivePath string, d os.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = archivePath

	if err := tw.WriteHeader(header); err != nil {
		return err
	}

	if info.Mode().IsRegular() {
		f, err := os.Open(hostPath)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	}

	return nil
}
