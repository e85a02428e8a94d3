package build

import (
	"archive/tar"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kilnhq/kilnd/internal/runtime"
)

// Copies a single host file into the container at destDir/name.
func copyFileTo(ctx context.Context, ctr *runtime.Container, src, destDir, name string) error {
	slog.Debug("copy file", "src", src, "dest", filepath.Join(destDir, name))
	return streamTar(ctx, ctr, destDir, func(tw *tar.Writer) error {
		return writeFileToTar(tw, src, name)
	})
}

// Copies a host directory tree into the container at destDir/prefix.
func copyDirTo(ctx context.Context, ctr *runtime.Container, src, destDir, prefix string) error {
	slog.Debug("copy directory", "src", src, "dest", filepath.Join(destDir, prefix))
	return streamTar(ctx, ctr, destDir, func(tw *tar.Writer) error {
		return writeDirToTar(tw, src, prefix)
	})
}

// Pipes a tar stream produced by write into the container's destDir.
func streamTar(ctx context.Context, ctr *runtime.Container, destDir string, write func(*tar.Writer) error) error {
	pr, pw := io.Pipe()

	go func() {
		tw := tar.NewWriter(pw)
		writeErr := write(tw)
		tw.Close()
		pw.CloseWithError(writeErr)
	}()

	return ctr.CopyTo(ctx, pr, destDir)
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

// Writes a directory tree to a tar writer rooted at the given archive
// prefix.
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

// Writes a single file, directory, or symlink entry to a tar writer.
func writeTarEntry(tw *tar.Writer, hostPath, archivePath string, d os.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	// Symlink headers need the link target, which FileInfoHeader cannot
	// recover from the FileInfo alone.
	var link string
	if info.Mode()&os.ModeSymlink != 0 {
		link, err = os.Readlink(hostPath)
		if err != nil {
			return err
		}
	}

	header, err := tar.FileInfoHeader(info, link)
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
