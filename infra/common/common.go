package common

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// GenerateHash folds the md5 of every regular file under path into one
// hash, used to tag the container image so unchanged trees reuse it.
func GenerateHash(path string) (string, error) {
	var hash string

	err := filepath.Walk(path,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || info.Mode()&os.ModeSymlink == os.ModeSymlink {
				return nil
			}
			fh, err := fileHash(path)
			if err != nil {
				return err
			}
			hash = foldHash(hash, fh)
			return nil
		})

	return hash, err
}

func fileHash(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func foldHash(acc, next string) string {
	h := md5.New()
	io.WriteString(h, acc+next)
	return fmt.Sprintf("%x", h.Sum(nil))
}
