package atlas

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"path"
	"strings"

	// Image formats accepted for the atlas image entry.
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Archive entry names.
const (
	MetadataEntry = "metadata.json"
	imageStem     = "atlas"
)

// imageExtensions lists the accepted atlas image entries in lookup order.
var imageExtensions = []string{".png", ".bmp", ".tiff", ".tif", ".webp"}

// Load reads the atlas archive at filename. Any failure is returned as a
// *LoadError carrying the underlying cause.
func Load(filename string) (*Atlas, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, &LoadError{Path: filename, Err: err}
	}
	defer func() { _ = zr.Close() }()

	a, err := decodeArchive(&zr.Reader)
	if err != nil {
		return nil, &LoadError{Path: filename, Err: err}
	}
	return a, nil
}

// Decode reads an atlas archive of the given size from r.
func Decode(r io.ReaderAt, size int64) (*Atlas, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("atlas: open archive: %w", err)
	}
	return decodeArchive(zr)
}

func decodeArchive(zr *zip.Reader) (*Atlas, error) {
	var metaFile, imageFile *zip.File
	imageRank := len(imageExtensions)
	for _, f := range zr.File {
		name := path.Base(f.Name)
		if name == MetadataEntry {
			metaFile = f
			continue
		}
		ext := strings.ToLower(path.Ext(name))
		if strings.TrimSuffix(name, path.Ext(name)) != imageStem {
			continue
		}
		for rank, want := range imageExtensions {
			if ext == want && rank < imageRank {
				imageFile, imageRank = f, rank
			}
		}
	}
	if metaFile == nil {
		return nil, ErrMissingMetadata
	}
	if imageFile == nil {
		return nil, ErrMissingImage
	}

	meta, err := readMetadata(metaFile)
	if err != nil {
		return nil, err
	}
	img, err := readImage(imageFile)
	if err != nil {
		return nil, err
	}
	return New(meta, img)
}

func readMetadata(f *zip.File) (Metadata, error) {
	rc, err := f.Open()
	if err != nil {
		return Metadata{}, fmt.Errorf("atlas: open %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	var meta Metadata
	if err := json.NewDecoder(rc).Decode(&meta); err != nil {
		return Metadata{}, fmt.Errorf("atlas: parse %s: %w", f.Name, err)
	}
	return meta, nil
}

func readImage(f *zip.File) (image.Image, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("atlas: open %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("atlas: decode %s: %w", f.Name, err)
	}
	return img, nil
}
