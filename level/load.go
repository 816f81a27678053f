package level

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ReadDescription reads a level file, picking the format from its extension.
func ReadDescription(filename string) (Description, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gltf", ".glb":
		return LoadGLTF(filename)
	case ".nbt", ".dat":
		return LoadNBT(filename)
	}
	return Description{}, errors.Errorf("unsupported level format %q", filepath.Ext(filename))
}

// WriteDescription writes a level file, picking the format from its extension.
func WriteDescription(filename string, desc Description) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gltf", ".glb":
		return SaveGLTF(filename, desc)
	case ".nbt", ".dat":
		return SaveNBT(filename, desc)
	}
	return errors.Errorf("unsupported level format %q", filepath.Ext(filename))
}

func Load(filename string, opts Options) (*Level, error) {
	desc, err := ReadDescription(filename)
	if err != nil {
		return nil, err
	}
	if desc.Name == "" {
		desc.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	level, err := Build(desc, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "building level from %s", filename)
	}
	return level, nil
}
