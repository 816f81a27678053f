package level

import (
	"compress/gzip"
	"io"
	"os"

	"github.com/Tnze/go-mc/nbt"
	"github.com/pkg/errors"
)

const nbtRootTag = "paperfold_level"

// WriteNBT writes desc as a gzip compressed NBT compound.
func WriteNBT(w io.Writer, desc Description) error {
	gzipWriter := gzip.NewWriter(w)
	if err := nbt.NewEncoder(gzipWriter).Encode(desc, nbtRootTag); err != nil {
		return errors.Wrap(err, "encoding level")
	}
	return errors.Wrap(gzipWriter.Close(), "compressing level")
}

func ReadNBT(r io.Reader) (Description, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return Description{}, errors.Wrap(err, "opening compressed level")
	}
	defer gzipReader.Close()

	var desc Description
	tagName, err := nbt.NewDecoder(gzipReader).Decode(&desc)
	if err != nil {
		return Description{}, errors.Wrap(err, "decoding level")
	}
	if tagName != nbtRootTag {
		return Description{}, errors.Errorf("unexpected root tag %q", tagName)
	}
	return desc, nil
}

func SaveNBT(filename string, desc Description) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating level file")
	}
	if err = WriteNBT(file, desc); err != nil {
		file.Close()
		return err
	}
	return errors.Wrap(file.Close(), "closing level file")
}

func LoadNBT(filename string) (Description, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Description{}, errors.Wrap(err, "opening level file")
	}
	defer file.Close()
	return ReadNBT(file)
}
