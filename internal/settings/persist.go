package settings

import (
	"bytes"
	"fmt"
	"io"
)

// Device is byte-addressable non-volatile memory holding the image at
// offset zero.
type Device interface {
	io.ReaderAt
	io.WriterAt
}

// Read decodes the image from dev without recovering it. The returned
// error is ErrInvalidMarker or a range error when the image does not
// validate; the decoded record is still returned in that case.
func Read(dev Device) (Record, error) {
	r, err := readImage(dev)
	if err != nil {
		return Record{}, err
	}
	return r, r.Validate()
}

// Load reads the record, replacing it with factory defaults when the image
// does not validate. recovered is true when defaults were written.
func Load(dev Device) (rec Record, recovered bool, err error) {
	rec, err = readImage(dev)
	if err != nil {
		return Record{}, false, err
	}
	if rec.Validate() == nil {
		return rec, false, nil
	}
	rec = Default()
	if err := Persist(dev, &rec); err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

func readImage(dev Device) (Record, error) {
	buf := make([]byte, ImageSize)
	if _, err := dev.ReadAt(buf, 0); err != nil {
		return Record{}, fmt.Errorf("settings: read image: %w", err)
	}
	var r Record
	if err := r.UnmarshalBinary(buf); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Persist normalizes r, writes it and reads it back. A record that does not
// validate is never written. A read-back that does not match what was
// written is an error.
func Persist(dev Device, r *Record) error {
	r.Normalize()
	if err := r.Validate(); err != nil {
		return fmt.Errorf("settings: refusing to write invalid record: %w", err)
	}
	img, err := r.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := dev.WriteAt(img, 0); err != nil {
		return fmt.Errorf("settings: write image: %w", err)
	}
	back := make([]byte, ImageSize)
	if _, err := dev.ReadAt(back, 0); err != nil {
		return fmt.Errorf("settings: read back image: %w", err)
	}
	if !bytes.Equal(img, back) {
		return fmt.Errorf("settings: read back differs from written image")
	}
	var check Record
	if err := check.UnmarshalBinary(back); err != nil {
		return err
	}
	if err := check.Validate(); err != nil {
		return fmt.Errorf("settings: persisted image invalid: %w", err)
	}
	return nil
}
