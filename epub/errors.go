package epub

import "errors"

// Errors surfaced while opening an archive. Everything here is fatal to the
// load; per-resource problems are reported through the Reader's logger
// instead and skip only the resource involved.
var (
	// ErrInvalidArchive indicates the file is not a readable ZIP container.
	ErrInvalidArchive = errors.New("epub: invalid or corrupted archive")

	// ErrInvalidMimetype indicates the mimetype entry exists but does not
	// declare application/epub+zip.
	ErrInvalidMimetype = errors.New("epub: invalid mimetype (not an EPUB)")

	// ErrNoContainer indicates META-INF/container.xml is missing.
	ErrNoContainer = errors.New("epub: missing META-INF/container.xml")

	// ErrInvalidContainer indicates container.xml could not be parsed.
	ErrInvalidContainer = errors.New("epub: invalid container.xml")

	// ErrNoRootfile indicates container.xml declares no rootfile.
	ErrNoRootfile = errors.New("epub: no rootfile found in container.xml")

	// ErrNoOPF indicates the package document referenced by container.xml
	// is absent from the archive.
	ErrNoOPF = errors.New("epub: missing package document (OPF)")

	// ErrInvalidOPF indicates the package document could not be parsed.
	ErrInvalidOPF = errors.New("epub: invalid package document")

	// ErrMissingContent indicates a referenced archive entry does not exist.
	ErrMissingContent = errors.New("epub: referenced content file not found")

	// ErrEmptySpine indicates the spine references no readable document
	// resources after media-type filtering.
	ErrEmptySpine = errors.New("epub: no content in spine")

	// ErrDRMProtected indicates the archive carries DRM and cannot be read.
	ErrDRMProtected = errors.New("epub: DRM-protected content cannot be processed")
)
