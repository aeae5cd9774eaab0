package epub

import (
	"archive/zip"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
)

// Reader provides access to one opened EPUB archive.
type Reader struct {
	zr        *zip.ReadCloser
	zrReader  *zip.Reader // set when opened from an io.ReaderAt
	pkg       *Package
	baseDir   string // directory containing the OPF
	resources []Resource
	outline   []OutlineNode
	log       *logrus.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger used for per-resource diagnostics.
func WithLogger(log *logrus.Logger) Option {
	return func(r *Reader) {
		if log != nil {
			r.log = log
		}
	}
}

// Open opens an EPUB file from a path.
func Open(filePath string, opts ...Option) (*Reader, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, ErrInvalidArchive
	}

	r := newReader(opts)
	r.zr = zr
	if err := r.init(&zr.Reader); err != nil {
		zr.Close()
		return nil, err
	}
	return r, nil
}

// OpenReader opens an EPUB from an io.ReaderAt.
func OpenReader(ra io.ReaderAt, size int64, opts ...Option) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, ErrInvalidArchive
	}

	r := newReader(opts)
	r.zrReader = zr
	if err := r.init(zr); err != nil {
		return nil, err
	}
	return r, nil
}

func newReader(opts []Option) *Reader {
	r := &Reader{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// init parses the archive structure: mimetype, DRM markers, container,
// package document, spine resources, and the navigation tree.
func (r *Reader) init(zr *zip.Reader) error {
	// Some real-world EPUBs omit the mimetype entry; only an entry that is
	// present and wrong is fatal.
	if err := r.validateMimetype(zr); err != nil {
		return err
	}

	if err := checkForDRM(zr); err != nil {
		return err
	}

	opfPath, err := parseContainer(zr)
	if err != nil {
		return err
	}

	pkg, baseDir, err := parseOPF(zr, opfPath)
	if err != nil {
		return err
	}
	r.pkg = pkg
	r.baseDir = baseDir

	if err := r.loadResources(zr); err != nil {
		return err
	}

	r.outline = r.parseNavigation(zr)
	return nil
}

// validateMimetype checks the mimetype entry when one exists.
func (r *Reader) validateMimetype(zr *zip.Reader) error {
	for _, f := range zr.File {
		if f.Name != "mimetype" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(data)) != "application/epub+zip" {
			return ErrInvalidMimetype
		}
		return nil
	}
	return nil
}

// isDocumentType reports whether a media type is a readable content
// document.
func isDocumentType(mediaType string) bool {
	switch mediaType {
	case "application/xhtml+xml", "text/html", "application/html+xml":
		return true
	}
	return false
}

// loadResources reads every spine item that is a content document, in
// spine order. Missing or undecodable resources are skipped with a logged
// diagnostic; only ending up with zero resources is fatal.
func (r *Reader) loadResources(zr *zip.Reader) error {
	r.resources = make([]Resource, 0, len(r.pkg.Spine))

	for _, spineItem := range r.pkg.Spine {
		item, ok := r.pkg.Manifest[spineItem.IDRef]
		if !ok {
			r.log.WithField("idref", spineItem.IDRef).Warn("spine references unknown manifest item")
			continue
		}
		if !isDocumentType(item.MediaType) {
			continue
		}

		href := r.resolveHref(item.Href)
		raw, err := r.readFile(zr, href)
		if err != nil {
			r.log.WithFields(logrus.Fields{"href": href, "error": err}).Warn("skipping unreadable resource")
			continue
		}

		body, err := decodeText(raw)
		if err != nil {
			r.log.WithFields(logrus.Fields{"href": href, "error": err}).Warn("skipping undecodable resource")
			continue
		}

		r.resources = append(r.resources, Resource{
			ID:        item.ID,
			Href:      item.Href,
			MediaType: item.MediaType,
			Body:      body,
		})
	}

	if len(r.resources) == 0 {
		return ErrEmptySpine
	}
	return nil
}

// resolveHref resolves a manifest href against the OPF base directory.
// PathUnescape, not QueryUnescape: a literal '+' in a filename must stay
// a '+'.
func (r *Reader) resolveHref(href string) string {
	if decoded, err := url.PathUnescape(href); err == nil {
		href = decoded
	}
	if r.baseDir == "" {
		return href
	}
	return path.Join(r.baseDir, href)
}

// readFile reads a single file from the archive by its full path.
func (r *Reader) readFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, ErrMissingContent
}

// Close releases the archive handle.
func (r *Reader) Close() error {
	if r.zr != nil {
		return r.zr.Close()
	}
	return nil
}

// Metadata returns the package metadata with Unknown defaults applied.
func (r *Reader) Metadata() Metadata {
	return r.pkg.Metadata
}

// Resources returns the readable content documents in spine order.
func (r *Reader) Resources() []Resource {
	return r.resources
}

// Outline returns the raw navigation tree. It is empty when the archive
// declares no navigation document, or when the one declared is unusable.
func (r *Reader) Outline() []OutlineNode {
	return r.outline
}
