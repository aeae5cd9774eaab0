package epub

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"path"
	"strings"
)

// Defaults applied when the package metadata declares no value.
const (
	UnknownTitle  = "Unknown Title"
	UnknownAuthor = "Unknown Author"
)

// opfPackage mirrors the OPF package document for unmarshalling.
type opfPackage struct {
	XMLName  xml.Name    `xml:"package"`
	Version  string      `xml:"version,attr"`
	Metadata opfMetadata `xml:"metadata"`
	Manifest opfManifest `xml:"manifest"`
	Spine    opfSpine    `xml:"spine"`
}

type opfMetadata struct {
	Title       []dcElement `xml:"title"`
	Creator     []dcElement `xml:"creator"`
	Language    []dcElement `xml:"language"`
	Identifier  []dcElement `xml:"identifier"`
	Publisher   []dcElement `xml:"publisher"`
	Description []dcElement `xml:"description"`
}

type dcElement struct {
	ID      string `xml:"id,attr"`
	Content string `xml:",chardata"`
}

type opfManifest struct {
	Items []opfItem `xml:"item"`
}

type opfItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr"`
}

type opfSpine struct {
	Toc      string       `xml:"toc,attr"` // NCX ID for EPUB 2
	ItemRefs []opfItemRef `xml:"itemref"`
}

type opfItemRef struct {
	IDRef  string `xml:"idref,attr"`
	Linear string `xml:"linear,attr"`
}

// parseOPF parses the package document. The second return value is the
// directory containing the OPF, used to resolve relative hrefs.
func parseOPF(zr *zip.Reader, opfPath string) (*Package, string, error) {
	var opfFile *zip.File
	for _, f := range zr.File {
		if f.Name == opfPath {
			opfFile = f
			break
		}
	}
	if opfFile == nil {
		return nil, "", ErrNoOPF
	}

	baseDir := path.Dir(opfPath)
	if baseDir == "." {
		baseDir = ""
	}

	rc, err := opfFile.Open()
	if err != nil {
		return nil, "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", err
	}

	var opf opfPackage
	if err := xml.Unmarshal(data, &opf); err != nil {
		return nil, "", ErrInvalidOPF
	}

	pkg := &Package{
		Version:  opf.Version,
		Metadata: convertMetadata(&opf.Metadata),
		Manifest: convertManifest(&opf.Manifest),
		Spine:    convertSpine(&opf.Spine),
	}

	if len(pkg.Spine) == 0 {
		return nil, "", ErrEmptySpine
	}

	return pkg, baseDir, nil
}

// convertMetadata takes the first declared value for each single-valued
// field and applies the Unknown defaults.
func convertMetadata(m *opfMetadata) Metadata {
	meta := Metadata{
		Title:       firstValue(m.Title),
		Author:      firstValue(m.Creator),
		Language:    firstValue(m.Language),
		Identifier:  firstValue(m.Identifier),
		Publisher:   firstValue(m.Publisher),
		Description: firstValue(m.Description),
	}
	if meta.Title == "" {
		meta.Title = UnknownTitle
	}
	if meta.Author == "" {
		meta.Author = UnknownAuthor
	}
	return meta
}

func firstValue(elems []dcElement) string {
	for _, e := range elems {
		if s := strings.TrimSpace(e.Content); s != "" {
			return s
		}
	}
	return ""
}

func convertManifest(m *opfManifest) map[string]ManifestItem {
	manifest := make(map[string]ManifestItem, len(m.Items))
	for _, item := range m.Items {
		mi := ManifestItem{
			ID:        item.ID,
			Href:      item.Href,
			MediaType: item.MediaType,
		}
		if item.Properties != "" {
			mi.Properties = strings.Fields(item.Properties)
		}
		manifest[item.ID] = mi
	}
	return manifest
}

func convertSpine(s *opfSpine) []SpineItem {
	spine := make([]SpineItem, 0, len(s.ItemRefs))
	for _, ref := range s.ItemRefs {
		spine = append(spine, SpineItem{
			IDRef:  ref.IDRef,
			Linear: ref.Linear != "no",
		})
	}
	return spine
}
