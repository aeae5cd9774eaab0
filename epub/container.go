package epub

import (
	"archive/zip"
	"encoding/xml"
	"io"
)

// containerXML is the structure of META-INF/container.xml.
type containerXML struct {
	XMLName   xml.Name  `xml:"container"`
	Version   string    `xml:"version,attr"`
	Rootfiles rootfiles `xml:"rootfiles"`
}

type rootfiles struct {
	Rootfile []rootfile `xml:"rootfile"`
}

type rootfile struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

// parseContainer reads META-INF/container.xml and returns the path of the
// package document (OPF) inside the archive.
func parseContainer(zr *zip.Reader) (string, error) {
	var containerFile *zip.File
	for _, f := range zr.File {
		if f.Name == "META-INF/container.xml" {
			containerFile = f
			break
		}
	}
	if containerFile == nil {
		return "", ErrNoContainer
	}

	rc, err := containerFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	var container containerXML
	if err := xml.Unmarshal(data, &container); err != nil {
		return "", ErrInvalidContainer
	}

	// Prefer the rootfile declared as a package document.
	for _, rf := range container.Rootfiles.Rootfile {
		if rf.MediaType == "application/oebps-package+xml" || rf.MediaType == "" {
			if rf.FullPath != "" {
				return rf.FullPath, nil
			}
		}
	}

	// Otherwise take whatever is declared first.
	if len(container.Rootfiles.Rootfile) > 0 && container.Rootfiles.Rootfile[0].FullPath != "" {
		return container.Rootfiles.Rootfile[0].FullPath, nil
	}

	return "", ErrNoRootfile
}
