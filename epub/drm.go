package epub

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strings"
)

// encryptionXML is the structure of META-INF/encryption.xml.
type encryptionXML struct {
	XMLName       xml.Name        `xml:"encryption"`
	EncryptedData []encryptedData `xml:"EncryptedData"`
}

type encryptedData struct {
	EncryptionMethod encryptionMethod `xml:"EncryptionMethod"`
	CipherData       cipherData       `xml:"CipherData"`
}

type encryptionMethod struct {
	Algorithm string `xml:"Algorithm,attr"`
}

type cipherData struct {
	CipherReference cipherReference `xml:"CipherReference"`
}

type cipherReference struct {
	URI string `xml:"URI,attr"`
}

// checkForDRM returns ErrDRMProtected when the archive carries DRM markers.
// Font obfuscation is tolerated; encrypted content documents are not.
func checkForDRM(zr *zip.Reader) error {
	for _, f := range zr.File {
		switch f.Name {
		case "META-INF/rights.xml":
			// Adobe ADEPT marker.
			return ErrDRMProtected

		case "META-INF/encryption.xml":
			encrypted, err := hasEncryptedContent(f)
			if err != nil {
				// Unparseable encryption manifest: assume the worst.
				return ErrDRMProtected
			}
			if encrypted {
				return ErrDRMProtected
			}
		}
	}
	return nil
}

// hasEncryptedContent reports whether encryption.xml covers anything beyond
// font obfuscation.
func hasEncryptedContent(f *zip.File) (bool, error) {
	rc, err := f.Open()
	if err != nil {
		return false, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return false, err
	}

	var enc encryptionXML
	if err := xml.Unmarshal(data, &enc); err != nil {
		return false, err
	}

	for _, ed := range enc.EncryptedData {
		if isFontObfuscation(ed.EncryptionMethod.Algorithm) {
			continue
		}
		uri := strings.ToLower(ed.CipherData.CipherReference.URI)
		if strings.HasSuffix(uri, ".ttf") || strings.HasSuffix(uri, ".otf") || strings.HasSuffix(uri, ".woff") || strings.HasSuffix(uri, ".woff2") {
			continue
		}
		return true, nil
	}
	return false, nil
}

// isFontObfuscation recognizes the IDPF and Adobe font mangling algorithms,
// which are not DRM.
func isFontObfuscation(algorithm string) bool {
	switch algorithm {
	case "http://www.idpf.org/2008/embedding",
		"http://ns.adobe.com/pdf/enc#RC":
		return true
	}
	return false
}
