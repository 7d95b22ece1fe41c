package frontmatter

import (
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"
)

// Fingerprint computes the content fingerprint of a document from its
// frontmatter fields and body. A stored fingerprint field is not hashed.
func Fingerprint(fields map[string]any, body []byte) (string, error) {
	forHash := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == mdfp.FingerprintField {
			continue
		}
		forHash[k] = v
	}

	serialized := ""
	if len(forHash) > 0 {
		out, err := yaml.Marshal(forHash)
		if err != nil {
			return "", err
		}
		serialized = strings.TrimSuffix(string(out), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(serialized, string(body)), nil
}

// ReadWithFingerprint is Read plus the fingerprint of the document.
func ReadWithFingerprint(content []byte) (map[string]any, string, error) {
	fm, body, had, err := Split(content)
	if err != nil {
		return nil, "", err
	}
	fields := map[string]any{}
	if had {
		if fields, err = ParseYAML(fm); err != nil {
			return nil, "", err
		}
	}
	fp, err := Fingerprint(fields, body)
	if err != nil {
		return nil, "", err
	}
	return fields, fp, nil
}
