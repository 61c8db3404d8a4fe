package decoder

import "regexp"

var audioMIME = regexp.MustCompile(`audio/([^;]+)`)

// ExtensionFromMIME returns the file extension for an audio MIME type,
// for example ".webm" for "audio/webm;codecs=opus". Non-audio types give "".
func ExtensionFromMIME(mimeType string) string {
	m := audioMIME.FindStringSubmatch(mimeType)
	if len(m) < 2 {
		return ""
	}
	return "." + m[1]
}
